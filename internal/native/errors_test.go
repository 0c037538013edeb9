package native

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code int }

func (e codedError) Error() string { return fmt.Sprintf("coded %d", e.code) }

func TestMapError(t *testing.T) {
	var mapper ErrorMapper = func(err error) *DriverError {
		var ce codedError

		if errors.As(err, &ce) {
			return &DriverError{Code: ce.code, Message: "mapped", State: "HY000"}
		}

		return nil
	}

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, MapError(nil, mapper))
	})

	t.Run("already mapped", func(t *testing.T) {
		de := &DriverError{Code: 1, Message: "m"}
		assert.Same(t, de, MapError(fmt.Errorf("wrapped: %w", de), mapper))
	})

	t.Run("recognized", func(t *testing.T) {
		src := codedError{code: -204}
		de := MapError(src, mapper)
		assert.Equal(t, -204, de.Code)
		assert.Equal(t, "HY000", de.State)
		assert.ErrorIs(t, de, src)
	})

	t.Run("fallback", func(t *testing.T) {
		src := errors.New("boom")
		de := MapError(src, mapper)
		assert.Equal(t, "boom", de.Message)
		assert.Equal(t, 0, de.Code)
		assert.ErrorIs(t, de, src)
	})
}

func TestDriverError_Error(t *testing.T) {
	assert.Equal(t, "[42704] -204: undefined name", (&DriverError{Code: -204, State: "42704", Message: "undefined name"}).Error())
	assert.Equal(t, "[42P01] no table", (&DriverError{State: "42P01", Message: "no table"}).Error())
	assert.Equal(t, "60: no table", (&DriverError{Code: 60, Message: "no table"}).Error())
	assert.Equal(t, "plain", (&DriverError{Message: "plain"}).Error())
}

func TestIsBadConn(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", driver.ErrBadConn, true},
		{"conn done", sql.ErrConnDone, true},
		{"mapped bad conn", MapError(fmt.Errorf("exec: %w", driver.ErrBadConn)), true},
		{"canceled", context.Canceled, true},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"network", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}, true},
		{"sql error", &DriverError{Code: -204, State: "42704", Message: "undefined name"}, false},
		{"plain", errors.New("syntax error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBadConn(tt.err))
		})
	}
}
