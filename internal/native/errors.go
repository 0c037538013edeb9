package native

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
)

type DriverError struct {
	Code    int
	Message string
	State   string
	Err     error
}

func (e *DriverError) Error() string {
	switch {
	case len(e.State) > 0 && e.Code != 0:
		return fmt.Sprintf("[%s] %d: %s", e.State, e.Code, e.Message)
	case len(e.State) > 0:
		return fmt.Sprintf("[%s] %s", e.State, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("%d: %s", e.Code, e.Message)
	default:
		return e.Message
	}
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// ErrorMapper extracts backend code, message and state from a native error.
// It returns nil when it does not recognize the error.
type ErrorMapper func(err error) *DriverError

// MapError converts err to a *DriverError using the first mapper that
// recognizes it. Errors that already are a *DriverError are returned as is.
func MapError(err error, mappers ...ErrorMapper) *DriverError {
	if err == nil {
		return nil
	}

	var de *DriverError

	if errors.As(err, &de) {
		return de
	}

	for _, mapper := range mappers {
		if de := mapper(err); de != nil {
			if de.Err == nil {
				de.Err = err
			}

			return de
		}
	}

	return &DriverError{Message: err.Error(), Err: err}
}

// IsBadConn reports whether err leaves the native connection unusable. A
// connection that returned such an error must not be handed out again.
func IsBadConn(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
