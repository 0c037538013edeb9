package chnative

import (
	chproto "github.com/ClickHouse/ch-go/proto"
	"github.com/ClickHouse/clickhouse-go/v2/lib/proto"
	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/samber/lo"
)

func MapException(err error) *native.DriverError {
	ex, ok := lo.ErrorsAs[*proto.Exception](err)

	if !ok {
		return nil
	}

	var state = ex.Name

	// fall back to the code name when the server sent no exception name
	if len(state) == 0 {
		state = chproto.Error(ex.Code).String()
	}

	return &native.DriverError{
		Code:    int(ex.Code),
		Message: ex.Message,
		State:   state,
	}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}

	return native.MapError(err, MapException)
}
