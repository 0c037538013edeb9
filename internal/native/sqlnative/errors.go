package sqlnative

import (
	"errors"

	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
)

var DefaultMappers = []native.ErrorMapper{
	MapPgError,
	MapMySQLError,
	MapSQLiteError,
}

func MapPgError(err error) *native.DriverError {
	var pgErr *pgconn.PgError

	if !errors.As(err, &pgErr) {
		return nil
	}

	return &native.DriverError{
		Message: pgErr.Message,
		State:   pgErr.Code,
	}
}

func MapMySQLError(err error) *native.DriverError {
	var myErr *mysql.MySQLError

	if !errors.As(err, &myErr) {
		return nil
	}

	var de = &native.DriverError{
		Code:    int(myErr.Number),
		Message: myErr.Message,
	}

	if myErr.SQLState != [5]byte{} {
		de.State = string(myErr.SQLState[:])
	}

	return de
}

func MapSQLiteError(err error) *native.DriverError {
	var liteErr *sqlite.Error

	if !errors.As(err, &liteErr) {
		return nil
	}

	return &native.DriverError{
		Code:    liteErr.Code(),
		Message: liteErr.Error(),
	}
}
