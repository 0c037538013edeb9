package native

import (
	"context"
)

type DescribeObject struct {
	Database string
	Schema   string
	Table    string
}

// Driver opens native connections for a connection string.
type Driver interface {
	Name() string
	Open(ctx context.Context, connString string) (Conn, error)
}

// Conn is a single native backend connection. It is not safe for concurrent
// use: callers must issue one call at a time.
type Conn interface {
	ExecNonQuery(ctx context.Context, query string) (int64, error)
	QueryResult(ctx context.Context, query string) (Result, error)
	Describe(ctx context.Context, obj DescribeObject) ([]*Row, error)
	Close() error
}

// Result is a row cursor. Err reports a failure the driver signalled on the
// result itself instead of returning an error from QueryResult. Fetch returns
// a nil row once the cursor is exhausted.
type Result interface {
	Err() error
	Fetch() (*Row, error)
	Close() error
}

// Drain fetches every remaining row of res.
func Drain(res Result) ([]*Row, error) {
	var rows = []*Row{}

	for {
		row, err := res.Fetch()

		if err != nil {
			return nil, err
		}

		if row == nil {
			return rows, nil
		}

		rows = append(rows, row)
	}
}
