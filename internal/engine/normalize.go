package engine

import (
	"fmt"

	"github.com/agnosticeng/sqldialect/internal/native"
)

func AffectedMessage(n int64) string {
	return fmt.Sprintf("%d rows were affected.", n)
}

func ResultFromCount(connID string, query string, n int64) QueryResult {
	return QueryResult{
		ConnID:   connID,
		Cols:     []string{},
		Messages: []string{AffectedMessage(n)},
		Query:    query,
		Results:  []*native.Row{},
	}
}

// ResultFromRows takes the column list from the first row.
func ResultFromRows(connID string, query string, rows []*native.Row) QueryResult {
	var cols = []string{}

	if len(rows) > 0 {
		cols = rows[0].Keys()
	}

	if rows == nil {
		rows = []*native.Row{}
	}

	return QueryResult{
		ConnID:   connID,
		Cols:     cols,
		Messages: []string{},
		Query:    query,
		Results:  rows,
	}
}

// NormalizeError turns a native failure into a *native.DriverError, keeping
// an error that already is one untouched.
func NormalizeError(err error, mappers ...native.ErrorMapper) error {
	if err == nil {
		return nil
	}

	return native.MapError(err, mappers...)
}
