package engine

import (
	"context"

	"github.com/agnosticeng/sqldialect/internal/native"
)

// Session is the part of a leased connection the executor needs. Close must
// give the connection back and be safe to call more than once.
type Session interface {
	ExecNonQuery(ctx context.Context, query string) (int64, error)
	QueryResult(ctx context.Context, query string) (native.Result, error)
	Close() error
}

type QueryResult struct {
	ConnID   string        `json:"connId" yaml:"connId"`
	Cols     []string      `json:"cols" yaml:"cols"`
	Messages []string      `json:"messages" yaml:"messages"`
	Query    string        `json:"query" yaml:"query"`
	Results  []*native.Row `json:"results" yaml:"results"`
}
