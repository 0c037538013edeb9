package pool

import (
	"context"
	"log/slog"
	"sync"

	"github.com/agnosticeng/sqldialect/internal/native"
)

// Session is a native connection leased from the pool for the lifetime of a
// single batch. It must not be used concurrently.
type Session struct {
	pool   *Pool
	conn   *conn
	logger *slog.Logger
	once   sync.Once
	broken bool
}

func (s *Session) ID() int {
	return s.conn.id
}

// track marks the session broken when err leaves the native connection
// unusable, so that it is discarded instead of returned to the idle set.
func (s *Session) track(err error) error {
	if native.IsBadConn(err) {
		s.broken = true
	}

	return err
}

func (s *Session) ExecNonQuery(ctx context.Context, query string) (int64, error) {
	n, err := s.conn.native.ExecNonQuery(ctx, query)
	return n, s.track(err)
}

func (s *Session) QueryResult(ctx context.Context, query string) (native.Result, error) {
	res, err := s.conn.native.QueryResult(ctx, query)

	if err != nil {
		return nil, s.track(err)
	}

	return &sessionResult{Result: res, session: s}, nil
}

func (s *Session) Describe(ctx context.Context, obj native.DescribeObject) ([]*native.Row, error) {
	rows, err := s.conn.native.Describe(ctx, obj)
	return rows, s.track(err)
}

// Close gives the connection back to the pool, or discards it when a native
// call reported a broken connection. Calling it more than once is a no-op.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.pool.release(s.logger, s.conn, s.broken)
	})

	return nil
}

type sessionResult struct {
	native.Result
	session *Session
}

func (r *sessionResult) Err() error {
	return r.session.track(r.Result.Err())
}

func (r *sessionResult) Fetch() (*native.Row, error) {
	row, err := r.Result.Fetch()
	return row, r.session.track(err)
}
