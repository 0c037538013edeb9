package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/agnosticeng/sqldialect/internal/native"
	slogctx "github.com/veqryn/slog-context"
)

// Executor runs batches on behalf of one dialect connection. Drivers map
// their own backend errors; anything still unmapped is wrapped as a plain
// *native.DriverError.
type Executor struct {
	ConnID string
}

// ExecuteBatch runs statements one after the other on session and returns
// one result per statement, in order. The first failure aborts the batch and
// no partial results are returned. The session is closed on every path.
func (ex *Executor) ExecuteBatch(ctx context.Context, session Session, statements []string) ([]QueryResult, error) {
	var (
		logger  = slogctx.FromCtx(ctx)
		results = make([]QueryResult, 0, len(statements))
	)

	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close session", "error", err.Error())
		}
	}()

	for i, stmt := range statements {
		var (
			t0   = time.Now()
			kind = Classify(stmt)
			res  QueryResult
			err  error
		)

		if logger.Enabled(ctx, slog.Level(-10)) {
			logger.Log(ctx, -10, stmt, "index", i, "kind", kind.String())
		}

		switch kind {
		case Mutating:
			res, err = ex.executeNonQuery(ctx, session, stmt)
		default:
			res, err = ex.executeQuery(ctx, session, stmt)
		}

		if err != nil {
			logger.Debug("statement failed", "index", i, "kind", kind.String(), "error", err.Error())
			return nil, err
		}

		logger.Debug(
			"statement executed",
			"index", i,
			"kind", kind.String(),
			"rows", len(res.Results),
			"duration", time.Since(t0),
		)

		results = append(results, res)
	}

	return results, nil
}

func (ex *Executor) executeNonQuery(ctx context.Context, session Session, stmt string) (QueryResult, error) {
	n, err := session.ExecNonQuery(ctx, stmt)

	if err != nil {
		return QueryResult{}, NormalizeError(err)
	}

	return ResultFromCount(ex.ConnID, stmt, n), nil
}

func (ex *Executor) executeQuery(ctx context.Context, session Session, stmt string) (QueryResult, error) {
	res, err := session.QueryResult(ctx, stmt)

	if err != nil {
		return QueryResult{}, NormalizeError(err)
	}

	defer res.Close()

	if err := res.Err(); err != nil {
		return QueryResult{}, NormalizeError(err)
	}

	rows, err := native.Drain(res)

	if err != nil {
		return QueryResult{}, NormalizeError(err)
	}

	return ResultFromRows(ex.ConnID, stmt, rows), nil
}
