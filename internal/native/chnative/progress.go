package chnative

import (
	"context"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	slogctx "github.com/veqryn/slog-context"
)

// statementProgress accumulates the progress packets and server log lines
// streamed back while a single statement runs.
type statementProgress struct {
	query      string
	started    time.Time
	readRows   uint64
	readBytes  uint64
	wroteRows  uint64
	wroteBytes uint64
	serverLogs []*clickhouse.Log
}

func newStatementProgress(query string) *statementProgress {
	return &statementProgress{query: query, started: time.Now()}
}

func (sp *statementProgress) context(ctx context.Context) context.Context {
	return clickhouse.Context(
		ctx,
		clickhouse.WithProgress(sp.onProgress),
		clickhouse.WithLogs(sp.onLog),
	)
}

func (sp *statementProgress) onProgress(p *clickhouse.Progress) {
	if p == nil {
		return
	}

	sp.readRows += p.Rows
	sp.readBytes += p.Bytes
	sp.wroteRows += p.WroteRows
	sp.wroteBytes += p.WroteBytes
}

func (sp *statementProgress) onLog(l *clickhouse.Log) {
	if l != nil {
		sp.serverLogs = append(sp.serverLogs, l)
	}
}

// affectedRows is what a mutating statement reports: ClickHouse has no
// affected-row count, only the rows written by the statement.
func (sp *statementProgress) affectedRows() int64 {
	return int64(sp.wroteRows)
}

func (sp *statementProgress) log(ctx context.Context, kind string) {
	var logger = slogctx.FromCtx(ctx)

	if !logger.Enabled(ctx, slog.Level(-10)) {
		return
	}

	logger.Log(
		ctx,
		slog.Level(-10),
		sp.query,
		"kind", kind,
		"read_rows", sp.readRows,
		"read_bytes", sp.readBytes,
		"wrote_rows", sp.wroteRows,
		"wrote_bytes", sp.wroteBytes,
		"duration", time.Since(sp.started),
	)

	for _, l := range sp.serverLogs {
		logger.Log(ctx, slog.Level(-10), l.Text, "source", l.Source, "query_id", l.QueryID)
	}
}
