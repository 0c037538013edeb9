package meta

import (
	"context"
	"fmt"

	"github.com/agnosticeng/sqldialect/cmd/common"
	"github.com/agnosticeng/sqldialect/internal/dialect"
	"github.com/agnosticeng/sqldialect/internal/output"
	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "test",
			Usage:  "check that the backend is reachable",
			Flags:  common.Flags,
			Action: run(testConnection),
		},
		{
			Name:   "tables",
			Usage:  "list tables and views",
			Flags:  common.Flags,
			Action: run(list((*dialect.Dialect).GetTables)),
		},
		{
			Name:   "columns",
			Usage:  "list columns of every table",
			Flags:  common.Flags,
			Action: run(list((*dialect.Dialect).GetColumns)),
		},
		{
			Name:   "functions",
			Usage:  "list user defined functions",
			Flags:  common.Flags,
			Action: run(list((*dialect.Dialect).GetFunctions)),
		},
		{
			Name:      "describe",
			Usage:     "describe a table",
			ArgsUsage: "schema.table",
			Flags:     common.Flags,
			Action:    run(describe),
		},
	}
}

type actionFunc func(ctx *cli.Context, d *dialect.Dialect, format string) error

func run(f actionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		d, conf, err := common.NewDialect(ctx)

		if err != nil {
			return err
		}

		defer common.CloseDialect(ctx, d)

		return f(ctx, d, conf.Format)
	}
}

func list[T any](get func(*dialect.Dialect, context.Context) ([]T, error)) actionFunc {
	return func(ctx *cli.Context, d *dialect.Dialect, format string) error {
		entries, err := get(d, ctx.Context)

		if err != nil {
			return err
		}

		return output.List(ctx.App.Writer, format, entries)
	}
}

func testConnection(ctx *cli.Context, d *dialect.Dialect, _ string) error {
	if err := d.TestConnection(ctx.Context); err != nil {
		return err
	}

	slogctx.FromCtx(ctx.Context).Info("connection ok", "id", d.ID(), "backend", d.Backend())
	fmt.Fprintln(ctx.App.Writer, "ok")
	return nil
}

func describe(ctx *cli.Context, d *dialect.Dialect, format string) error {
	var table = ctx.Args().First()

	if len(table) == 0 {
		return fmt.Errorf("a table must be specified")
	}

	results, err := d.DescribeTable(ctx.Context, table)

	if err != nil {
		return err
	}

	return output.Results(ctx.App.Writer, format, results)
}
