package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/agnosticeng/panicsafe"
	"github.com/agnosticeng/slogcli"
	"github.com/agnosticeng/sqldialect/cmd/meta"
	"github.com/agnosticeng/sqldialect/cmd/query"
	"github.com/agnosticeng/sqldialect/cmd/render"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:   "sqldialect",
		Usage:  "run SQL against a pooled database backend",
		Flags:  slogcli.SlogFlags(),
		Before: slogcli.SlogBefore,
		Commands: append(
			[]*cli.Command{
				query.Command(),
				render.Command(),
			},
			meta.Commands()...,
		),
		DisableSliceFlagSeparator: true,
	}

	var err = panicsafe.Recover(func() error { return app.Run(os.Args) })

	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		os.Exit(1)
	}
}
