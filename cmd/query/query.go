package query

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/template"
	"time"

	"github.com/agnosticeng/sqldialect/cmd/common"
	"github.com/agnosticeng/sqldialect/internal/engine"
	"github.com/agnosticeng/sqldialect/internal/output"
	"github.com/agnosticeng/sqldialect/internal/utils"
	"github.com/agnosticeng/sqldialect/internal/worker"
	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
)

var Flags = append([]cli.Flag{
	&cli.StringSliceFlag{Name: "execute", Aliases: []string{"e"}},
	&cli.StringSliceFlag{Name: "var"},
	&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}},
}, common.Flags...)

type job struct {
	name string
	text string
}

func Command() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "run SQL files, directories of SQL files or inline statements",
		ArgsUsage: "[path...]",
		Flags:     Flags,
		Action: func(ctx *cli.Context) error {
			var (
				logger = slogctx.FromCtx(ctx.Context)
				vars   = utils.ParseKeyValues(ctx.StringSlice("var"), "=")
			)

			jobs, err := loadJobs(ctx.StringSlice("execute"), ctx.Args().Slice(), vars)

			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				return fmt.Errorf("a path or an inline statement must be specified")
			}

			d, conf, err := common.NewDialect(ctx)

			if err != nil {
				return err
			}

			defer common.CloseDialect(ctx, d)

			var queryCtx, queryCancel = signal.NotifyContext(ctx.Context, syscall.SIGTERM, os.Interrupt)
			defer queryCancel()

			var results = make([][]engine.QueryResult, len(jobs))

			err = worker.ForEach(queryCtx, conf.Parallel, jobs, func(ctx context.Context, i int, j job) error {
				var t0 = time.Now()

				res, err := d.Query(ctx, j.text)

				if err != nil {
					return fmt.Errorf("%s: %w", j.name, err)
				}

				logger.Info("query executed", "name", j.name, "statements", len(res), "duration", time.Since(t0))
				results[i] = res
				return nil
			})

			if err != nil {
				return err
			}

			for i, res := range results {
				if len(jobs) > 1 && (conf.Format == "table" || conf.Format == "markdown") {
					fmt.Fprintf(ctx.App.Writer, "-- %s\n", jobs[i].name)
				}

				if err := output.Results(ctx.App.Writer, conf.Format, res); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func loadJobs(inline []string, paths []string, vars map[string]interface{}) ([]job, error) {
	var jobs []job

	for i, text := range inline {
		tmpl, err := template.New("inline").Funcs(utils.SQLFuncMap()).Parse(text)

		if err != nil {
			return nil, fmt.Errorf("failed to parse inline statement %d: %w", i, err)
		}

		str, err := utils.RenderTemplate(tmpl, "inline", vars)

		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job{name: fmt.Sprintf("inline#%d", i), text: str})
	}

	if len(paths) == 0 {
		return jobs, nil
	}

	tmpl, err := utils.LoadTemplates(paths...)

	if err != nil {
		return nil, err
	}

	for _, name := range utils.TemplateNames(tmpl) {
		str, err := utils.RenderTemplate(tmpl, name, vars)

		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", name, err)
		}

		jobs = append(jobs, job{name: name, text: str})
	}

	return jobs, nil
}
