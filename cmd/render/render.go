package render

import (
	"fmt"

	"github.com/agnosticeng/sqldialect/internal/statement"
	"github.com/agnosticeng/sqldialect/internal/utils"
	"github.com/urfave/cli/v2"
)

var Flags = []cli.Flag{
	&cli.StringSliceFlag{Name: "var"},
	&cli.BoolFlag{Name: "split", Usage: "print each statement the way query would run it"},
}

func Command() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render SQL templates without running them",
		ArgsUsage: "path...",
		Flags:     Flags,
		Action: func(ctx *cli.Context) error {
			var (
				paths = ctx.Args().Slice()
				vars  = utils.ParseKeyValues(ctx.StringSlice("var"), "=")
				w     = ctx.App.Writer
			)

			if len(paths) == 0 {
				return fmt.Errorf("a path must be specified")
			}

			tmpl, err := utils.LoadTemplates(paths...)

			if err != nil {
				return err
			}

			for _, name := range utils.TemplateNames(tmpl) {
				fmt.Fprintln(w, "--------------------------------------------------------------------------------")
				fmt.Fprintln(w, name)
				fmt.Fprintln(w, "--------------------------------------------------------------------------------")

				str, err := utils.RenderTemplate(tmpl, name, vars)

				if err != nil {
					return err
				}

				if !ctx.Bool("split") {
					fmt.Fprintln(w, str)
					continue
				}

				for i, stmt := range statement.Split(str) {
					fmt.Fprintf(w, "-- statement %d\n%s;\n", i+1, stmt)
				}
			}

			return nil
		},
	}
}
