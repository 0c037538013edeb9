package common

import (
	"fmt"

	"github.com/agnosticeng/sqldialect/internal/config"
	"github.com/agnosticeng/sqldialect/internal/dialect"
	"github.com/agnosticeng/sqldialect/internal/output"
	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
)

var Flags = []cli.Flag{
	&cli.StringFlag{Name: "config", Aliases: []string{"c"}, EnvVars: []string{"SQLDIALECT_CONFIG"}},
	&cli.StringFlag{Name: "backend", Usage: fmt.Sprintf("one of %v", dialect.Backends())},
	&cli.StringFlag{Name: "connect-string"},
	&cli.StringFlag{Name: "server"},
	&cli.IntFlag{Name: "port"},
	&cli.StringFlag{Name: "database"},
	&cli.StringFlag{Name: "username"},
	&cli.StringFlag{Name: "password"},
	&cli.IntFlag{Name: "max-pool-size"},
	&cli.DurationFlag{Name: "max-connection-lifetime"},
	&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: fmt.Sprintf("one of %v", output.Formats)},
}

var overrideKeys = map[string]string{
	"backend":                 "dialect.backend",
	"connect-string":          "dialect.credentials.connect_string",
	"server":                  "dialect.credentials.server",
	"port":                    "dialect.credentials.port",
	"database":                "dialect.credentials.database",
	"username":                "dialect.credentials.username",
	"password":                "dialect.credentials.password",
	"max-pool-size":           "dialect.pool.max_size",
	"max-connection-lifetime": "dialect.pool.max_conn_lifetime",
	"format":                  "format",
	"parallel":                "parallel",
}

// LoadConfig merges the config file, the environment and every flag that was
// explicitly set on the command line.
func LoadConfig(ctx *cli.Context) (config.Config, error) {
	var overrides = make(map[string]any)

	for flag, key := range overrideKeys {
		if ctx.IsSet(flag) {
			overrides[key] = ctx.Value(flag)
		}
	}

	conf, err := config.Load(ctx.String("config"), overrides)

	if err != nil {
		return config.Config{}, err
	}

	if err := output.ValidateFormat(conf.Format); err != nil {
		return config.Config{}, err
	}

	return conf, nil
}

// NewDialect builds the configured dialect. Callers must Close it.
func NewDialect(ctx *cli.Context) (*dialect.Dialect, config.Config, error) {
	conf, err := LoadConfig(ctx)

	if err != nil {
		return nil, config.Config{}, err
	}

	d, err := dialect.New(conf.Dialect)

	if err != nil {
		return nil, config.Config{}, err
	}

	slogctx.FromCtx(ctx.Context).Debug(
		"dialect created",
		"id", d.ID(),
		"backend", d.Backend(),
		"max_pool_size", conf.Dialect.Pool.MaxSize,
	)

	return d, conf, nil
}

func CloseDialect(ctx *cli.Context, d *dialect.Dialect) {
	if err := d.Close(); err != nil {
		slogctx.FromCtx(ctx.Context).Warn("failed to close dialect", "error", err.Error())
	}
}
