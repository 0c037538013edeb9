package dialect

import (
	"github.com/agnosticeng/sqldialect/internal/pool"
)

type Credentials struct {
	Server   string `koanf:"server"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	// ConnectString, when set, is used as is instead of being built from
	// the other fields.
	ConnectString string `koanf:"connect_string"`
}

type Config struct {
	ID          string         `koanf:"id"`
	Backend     string         `koanf:"backend"`
	DriverName  string         `koanf:"driver_name"`
	Credentials Credentials    `koanf:"credentials"`
	Queries     Queries        `koanf:"queries"`
	Pool        pool.Config    `koanf:"pool"`
	Settings    map[string]any `koanf:"settings"`
}

func (conf Config) WithDefaults() Config {
	if len(conf.Backend) == 0 {
		conf.Backend = "db2"
	}

	conf.Pool = conf.Pool.WithDefaults()
	return conf
}
