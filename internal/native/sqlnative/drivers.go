package sqlnative

import (
	// registers the "pgx" database/sql driver; mysql and sqlite register
	// themselves through the imports in errors.go
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	PostgresDriverName = "pgx"
	MySQLDriverName    = "mysql"
	SQLiteDriverName   = "sqlite"
	DB2DriverName      = "go_ibm_db"
)
