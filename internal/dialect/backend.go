package dialect

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/agnosticeng/sqldialect/internal/native/chnative"
	"github.com/agnosticeng/sqldialect/internal/native/sqlnative"
	"github.com/go-sql-driver/mysql"
	"github.com/samber/lo"
)

// Queries holds the fixed introspection statements of a backend. They are
// opaque to the engine; catalog mapping only relies on the column aliases.
type Queries struct {
	TestConnection  string `koanf:"test_connection"`
	CurrentDatabase string `koanf:"current_database"`
	FetchTables     string `koanf:"fetch_tables"`
	FetchColumns    string `koanf:"fetch_columns"`
	FetchFunctions  string `koanf:"fetch_functions"`
	// DescribeTable is a text/template rendered with a native.DescribeObject.
	// Backends with a native describe call leave it empty.
	DescribeTable string `koanf:"describe_table"`
}

// Merge returns q with every non-empty field of other applied on top.
func (q Queries) Merge(other Queries) Queries {
	q.TestConnection = lo.CoalesceOrEmpty(other.TestConnection, q.TestConnection)
	q.CurrentDatabase = lo.CoalesceOrEmpty(other.CurrentDatabase, q.CurrentDatabase)
	q.FetchTables = lo.CoalesceOrEmpty(other.FetchTables, q.FetchTables)
	q.FetchColumns = lo.CoalesceOrEmpty(other.FetchColumns, q.FetchColumns)
	q.FetchFunctions = lo.CoalesceOrEmpty(other.FetchFunctions, q.FetchFunctions)
	q.DescribeTable = lo.CoalesceOrEmpty(other.DescribeTable, q.DescribeTable)
	return q
}

type Backend struct {
	Name        string
	DefaultPort int
	Queries     Queries
	ConnString  func(creds Credentials, defaultPort int) string
	NewDriver   func(conf Config, queries Queries) (native.Driver, error)
}

var (
	registryLock sync.RWMutex
	registry     = make(map[string]Backend)
)

func Register(b Backend) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[b.Name] = b
}

func Lookup(name string) (Backend, error) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	b, found := registry[name]

	if !found {
		return Backend{}, &UnknownBackendError{Name: name}
	}

	return b, nil
}

func Backends() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	var names = lo.Keys(registry)
	slices.Sort(names)
	return names
}

func init() {
	Register(Backend{
		Name:        "db2",
		DefaultPort: 50000,
		Queries:     db2Queries,
		ConnString:  db2ConnString,
		NewDriver:   sqlDriver(sqlnative.DB2DriverName),
	})

	Register(Backend{
		Name:        "postgres",
		DefaultPort: 5432,
		Queries:     postgresQueries,
		ConnString:  urlConnString("postgres"),
		NewDriver:   sqlDriver(sqlnative.PostgresDriverName),
	})

	Register(Backend{
		Name:        "mysql",
		DefaultPort: 3306,
		Queries:     mysqlQueries,
		ConnString:  mysqlConnString,
		NewDriver:   sqlDriver(sqlnative.MySQLDriverName),
	})

	Register(Backend{
		Name:        "sqlite",
		Queries:     sqliteQueries,
		ConnString:  func(creds Credentials, _ int) string { return creds.Database },
		NewDriver:   sqlDriver(sqlnative.SQLiteDriverName),
	})

	Register(Backend{
		Name:        "clickhouse",
		DefaultPort: 9000,
		Queries:     clickhouseQueries,
		ConnString:  urlConnString("clickhouse"),
		NewDriver: func(conf Config, _ Queries) (native.Driver, error) {
			return chnative.New(chnative.Config{Settings: conf.Settings}), nil
		},
	})
}

func sqlDriver(driverName string) func(Config, Queries) (native.Driver, error) {
	return func(conf Config, queries Queries) (native.Driver, error) {
		return sqlnative.New(sqlnative.Config{
			DriverName:    lo.CoalesceOrEmpty(conf.DriverName, driverName),
			DescribeQuery: queries.DescribeTable,
		})
	}
}

func port(creds Credentials, defaultPort int) int {
	if creds.Port > 0 {
		return creds.Port
	}

	return defaultPort
}

func db2ConnString(creds Credentials, defaultPort int) string {
	return fmt.Sprintf(
		"database=%s;hostname=%s;port=%d;uid=%s;pwd=%s",
		creds.Database,
		creds.Server,
		port(creds, defaultPort),
		creds.Username,
		creds.Password,
	)
}

func mysqlConnString(creds Credentials, defaultPort int) string {
	var conf = mysql.NewConfig()

	conf.User = creds.Username
	conf.Passwd = creds.Password
	conf.Net = "tcp"
	conf.Addr = net.JoinHostPort(creds.Server, strconv.Itoa(port(creds, defaultPort)))
	conf.DBName = creds.Database

	return conf.FormatDSN()
}

func urlConnString(scheme string) func(Credentials, int) string {
	return func(creds Credentials, defaultPort int) string {
		var u = url.URL{
			Scheme: scheme,
			Host:   net.JoinHostPort(creds.Server, strconv.Itoa(port(creds, defaultPort))),
			Path:   "/" + creds.Database,
		}

		if len(creds.Username) > 0 {
			u.User = url.UserPassword(creds.Username, creds.Password)
		}

		return u.String()
	}
}
