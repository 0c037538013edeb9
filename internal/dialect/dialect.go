// Package dialect is the public entry point of the engine: it binds a backend,
// its credentials and its introspection queries to a lazily created
// connection pool.
//
// Close tears down the whole pool, including sessions used by queries still
// in flight. It does not close a single query's session: every query already
// releases its own session when it completes.
package dialect

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agnosticeng/sqldialect/internal/catalog"
	"github.com/agnosticeng/sqldialect/internal/engine"
	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/agnosticeng/sqldialect/internal/pool"
	"github.com/agnosticeng/sqldialect/internal/statement"
	"github.com/google/uuid"
	slogctx "github.com/veqryn/slog-context"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	default:
		return "closed"
	}
}

type Option func(*Dialect)

// WithParser replaces the statement splitter used by Query.
func WithParser(parser func(string) []string) Option {
	return func(d *Dialect) { d.parser = parser }
}

// WithDriver replaces the backend's native driver.
func WithDriver(driver native.Driver) Option {
	return func(d *Dialect) { d.driver = driver }
}

// WithQueries overrides the backend's introspection queries field by field.
func WithQueries(queries Queries) Option {
	return func(d *Dialect) { d.queries = d.queries.Merge(queries) }
}

type Dialect struct {
	conf    Config
	backend Backend
	queries Queries
	parser  func(string) []string
	driver  native.Driver

	lock       sync.Mutex
	pool       *pool.Pool
	connString string
	state      State
}

func New(conf Config, opts ...Option) (*Dialect, error) {
	conf = conf.WithDefaults()

	backend, err := Lookup(conf.Backend)

	if err != nil {
		return nil, err
	}

	if len(conf.ID) == 0 {
		id, err := uuid.NewV7()

		if err != nil {
			return nil, fmt.Errorf("failed to generate connection id: %w", err)
		}

		conf.ID = id.String()
	}

	var d = &Dialect{
		conf:    conf,
		backend: backend,
		queries: backend.Queries.Merge(conf.Queries),
		parser:  statement.Split,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.driver == nil {
		d.driver, err = backend.NewDriver(conf, d.queries)

		if err != nil {
			return nil, fmt.Errorf("failed to create %s driver: %w", backend.Name, err)
		}
	}

	return d, nil
}

func (d *Dialect) ID() string {
	return d.conf.ID
}

func (d *Dialect) Backend() string {
	return d.backend.Name
}

func (d *Dialect) State() State {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.state
}

// Stats reports the pool usage; it is zero until the first Open.
func (d *Dialect) Stats() pool.Stats {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.pool == nil {
		return pool.Stats{}
	}

	return d.pool.Stats()
}

func (d *Dialect) ConnectionString() string {
	if len(d.conf.Credentials.ConnectString) > 0 {
		return d.conf.Credentials.ConnectString
	}

	return d.backend.ConnString(d.conf.Credentials, d.backend.DefaultPort)
}

// Open creates the pool on first use and checks that a session can be
// acquired. It does nothing when the dialect is already open.
func (d *Dialect) Open(ctx context.Context) error {
	d.lock.Lock()

	if d.state == Open {
		d.lock.Unlock()
		return nil
	}

	if d.pool == nil {
		d.pool = pool.New(d.driver, d.conf.Pool)
	}

	var (
		p          = d.pool
		connString = d.ConnectionString()
	)

	d.lock.Unlock()

	session, err := p.Acquire(ctx, connString)

	if err != nil {
		return err
	}

	if err := session.Close(); err != nil {
		return err
	}

	d.lock.Lock()
	d.connString = connString
	d.state = Open
	d.lock.Unlock()

	slogctx.FromCtx(ctx).Debug("dialect opened", "id", d.conf.ID, "backend", d.backend.Name)
	return nil
}

// Close releases every connection of the pool. Closing a dialect that is not
// open is a no-op.
func (d *Dialect) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.state == Closed {
		return nil
	}

	d.state = Closed
	return d.pool.Close()
}

func (d *Dialect) acquire(ctx context.Context) (*pool.Session, error) {
	if err := d.Open(ctx); err != nil {
		return nil, err
	}

	d.lock.Lock()
	var (
		p          = d.pool
		connString = d.connString
	)
	d.lock.Unlock()

	return p.Acquire(ctx, connString)
}

// Query splits text into statements and runs them in order on a fresh
// session, returning one result per statement.
func (d *Dialect) Query(ctx context.Context, text string) ([]engine.QueryResult, error) {
	var statements = d.parser(text)

	session, err := d.acquire(ctx)

	if err != nil {
		return nil, err
	}

	var ex = engine.Executor{ConnID: d.conf.ID}
	return ex.ExecuteBatch(ctx, session, statements)
}

func (d *Dialect) TestConnection(ctx context.Context) error {
	_, err := d.Query(ctx, d.queries.TestConnection)
	return err
}

func (d *Dialect) GetTables(ctx context.Context) ([]catalog.Table, error) {
	rows, err := d.queryRows(ctx, d.queries.FetchTables)

	if err != nil {
		return nil, err
	}

	return catalog.MapTables(ctx, rows), nil
}

func (d *Dialect) GetColumns(ctx context.Context) ([]catalog.Column, error) {
	rows, err := d.queryRows(ctx, d.queries.FetchColumns)

	if err != nil {
		return nil, err
	}

	return catalog.MapColumns(ctx, rows), nil
}

func (d *Dialect) GetFunctions(ctx context.Context) ([]catalog.Function, error) {
	rows, err := d.queryRows(ctx, d.queries.FetchFunctions)

	if err != nil {
		return nil, err
	}

	return catalog.MapFunctions(ctx, rows), nil
}

func (d *Dialect) queryRows(ctx context.Context, query string) ([]*native.Row, error) {
	results, err := d.Query(ctx, query)

	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}

	return results[0].Results, nil
}

// DescribeTable resolves the current database on its own session, then
// describes schema.table on a fresh one.
func (d *Dialect) DescribeTable(ctx context.Context, prefixedTable string) ([]engine.QueryResult, error) {
	var schema, table = catalog.SplitTableName(prefixedTable)

	database, err := d.currentDatabase(ctx)

	if err != nil {
		return nil, err
	}

	session, err := d.acquire(ctx)

	if err != nil {
		return nil, err
	}

	defer session.Close()

	rows, err := session.Describe(ctx, native.DescribeObject{
		Database: database,
		Schema:   schema,
		Table:    table,
	})

	if err != nil {
		return nil, engine.NormalizeError(err)
	}

	return []engine.QueryResult{engine.ResultFromRows(d.conf.ID, "describe", rows)}, nil
}

func (d *Dialect) currentDatabase(ctx context.Context) (string, error) {
	session, err := d.acquire(ctx)

	if err != nil {
		return "", err
	}

	defer session.Close()

	res, err := session.QueryResult(ctx, d.queries.CurrentDatabase)

	if err != nil {
		return "", engine.NormalizeError(err)
	}

	defer res.Close()

	if err := res.Err(); err != nil {
		return "", engine.NormalizeError(err)
	}

	row, err := res.Fetch()

	if err != nil {
		return "", engine.NormalizeError(err)
	}

	return databaseName(row), nil
}

func databaseName(row *native.Row) string {
	var keys = row.Keys()

	if len(keys) == 0 {
		return ""
	}

	var key = keys[0]

	for _, k := range keys {
		if strings.EqualFold(k, "name") {
			key = k
			break
		}
	}

	v, _ := row.Get(key)

	if v == nil {
		return ""
	}

	return fmt.Sprint(v)
}
