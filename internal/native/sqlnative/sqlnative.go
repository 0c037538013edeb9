// Package sqlnative implements the native driver contract on top of
// database/sql. Every native connection owns a dedicated *sql.DB capped at a
// single open connection, pinned through *sql.Conn, so that all statements of
// a batch share one backend session.
package sqlnative

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/agnosticeng/sqldialect/internal/utils"
)

type Config struct {
	// DriverName is the database/sql driver name (pgx, mysql, sqlite, go_ibm_db, ...).
	DriverName string
	// DescribeQuery is a text/template rendered with a native.DescribeObject.
	DescribeQuery string
	// Mappers extract backend error details; DefaultMappers is used when empty.
	Mappers []native.ErrorMapper
}

type Driver struct {
	conf     Config
	describe *template.Template
}

func New(conf Config) (*Driver, error) {
	if len(conf.DriverName) == 0 {
		return nil, fmt.Errorf("a database/sql driver name must be specified")
	}

	if len(conf.Mappers) == 0 {
		conf.Mappers = DefaultMappers
	}

	var d = &Driver{conf: conf}

	if len(conf.DescribeQuery) > 0 {
		tmpl, err := template.New("describe").Funcs(utils.SQLFuncMap()).Parse(conf.DescribeQuery)

		if err != nil {
			return nil, fmt.Errorf("failed to parse describe template: %w", err)
		}

		d.describe = tmpl
	}

	return d, nil
}

func (d *Driver) Name() string {
	return d.conf.DriverName
}

func (d *Driver) Open(ctx context.Context, connString string) (native.Conn, error) {
	db, err := sql.Open(d.conf.DriverName, connString)

	if err != nil {
		return nil, d.mapError(err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn, err := db.Conn(ctx)

	if err != nil {
		_ = db.Close()
		return nil, d.mapError(err)
	}

	return &Conn{driver: d, db: db, conn: conn}, nil
}

func (d *Driver) mapError(err error) error {
	if err == nil {
		return nil
	}

	return native.MapError(err, d.conf.Mappers...)
}

type Conn struct {
	driver *Driver
	db     *sql.DB
	conn   *sql.Conn
}

func (c *Conn) ExecNonQuery(ctx context.Context, query string) (int64, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)

	if err != nil {
		return 0, c.driver.mapError(err)
	}

	defer stmt.Close()

	res, err := stmt.ExecContext(ctx)

	if err != nil {
		return 0, c.driver.mapError(err)
	}

	n, err := res.RowsAffected()

	if err != nil {
		return 0, c.driver.mapError(err)
	}

	return n, nil
}

func (c *Conn) QueryResult(ctx context.Context, query string) (native.Result, error) {
	rows, err := c.conn.QueryContext(ctx, query)

	if err != nil {
		return nil, c.driver.mapError(err)
	}

	cols, err := rows.Columns()

	if err != nil {
		_ = rows.Close()
		return nil, c.driver.mapError(err)
	}

	return &Result{driver: c.driver, rows: rows, cols: cols}, nil
}

func (c *Conn) Describe(ctx context.Context, obj native.DescribeObject) ([]*native.Row, error) {
	if c.driver.describe == nil {
		return nil, &native.DriverError{Message: fmt.Sprintf("describe is not supported by %s", c.driver.Name())}
	}

	var buf bytes.Buffer

	if err := c.driver.describe.Execute(&buf, obj); err != nil {
		return nil, fmt.Errorf("failed to render describe template: %w", err)
	}

	res, err := c.QueryResult(ctx, strings.TrimSpace(buf.String()))

	if err != nil {
		return nil, err
	}

	defer res.Close()

	return native.Drain(res)
}

func (c *Conn) Close() error {
	var err = c.conn.Close()

	if dbErr := c.db.Close(); err == nil {
		err = dbErr
	}

	return err
}

type Result struct {
	driver *Driver
	rows   *sql.Rows
	cols   []string
}

// Err always reports nil before the first fetch: database/sql surfaces every
// statement failure as a returned error.
func (r *Result) Err() error {
	return nil
}

func (r *Result) Fetch() (*native.Row, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, r.driver.mapError(err)
		}

		return nil, nil
	}

	var (
		vals = make([]any, len(r.cols))
		dest = make([]any, len(r.cols))
	)

	for i := range vals {
		dest[i] = &vals[i]
	}

	if err := r.rows.Scan(dest...); err != nil {
		return nil, r.driver.mapError(err)
	}

	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}

	return native.NewRow(r.cols, vals), nil
}

func (r *Result) Close() error {
	return r.rows.Close()
}
