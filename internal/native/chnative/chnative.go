// Package chnative implements the native driver contract for ClickHouse.
package chnative

import (
	"context"
	"fmt"
	"maps"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/iancoleman/strcase"
)

type Config struct {
	Settings map[string]any
}

type Driver struct {
	conf Config
}

func New(conf Config) *Driver {
	return &Driver{conf: conf}
}

func (d *Driver) Name() string {
	return "clickhouse"
}

func (d *Driver) Open(ctx context.Context, dsn string) (native.Conn, error) {
	chopts, err := clickhouse.ParseDSN(dsn)

	if err != nil {
		return nil, err
	}

	var settings = make(clickhouse.Settings)
	maps.Copy(settings, chopts.Settings)
	maps.Copy(settings, serverSettings(d.conf.Settings))

	chopts.MaxOpenConns = 1
	chopts.MaxIdleConns = 1
	chopts.Settings = settings

	chconn, err := clickhouse.Open(chopts)

	if err != nil {
		return nil, MapError(err)
	}

	if err := chconn.Ping(ctx); err != nil {
		_ = chconn.Close()
		return nil, MapError(err)
	}

	return &Conn{chConn: chconn}, nil
}

type Conn struct {
	chConn driver.Conn
}

func (conn *Conn) ExecNonQuery(ctx context.Context, query string) (int64, error) {
	var (
		sp  = newStatementProgress(query)
		err = conn.chConn.Exec(sp.context(ctx), query)
	)

	sp.log(ctx, "exec")

	if err != nil {
		return 0, MapError(err)
	}

	return sp.affectedRows(), nil
}

func (conn *Conn) QueryResult(ctx context.Context, query string) (native.Result, error) {
	var sp = newStatementProgress(query)

	rows, err := conn.chConn.Query(sp.context(ctx), query)

	if err != nil {
		sp.log(ctx, "query")
		return nil, MapError(err)
	}

	var types = rows.ColumnTypes()
	var scanTypes = make([]reflect.Type, len(types))

	for i, ct := range types {
		scanTypes[i] = ct.ScanType()
	}

	return &Result{ctx: ctx, progress: sp, rows: rows, cols: rows.Columns(), scanTypes: scanTypes}, nil
}

func (conn *Conn) Describe(ctx context.Context, obj native.DescribeObject) ([]*native.Row, error) {
	var database = obj.Schema

	if len(database) == 0 {
		database = obj.Database
	}

	var q = fmt.Sprintf("DESCRIBE TABLE %s", quoteIdentifier(obj.Table))

	if len(database) > 0 {
		q = fmt.Sprintf("DESCRIBE TABLE %s.%s", quoteIdentifier(database), quoteIdentifier(obj.Table))
	}

	res, err := conn.QueryResult(ctx, q)

	if err != nil {
		return nil, err
	}

	defer res.Close()

	return native.Drain(res)
}

func (conn *Conn) Close() error {
	return conn.chConn.Close()
}

type Result struct {
	ctx       context.Context
	progress  *statementProgress
	rows      driver.Rows
	cols      []string
	scanTypes []reflect.Type
}

func (r *Result) Err() error {
	return nil
}

func (r *Result) Fetch() (*native.Row, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, MapError(err)
		}

		return nil, nil
	}

	var dest = make([]any, len(r.scanTypes))

	for i, t := range r.scanTypes {
		dest[i] = reflect.New(t).Interface()
	}

	if err := r.rows.Scan(dest...); err != nil {
		return nil, MapError(err)
	}

	var vals = make([]any, len(dest))

	for i, d := range dest {
		vals[i] = derefValue(reflect.ValueOf(d).Elem())
	}

	return native.NewRow(r.cols, vals), nil
}

func (r *Result) Close() error {
	var err = r.rows.Close()

	r.progress.log(r.ctx, "query")
	return err
}

// derefValue unwraps Nullable columns, which scan into pointer types.
func derefValue(v reflect.Value) any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	return v.Interface()
}

// serverSettings converts configured settings to ClickHouse setting names,
// so that maxExecutionTime and max_execution_time are the same setting.
// Unset values are dropped.
func serverSettings(settings map[string]any) clickhouse.Settings {
	var m = make(clickhouse.Settings, len(settings))

	for k, v := range settings {
		if v == nil {
			continue
		}

		m[strcase.ToSnake(k)] = v
	}

	return m
}

func quoteIdentifier(s string) string {
	var b = []byte{'`'}

	for i := 0; i < len(s); i++ {
		if s[i] == '`' || s[i] == '\\' {
			b = append(b, '\\')
		}

		b = append(b, s[i])
	}

	return string(append(b, '`'))
}
