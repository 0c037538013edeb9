// Package nativetest provides a scripted in-memory native driver for tests.
package nativetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/agnosticeng/sqldialect/internal/native"
)

var ErrClosed = errors.New("connection closed")

// Response scripts what a statement returns.
type Response struct {
	Affected int64
	Rows     []*native.Row
	// Err is returned by the native call itself.
	Err error
	// Sentinel is reported by Result.Err instead of being returned.
	Sentinel error
	// FetchErr is returned by Fetch once FetchAfter rows have been read.
	FetchErr   error
	FetchAfter int
}

type Driver struct {
	mu        sync.Mutex
	responses map[string]Response
	describe  Response
	OpenErr   error
	OpenHook  func(ctx context.Context, connString string) error
	Conns     []*Conn
	Opened    atomic.Int64
	Closed    atomic.Int64
	Overlaps  atomic.Int64
}

func NewDriver() *Driver {
	return &Driver{responses: make(map[string]Response)}
}

func (d *Driver) Name() string {
	return "fake"
}

// On scripts the response for an exact statement text.
func (d *Driver) On(query string, resp Response) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses[query] = resp
	return d
}

func (d *Driver) OnDescribe(resp Response) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.describe = resp
	return d
}

func (d *Driver) response(query string) Response {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.responses[query]
}

func (d *Driver) Open(ctx context.Context, connString string) (native.Conn, error) {
	if d.OpenHook != nil {
		if err := d.OpenHook(ctx, connString); err != nil {
			return nil, err
		}
	}

	if d.OpenErr != nil {
		return nil, d.OpenErr
	}

	var conn = &Conn{driver: d, ConnString: connString}

	d.mu.Lock()
	d.Conns = append(d.Conns, conn)
	d.mu.Unlock()
	d.Opened.Add(1)
	return conn, nil
}

// Executed returns every statement issued on every connection, in order per
// connection.
func (d *Driver) Executed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var res []string

	for _, conn := range d.Conns {
		res = append(res, conn.Executed()...)
	}

	return res
}

type Conn struct {
	driver     *Driver
	ConnString string
	mu         sync.Mutex
	executed   []string
	busy       atomic.Bool
	closed     atomic.Bool
}

func (c *Conn) enter() func() {
	if !c.busy.CompareAndSwap(false, true) {
		c.driver.Overlaps.Add(1)
		return func() {}
	}

	return func() { c.busy.Store(false) }
}

func (c *Conn) record(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.executed = append(c.executed, q)
}

func (c *Conn) Executed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.executed...)
}

func (c *Conn) IsClosed() bool {
	return c.closed.Load()
}

func (c *Conn) ExecNonQuery(ctx context.Context, query string) (int64, error) {
	defer c.enter()()

	if c.closed.Load() {
		return 0, ErrClosed
	}

	c.record(query)
	var resp = c.driver.response(query)

	if resp.Err != nil {
		return 0, resp.Err
	}

	return resp.Affected, nil
}

func (c *Conn) QueryResult(ctx context.Context, query string) (native.Result, error) {
	defer c.enter()()

	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.record(query)
	var resp = c.driver.response(query)

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Result{conn: c, resp: resp}, nil
}

func (c *Conn) Describe(ctx context.Context, obj native.DescribeObject) ([]*native.Row, error) {
	defer c.enter()()

	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.record(fmt.Sprintf("describe %s.%s.%s", obj.Database, obj.Schema, obj.Table))

	c.driver.mu.Lock()
	var resp = c.driver.describe
	c.driver.mu.Unlock()

	if resp.Err != nil {
		return nil, resp.Err
	}

	return resp.Rows, nil
}

func (c *Conn) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		c.driver.Closed.Add(1)
	}

	return nil
}

type Result struct {
	conn   *Conn
	resp   Response
	pos    int
	Closed bool
}

func (r *Result) Err() error {
	return r.resp.Sentinel
}

func (r *Result) Fetch() (*native.Row, error) {
	defer r.conn.enter()()

	if r.resp.FetchErr != nil && r.pos >= r.resp.FetchAfter {
		return nil, r.resp.FetchErr
	}

	if r.pos >= len(r.resp.Rows) {
		return nil, nil
	}

	var row = r.resp.Rows[r.pos]
	r.pos++
	return row, nil
}

func (r *Result) Close() error {
	r.Closed = true
	return nil
}
