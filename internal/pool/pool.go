// Package pool keeps a bounded set of native connections and leases them out
// as sessions. Closing a session returns its connection to the pool; closing
// the pool closes every connection, including the ones currently leased.
package pool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/hashicorp/go-multierror"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/semaphore"
)

const DefaultMaxSize = 10

type Config struct {
	MaxSize         int           `koanf:"max_size"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
}

func (conf Config) WithDefaults() Config {
	if conf.MaxSize <= 0 {
		conf.MaxSize = DefaultMaxSize
	}

	if conf.MaxConnLifetime <= 0 {
		conf.MaxConnLifetime = time.Hour
	}

	return conf
}

type Pool struct {
	conf    Config
	driver  native.Driver
	sem     *semaphore.Weighted
	lock    sync.Mutex
	counter int
	conns   map[int]*conn
}

type conn struct {
	id         int
	connString string
	createdAt  time.Time
	leased     bool
	native     native.Conn
}

type Stats struct {
	Leased int
	Idle   int
}

func New(driver native.Driver, conf Config) *Pool {
	conf = conf.WithDefaults()

	return &Pool{
		conf:   conf,
		driver: driver,
		sem:    semaphore.NewWeighted(int64(conf.MaxSize)),
		conns:  make(map[int]*conn),
	}
}

func (pool *Pool) MaxSize() int {
	return pool.conf.MaxSize
}

// Acquire leases a session for connString. It blocks while MaxSize sessions
// are leased, until one is closed or ctx is done.
func (pool *Pool) Acquire(ctx context.Context, connString string) (*Session, error) {
	var logger = slogctx.FromCtx(ctx)

	if err := pool.sem.Acquire(ctx, 1); err != nil {
		return nil, &ConnectionError{Op: "acquire", Err: err}
	}

	c, err := pool.lease(ctx, connString)

	if err != nil {
		pool.sem.Release(1)
		return nil, err
	}

	logger.Log(ctx, slog.Level(-10), "session acquired", "conn", c.id)

	return &Session{pool: pool, conn: c, logger: logger}, nil
}

func (pool *Pool) lease(ctx context.Context, connString string) (*conn, error) {
	pool.lock.Lock()

	for {
		var c = pool.findFreeConn(connString)

		if c == nil {
			break
		}

		if time.Since(c.createdAt) < pool.conf.MaxConnLifetime {
			c.leased = true
			pool.lock.Unlock()
			return c, nil
		}

		delete(pool.conns, c.id)

		if err := c.native.Close(); err != nil {
			slogctx.FromCtx(ctx).Warn("failed to close expired connection", "conn", c.id, "error", err.Error())
		}
	}

	var id = pool.counter
	pool.counter++
	pool.lock.Unlock()

	nconn, err := pool.driver.Open(ctx, connString)

	if err != nil {
		return nil, &ConnectionError{Op: "open", Err: err}
	}

	var c = &conn{
		id:         id,
		connString: connString,
		createdAt:  time.Now(),
		leased:     true,
		native:     nconn,
	}

	pool.lock.Lock()
	pool.conns[id] = c
	pool.lock.Unlock()

	return c, nil
}

func (pool *Pool) release(logger *slog.Logger, c *conn, broken bool) {
	defer pool.sem.Release(1)

	pool.lock.Lock()
	c.leased = false

	if !broken {
		pool.lock.Unlock()
		return
	}

	// a pool-wide Close may already have closed and removed it
	var managed = pool.conns[c.id] == c
	delete(pool.conns, c.id)
	pool.lock.Unlock()

	if !managed {
		return
	}

	logger.Debug("discarding broken connection", "conn", c.id)

	if err := c.native.Close(); err != nil {
		logger.Warn("failed to close broken connection", "conn", c.id, "error", err.Error())
	}
}

func (pool *Pool) findFreeConn(connString string) *conn {
	for _, v := range pool.conns {
		if !v.leased && v.connString == connString {
			return v
		}
	}

	return nil
}

// Close closes every connection under pool management, leased or idle.
// Sessions still in flight fail on their next native call and release their
// capacity when closed. The pool can be used again after Close.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	var res *multierror.Error

	for id, c := range pool.conns {
		if err := c.native.Close(); err != nil {
			res = multierror.Append(res, err)
		}

		delete(pool.conns, id)
	}

	if err := res.ErrorOrNil(); err != nil {
		return &ConnectionError{Op: "close", Err: err}
	}

	return nil
}

func (pool *Pool) Stats() Stats {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	var stats Stats

	for _, c := range pool.conns {
		if c.leased {
			stats.Leased++
		} else {
			stats.Idle++
		}
	}

	return stats
}
