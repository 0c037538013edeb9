package dialect

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/agnosticeng/sqldialect/internal/native/nativetest"
	"github.com/agnosticeng/sqldialect/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFake(t *testing.T, drv *nativetest.Driver, opts ...Option) *Dialect {
	t.Helper()

	d, err := New(Config{
		ID:      "conn-1",
		Backend: "db2",
		Credentials: Credentials{
			Server:   "localhost",
			Port:     50000,
			Database: "SAMPLE",
			Username: "db2inst1",
			Password: "secret",
		},
	}, append([]Option{WithDriver(drv)}, opts...)...)
	require.NoError(t, err)

	return d
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(Config{Backend: "oracle"})

	var ube *UnknownBackendError
	require.True(t, errors.As(err, &ube))
	assert.Equal(t, "oracle", ube.Name)
}

func TestNew_GeneratesID(t *testing.T) {
	d, err := New(Config{Backend: "sqlite"})
	require.NoError(t, err)
	assert.Len(t, d.ID(), 36)
	assert.Equal(t, "sqlite", d.Backend())
}

func TestDialect_CloseTwice(t *testing.T) {
	d := newFake(t, nativetest.NewDriver())

	assert.NoError(t, d.Close())
	assert.Equal(t, Closed, d.State())
	assert.NoError(t, d.Close())
	assert.Equal(t, Closed, d.State())
}

func TestDialect_OpenThenClose(t *testing.T) {
	drv := nativetest.NewDriver()
	d := newFake(t, drv)
	ctx := context.Background()

	require.NoError(t, d.Open(ctx))
	assert.Equal(t, Open, d.State())
	require.NoError(t, d.Open(ctx))
	assert.EqualValues(t, 1, drv.Opened.Load())
	assert.Equal(t, "database=SAMPLE;hostname=localhost;port=50000;uid=db2inst1;pwd=secret", drv.Conns[0].ConnString)

	require.NoError(t, d.Close())
	assert.Equal(t, Closed, d.State())
	assert.EqualValues(t, 1, drv.Closed.Load())
	assert.NoError(t, d.Close())
}

func TestDialect_OpenError(t *testing.T) {
	drv := nativetest.NewDriver()
	drv.OpenErr = errors.New("SQL30081N communication error")
	d := newFake(t, drv)

	err := d.Open(context.Background())

	var ce *pool.ConnectionError
	require.True(t, errors.As(err, &ce))
	assert.ErrorIs(t, err, drv.OpenErr)
	assert.Equal(t, Closed, d.State())
}

func TestDialect_ConnectString(t *testing.T) {
	drv := nativetest.NewDriver()

	d, err := New(Config{
		Backend:     "db2",
		Credentials: Credentials{ConnectString: "DSN=prod", Database: "ignored"},
	}, WithDriver(drv))
	require.NoError(t, err)

	require.NoError(t, d.Open(context.Background()))
	assert.Equal(t, "DSN=prod", drv.Conns[0].ConnString)
}

func TestDialect_Query(t *testing.T) {
	drv := nativetest.NewDriver().
		On("insert into t values (1)", nativetest.Response{Affected: 1}).
		On("select id from t", nativetest.Response{Rows: []*native.Row{
			native.NewRow([]string{"ID"}, []any{1}),
		}})
	d := newFake(t, drv)

	results, err := d.Query(context.Background(), "insert into t values (1); select id from t")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "conn-1", results[0].ConnID)
	assert.Equal(t, []string{"1 rows were affected."}, results[0].Messages)
	assert.Equal(t, []string{"ID"}, results[1].Cols)
	assert.Len(t, results[1].Results, 1)

	assert.Equal(t, Open, d.State())
	assert.Equal(t, pool.Stats{Idle: 1}, d.Stats())
}

func TestDialect_QueryFailureReleasesSession(t *testing.T) {
	de := &native.DriverError{Code: -803, State: "23505", Message: "duplicate key"}
	drv := nativetest.NewDriver().On("insert into t values (1)", nativetest.Response{Err: de})
	d := newFake(t, drv)

	results, err := d.Query(context.Background(), "insert into t values (1); select 1 from sysibm.sysdummy1")
	assert.Nil(t, results)
	assert.Same(t, de, err)
	assert.Equal(t, 0, d.Stats().Leased)
}

func TestDialect_CustomParser(t *testing.T) {
	drv := nativetest.NewDriver()
	d := newFake(t, drv, WithParser(func(text string) []string {
		return []string{text}
	}))

	results, err := d.Query(context.Background(), "select 1; select 2")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "select 1; select 2", results[0].Query)
}

func TestDialect_TestConnection(t *testing.T) {
	drv := nativetest.NewDriver()
	d := newFake(t, drv)

	require.NoError(t, d.TestConnection(context.Background()))
	assert.Equal(t, []string{db2Queries.TestConnection}, drv.Executed())

	drv.On(db2Queries.TestConnection, nativetest.Response{Sentinel: errors.New("no fetch mode")})
	assert.ErrorContains(t, d.TestConnection(context.Background()), "no fetch mode")
}

func TestDialect_GetColumns(t *testing.T) {
	drv := nativetest.NewDriver().On(db2Queries.FetchColumns, nativetest.Response{Rows: []*native.Row{
		native.NewRow(
			[]string{"COLUMNNAME", "ISNULLABLE", "KEYTYPE", "Size", "Type"},
			[]any{"id", "NO", "P", "10", "INTEGER"},
		),
	}})
	d := newFake(t, drv)

	cols, err := d.GetColumns(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "id", cols[0].ColumnName)
	require.NotNil(t, cols[0].IsNullable)
	assert.False(t, *cols[0].IsNullable)
	assert.True(t, cols[0].IsPk)
	assert.False(t, cols[0].IsFk)
	require.NotNil(t, cols[0].Size)
	assert.Equal(t, 10, *cols[0].Size)
	assert.Equal(t, "INTEGER", cols[0].Type)
}

func TestDialect_GetTablesAndFunctions(t *testing.T) {
	drv := nativetest.NewDriver().
		On(db2Queries.FetchTables, nativetest.Response{Rows: []*native.Row{
			native.NewRow([]string{"TABLENAME", "ISVIEW", "NUMBEROFCOLUMNS"}, []any{"ORDERS", int64(0), int64(4)}),
		}}).
		On(db2Queries.FetchFunctions, nativetest.Response{Rows: []*native.Row{
			native.NewRow([]string{"NAME", "ARGS"}, []any{"ADD", "A INTEGER, B INTEGER"}),
		}})
	d := newFake(t, drv)
	ctx := context.Background()

	tables, err := d.GetTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 4, tables[0].NumberOfColumns)

	fns, err := d.GetFunctions(ctx)
	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, []string{"A INTEGER", "B INTEGER"}, fns[0].Args)
}

func TestDialect_MetadataEmpty(t *testing.T) {
	d := newFake(t, nativetest.NewDriver(), WithQueries(Queries{FetchTables: "  "}))

	tables, err := d.GetTables(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestDialect_DescribeTable(t *testing.T) {
	drv := nativetest.NewDriver().
		On(db2Queries.CurrentDatabase, nativetest.Response{Rows: []*native.Row{
			native.NewRow([]string{"NAME"}, []any{"SAMPLE"}),
		}}).
		OnDescribe(nativetest.Response{Rows: []*native.Row{
			native.NewRow([]string{"COLNAME", "TYPENAME"}, []any{"ID", "INTEGER"}),
			native.NewRow([]string{"COLNAME", "TYPENAME"}, []any{"NAME", "VARCHAR"}),
		}})
	d := newFake(t, drv)

	results, err := d.DescribeTable(context.Background(), "APP.ORDERS")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "describe", results[0].Query)
	assert.Equal(t, []string{"COLNAME", "TYPENAME"}, results[0].Cols)
	assert.Len(t, results[0].Results, 2)
	assert.Contains(t, drv.Executed(), "describe SAMPLE.APP.ORDERS")
	assert.Equal(t, 0, d.Stats().Leased)
}

func TestDialect_DescribeTable_LookupFailure(t *testing.T) {
	lookupErr := errors.New("SQL0204N CURRENT SERVER is an undefined name")
	drv := nativetest.NewDriver().On(db2Queries.CurrentDatabase, nativetest.Response{Err: lookupErr})
	d := newFake(t, drv)

	results, err := d.DescribeTable(context.Background(), "APP.ORDERS")
	assert.Nil(t, results)
	assert.ErrorIs(t, err, lookupErr)
	assert.Equal(t, 0, d.Stats().Leased)

	for _, q := range drv.Executed() {
		assert.NotContains(t, q, "describe")
	}
}

func TestDialect_ConcurrentQueries(t *testing.T) {
	drv := nativetest.NewDriver().On("select 1", nativetest.Response{Rows: []*native.Row{
		native.NewRow([]string{"ONE"}, []any{1}),
	}})

	d, err := New(Config{
		ID:      "conn-1",
		Backend: "db2",
		Pool:    pool.Config{MaxSize: 2},
	}, WithDriver(drv))
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 20)
	)

	for i := range errs {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.Query(context.Background(), fmt.Sprintf("select 1; -- %d", i))
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	assert.LessOrEqual(t, drv.Opened.Load(), int64(2))
	assert.Zero(t, drv.Overlaps.Load())
	assert.Equal(t, 0, d.Stats().Leased)
	require.NoError(t, d.Close())
}
