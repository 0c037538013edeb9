package meta

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agnosticeng/sqldialect/cmd/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	app := &cli.App{
		Name:                      "sqldialect",
		Writer:                    &buf,
		DisableSliceFlagSeparator: true,
		Commands:                  append([]*cli.Command{query.Command()}, Commands()...),
	}

	err := app.Run(append([]string{"sqldialect"}, args...))
	return buf.String(), err
}

func TestCommands_SQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "app.db")
	conn := []string{"--backend", "sqlite", "--database", db}

	out, err := runApp(t, append([]string{"test"}, conn...)...)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, err = runApp(t, append(append([]string{"query"}, conn...),
		"-e", "create table orders (id integer primary key, note text); insert into orders values (1, 'x')",
	)...)
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows were affected.")

	out, err = runApp(t, append(append([]string{"tables"}, conn...), "-f", "json")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "orders"`)

	out, err = runApp(t, append(append([]string{"columns"}, conn...), "-f", "csv")...)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	out, err = runApp(t, append(append([]string{"describe"}, conn...), "-f", "yaml", "main.orders")...)
	require.NoError(t, err)
	assert.Contains(t, out, "query: describe")

	_, err = runApp(t, append([]string{"describe"}, conn...)...)
	assert.ErrorContains(t, err, "a table must be specified")
}

func TestCommands_UnknownFormat(t *testing.T) {
	_, err := runApp(t, "tables", "--backend", "sqlite", "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}
