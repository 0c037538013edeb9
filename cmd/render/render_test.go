package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

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
		Commands:                  []*cli.Command{Command()},
	}

	err := app.Run(append([]string{"sqldialect", "render"}, args...))
	return buf.String(), err
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "load.sql")
	require.NoError(t, os.WriteFile(path, []byte("insert into {{ .TABLE }} values (1); select * from {{ .TABLE }}"), 0644))

	out, err := runApp(t, "--var", "TABLE=orders", path)
	require.NoError(t, err)
	assert.Contains(t, out, "insert into orders values (1); select * from orders")

	out, err = runApp(t, "--var", "TABLE=orders", "--split", path)
	require.NoError(t, err)
	assert.Contains(t, out, "-- statement 1\ninsert into orders values (1);\n")
	assert.Contains(t, out, "-- statement 2\nselect * from orders;\n")
}

func TestRender_NoPath(t *testing.T) {
	_, err := runApp(t)
	assert.ErrorContains(t, err, "a path must be specified")
}
