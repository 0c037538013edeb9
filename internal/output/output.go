// Package output renders query results and catalog listings for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/agnosticeng/sqldialect/internal/engine"
	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

var Formats = []string{"table", "json", "yaml", "csv", "markdown"}

func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unknown output format %q, expected one of %v", format, Formats)
	}

	return nil
}

// Results writes one block per query result in tabular formats, or the whole
// list at once in json and yaml.
func Results(w io.Writer, format string, results []engine.QueryResult) error {
	switch format {
	case "json", "yaml":
		return encode(w, format, results)
	}

	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}

		if len(res.Cols) > 0 {
			if err := rows(w, format, res.Cols, res.Results); err != nil {
				return err
			}
		}

		for _, msg := range res.Messages {
			fmt.Fprintln(w, msg)
		}
	}

	return nil
}

// List writes a slice of catalog entries, one row per entry, with columns in
// field order.
func List(w io.Writer, format string, entries any) error {
	switch format {
	case "json", "yaml":
		return encode(w, format, entries)
	}

	data, err := json.Marshal(entries)

	if err != nil {
		return err
	}

	var rs []*native.Row

	if err := json.Unmarshal(data, &rs); err != nil {
		return err
	}

	var cols []string

	if len(rs) > 0 {
		cols = rs[0].Keys()
	}

	return rows(w, format, cols, rs)
}

func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		var enc = yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	}

	var enc = json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rows(w io.Writer, format string, cols []string, rs []*native.Row) error {
	if len(rs) == 0 && format == "table" {
		fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	var t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	var header = make(table.Row, len(cols))

	for i, col := range cols {
		header[i] = col
	}

	t.AppendHeader(header)

	for _, r := range rs {
		var row = make(table.Row, len(cols))

		for i, col := range cols {
			v, _ := r.Get(col)
			row[i] = formatValue(v)
		}

		t.AppendRow(row)
	}

	switch format {
	case "csv":
		t.RenderCSV()
	case "markdown":
		t.RenderMarkdown()
	default:
		t.Render()
		fmt.Fprintf(w, "(%d rows)\n", len(rs))
	}

	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	return fmt.Sprintf("%v", v)
}
