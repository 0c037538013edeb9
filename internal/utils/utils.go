package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

func ParseKeyValues(kvs []string, separator string) map[string]interface{} {
	var m = make(map[string]interface{})

	for _, kv := range kvs {
		var k, v, _ = strings.Cut(kv, separator)
		m[k] = v
	}

	return m
}

func RenderTemplate(tmpl *template.Template, name string, vars map[string]interface{}) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.ExecuteTemplate(&buf, name, vars); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// SQLFuncMap returns the sprig functions plus helpers to quote values safely
// inside SQL text.
func SQLFuncMap() template.FuncMap {
	var m = sprig.TxtFuncMap()
	m["literal"] = QuoteLiteral
	m["ident"] = QuoteIdentifier
	return m
}

func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// LoadTemplates parses every file in paths as a template named after its base
// name. Directories contribute their *.sql files.
func LoadTemplates(paths ...string) (*template.Template, error) {
	var tmpl = template.New("sqldialect").Option("missingkey=default").Funcs(SQLFuncMap())

	for _, path := range paths {
		stat, err := os.Stat(path)

		if err != nil {
			return nil, err
		}

		var files = []string{path}

		if stat.IsDir() {
			files, err = filepath.Glob(filepath.Join(path, "*.sql"))

			if err != nil {
				return nil, err
			}
		}

		for _, file := range files {
			content, err := os.ReadFile(file)

			if err != nil {
				return nil, err
			}

			if _, err := tmpl.New(filepath.Base(file)).Parse(string(content)); err != nil {
				return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
			}
		}
	}

	return tmpl, nil
}

// TemplateNames returns the names of the loaded templates, sorted.
func TemplateNames(tmpl *template.Template) []string {
	var names []string

	for _, t := range tmpl.Templates() {
		if t.Name() == tmpl.Name() {
			continue
		}

		names = append(names, t.Name())
	}

	slices.Sort(names)
	return names
}
