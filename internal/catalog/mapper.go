package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnosticeng/sqldialect/internal/native"
	"github.com/go-viper/mapstructure/v2"
	"github.com/samber/lo"
	slogctx "github.com/veqryn/slog-context"
)

var argsSeparator = regexp.MustCompile(`, *`)

type rawTable struct {
	TableName       string `mapstructure:"TABLENAME"`
	IsView          any    `mapstructure:"ISVIEW"`
	NumberOfColumns any    `mapstructure:"NUMBEROFCOLUMNS"`
	TableCatalog    string `mapstructure:"TABLECATALOG"`
	DBName          string `mapstructure:"DBNAME"`
	TableSchema     string `mapstructure:"TABLESCHEMA"`
	Tree            any    `mapstructure:"TREE"`
}

type rawColumn struct {
	ColumnName   string `mapstructure:"COLUMNNAME"`
	DefaultValue any    `mapstructure:"DEFAULTVALUE"`
	IsNullable   any    `mapstructure:"ISNULLABLE"`
	Size         any    `mapstructure:"SIZE"`
	TableCatalog string `mapstructure:"TABLECATALOG"`
	DBName       string `mapstructure:"DBNAME"`
	TableName    string `mapstructure:"TABLENAME"`
	TableSchema  string `mapstructure:"TABLESCHEMA"`
	Type         string `mapstructure:"TYPE"`
	KeyType      string `mapstructure:"KEYTYPE"`
	Tree         any    `mapstructure:"TREE"`
}

type rawFunction struct {
	Name       string `mapstructure:"NAME"`
	DBSchema   string `mapstructure:"DBSCHEMA"`
	DBName     string `mapstructure:"DBNAME"`
	Signature  string `mapstructure:"SIGNATURE"`
	Args       string `mapstructure:"ARGS"`
	ResultType string `mapstructure:"RESULTTYPE"`
	Tree       any    `mapstructure:"TREE"`
}

func decodeRow[T any](row *native.Row) (T, error) {
	var raw T

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})

	if err != nil {
		return raw, err
	}

	if err := dec.Decode(row.Map()); err != nil {
		return raw, err
	}

	return raw, nil
}

func mapRows[R any, T any](ctx context.Context, kind string, rows []*native.Row, f func(R) T) []T {
	var logger = slogctx.FromCtx(ctx)

	return lo.FilterMap(rows, func(row *native.Row, i int) (T, bool) {
		var zero T

		if row == nil {
			return zero, false
		}

		raw, err := decodeRow[R](row)

		if err != nil {
			logger.Warn("skipping undecodable catalog row", "kind", kind, "index", i, "error", err.Error())
			return zero, false
		}

		return f(raw), true
	})
}

func MapTables(ctx context.Context, rows []*native.Row) []Table {
	return mapRows(ctx, "table", rows, func(raw rawTable) Table {
		var n, _ = toInt(raw.NumberOfColumns)

		return Table{
			Name:            raw.TableName,
			IsView:          truthy(raw.IsView),
			NumberOfColumns: n,
			TableCatalog:    raw.TableCatalog,
			TableDatabase:   raw.DBName,
			TableSchema:     raw.TableSchema,
			Tree:            raw.Tree,
		}
	})
}

func MapColumns(ctx context.Context, rows []*native.Row) []Column {
	return mapRows(ctx, "column", rows, func(raw rawColumn) Column {
		var col = Column{
			ColumnName:    raw.ColumnName,
			DefaultValue:  raw.DefaultValue,
			TableCatalog:  raw.TableCatalog,
			TableDatabase: raw.DBName,
			TableName:     raw.TableName,
			TableSchema:   raw.TableSchema,
			Type:          raw.Type,
			IsPk:          raw.KeyType == "P",
			IsFk:          raw.KeyType == "R",
			Tree:          raw.Tree,
		}

		if truthy(raw.IsNullable) {
			col.IsNullable = lo.ToPtr(strings.ToLower(fmt.Sprint(raw.IsNullable)) == "yes")
		}

		if n, ok := toInt(raw.Size); ok {
			col.Size = lo.ToPtr(n)
		}

		return col
	})
}

func MapFunctions(ctx context.Context, rows []*native.Row) []Function {
	return mapRows(ctx, "function", rows, func(raw rawFunction) Function {
		var args = []string{}

		if len(raw.Args) > 0 {
			args = argsSeparator.Split(raw.Args, -1)
		}

		return Function{
			Name:       raw.Name,
			Schema:     raw.DBSchema,
			Database:   raw.DBName,
			Signature:  raw.Signature,
			Args:       args,
			ResultType: raw.ResultType,
			Tree:       raw.Tree,
		}
	})
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return len(v) > 0
	case []byte:
		return len(v) > 0
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// toInt reads the leading integer of v. Backends report sizes and counts as
// strings, decimals or integers.
func toInt(v any) (int, bool) {
	switch v := v.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		return int(v), true
	case float64:
		return int(v), true
	}

	var (
		s = strings.TrimSpace(fmt.Sprint(v))
		i = 0
	)

	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}

	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	n, err := strconv.Atoi(s[:i])

	if err != nil {
		return 0, false
	}

	return n, true
}
