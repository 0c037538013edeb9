// Package catalog reshapes raw introspection rows into typed catalog entries.
//
// Backends disagree on how they encode nullability, key types and counts, so
// every field is decoded leniently: a row that is missing a column yields the
// zero value (or nil for tri-state fields) and an empty row set yields an
// empty list.
package catalog

import (
	"strings"
)

type Table struct {
	Name            string `json:"name" yaml:"name"`
	IsView          bool   `json:"isView" yaml:"isView"`
	NumberOfColumns int    `json:"numberOfColumns" yaml:"numberOfColumns"`
	TableCatalog    string `json:"tableCatalog" yaml:"tableCatalog"`
	TableDatabase   string `json:"tableDatabase" yaml:"tableDatabase"`
	TableSchema     string `json:"tableSchema" yaml:"tableSchema"`
	Tree            any    `json:"tree" yaml:"tree"`
}

type Column struct {
	ColumnName    string `json:"columnName" yaml:"columnName"`
	DefaultValue  any    `json:"defaultValue" yaml:"defaultValue"`
	IsNullable    *bool  `json:"isNullable" yaml:"isNullable"`
	Size          *int   `json:"size" yaml:"size"`
	TableCatalog  string `json:"tableCatalog" yaml:"tableCatalog"`
	TableDatabase string `json:"tableDatabase" yaml:"tableDatabase"`
	TableName     string `json:"tableName" yaml:"tableName"`
	TableSchema   string `json:"tableSchema" yaml:"tableSchema"`
	Type          string `json:"type" yaml:"type"`
	IsPk          bool   `json:"isPk" yaml:"isPk"`
	IsFk          bool   `json:"isFk" yaml:"isFk"`
	Tree          any    `json:"tree" yaml:"tree"`
}

type Function struct {
	Name       string   `json:"name" yaml:"name"`
	Schema     string   `json:"schema" yaml:"schema"`
	Database   string   `json:"database" yaml:"database"`
	Signature  string   `json:"signature" yaml:"signature"`
	Args       []string `json:"args" yaml:"args"`
	ResultType string   `json:"resultType" yaml:"resultType"`
	Tree       any      `json:"tree" yaml:"tree"`
}

// SplitTableName splits a "schema.table" identifier. A name without a dot
// has an empty schema.
func SplitTableName(name string) (schema string, table string) {
	schema, table, found := strings.Cut(name, ".")

	if !found {
		return "", name
	}

	return schema, table
}
