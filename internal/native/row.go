package native

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Row maps column names to values and remembers the order in which the
// columns were returned by the backend.
type Row struct {
	keys   []string
	values map[string]any
}

func NewRow(cols []string, vals []any) *Row {
	var row = &Row{values: make(map[string]any, len(cols))}

	for i, col := range cols {
		var v any

		if i < len(vals) {
			v = vals[i]
		}

		row.Set(col, v)
	}

	return row
}

// Set assigns a value to a column. A column that is set twice keeps its first
// position and its last value.
func (row *Row) Set(col string, v any) {
	if row.values == nil {
		row.values = make(map[string]any)
	}

	if _, found := row.values[col]; !found {
		row.keys = append(row.keys, col)
	}

	row.values[col] = v
}

func (row *Row) Get(col string) (any, bool) {
	if row == nil {
		return nil, false
	}

	v, found := row.values[col]
	return v, found
}

func (row *Row) Keys() []string {
	if row == nil {
		return []string{}
	}

	var keys = make([]string, len(row.keys))
	copy(keys, row.keys)
	return keys
}

func (row *Row) Len() int {
	if row == nil {
		return 0
	}

	return len(row.keys)
}

// Map returns an unordered copy of the row.
func (row *Row) Map() map[string]any {
	var m = make(map[string]any, row.Len())

	if row == nil {
		return m
	}

	for k, v := range row.values {
		m[k] = v
	}

	return m
}

func (row *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range row.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)

		if err != nil {
			return nil, err
		}

		vb, err := json.Marshal(row.values[k])

		if err != nil {
			return nil, err
		}

		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (row *Row) UnmarshalJSON(data []byte) error {
	var dec = json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()

	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object")
	}

	row.keys = nil
	row.values = make(map[string]any)

	for dec.More() {
		tok, err := dec.Token()

		if err != nil {
			return err
		}

		var (
			key = tok.(string)
			v   any
		)

		if err := dec.Decode(&v); err != nil {
			return err
		}

		row.Set(key, v)
	}

	_, err = dec.Token()
	return err
}

func (row *Row) MarshalYAML() (interface{}, error) {
	var node = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range row.Keys() {
		var kn, vn yaml.Node

		if err := kn.Encode(k); err != nil {
			return nil, err
		}

		if err := vn.Encode(row.values[k]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, &kn, &vn)
	}

	return node, nil
}
