package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "  ;\n ; ", []string{}},
		{"single without semicolon", "select 1 from sysibm.sysdummy1", []string{"select 1 from sysibm.sysdummy1"}},
		{"two statements", "insert into t values (1);\nselect * from t;", []string{"insert into t values (1)", "select * from t"}},
		{"semicolon in string", "select 'a;b' from t; select 2", []string{"select 'a;b' from t", "select 2"}},
		{"escaped quote", "select 'it''s; fine'; select 2", []string{"select 'it''s; fine'", "select 2"}},
		{"semicolon in identifier", `select "a;b" from t`, []string{`select "a;b" from t`}},
		{"semicolon in backticks", "select `a;b` from t", []string{"select `a;b` from t"}},
		{"line comment", "select 1; -- trailing; comment\nselect 2", []string{"select 1", "-- trailing; comment\nselect 2"}},
		{"comment only", "select 1; -- done", []string{"select 1"}},
		{"block comment", "select /* a;b */ 1; select 2", []string{"select /* a;b */ 1", "select 2"}},
		{"unterminated block comment", "select 1; /* open;", []string{"select 1"}},
		{"unterminated string", "select 'abc;", []string{"select 'abc;"}},
		{"minus operator", "select 3-1; select 2", []string{"select 3-1", "select 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}
