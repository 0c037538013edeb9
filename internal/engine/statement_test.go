package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		stmt string
		want Kind
	}{
		{"INSERT INTO t VALUES (1)", Mutating},
		{"update t set a = 1", Mutating},
		{"Merge into t using s on (t.id = s.id) when matched then delete", Mutating},
		{"delete from t", Mutating},
		{"DeLeTe from t", Mutating},
		{"select * from t", Read},
		{"create table t (id int)", Read},
		{"with x as (select 1) insert into t select * from x", Read},
		{"  insert into t values (1)", Mutating},
		{"-- load the fixture\ninsert into t values (1)", Mutating},
		{"/* nightly */ delete from t", Mutating},
		{"/* a */\n-- b\n\tUPDATE t set a = 1", Mutating},
		{"-- insert into t values (1)\nselect * from t", Read},
		{"/* insert into t */ select 1", Read},
		{"-- insert into t values (1)", Read},
		{"/* unterminated insert", Read},
		{"", Read},
	}

	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stmt))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "read", Read.String())
	assert.Equal(t, "mutating", Mutating.String())
}
