package funcs

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridsheet/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ClosedTable(t *testing.T) {
	want := []string{"CONCAT", "DIV", "FLOAT", "INT", "MAX", "MIN", "MUL", "NEG", "SUB", "SUM", "TEXT"}
	if diff := cmp.Diff(want, Default().Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"INT", "FLOAT", "TEXT", "NEG"} {
		b, ok := Default().Lookup(name)
		require.True(t, ok)
		assert.True(t, b.Unary, name)
	}
	for _, name := range binaryNames {
		b, ok := Default().Lookup(name)
		require.True(t, ok)
		assert.False(t, b.Unary, name)
	}
}

func TestLookup_CaseSensitive(t *testing.T) {
	_, ok := Default().Lookup("sum")
	assert.False(t, ok)
	_, ok = Default().Lookup("SUMX")
	assert.False(t, ok)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := New()
	r.Register(&Builtin{Name: "ONE", Fn: sum})
	assert.Panics(t, func() {
		r.Register(&Builtin{Name: "ONE", Fn: sub})
	})
}

func TestReduce(t *testing.T) {
	testCases := []struct {
		name     string
		values   []value.Value
		expected value.Value
	}{
		{name: "empty yields sentinel", values: nil, expected: value.Error(value.ErrEmpty)},
		{name: "single value is the seed", values: []value.Value{value.Int(7)}, expected: value.Int(7)},
		{name: "folds left to right", values: []value.Value{value.Int(10), value.Int(3), value.Int(2)}, expected: value.Int(5)},
		{name: "error propagates", values: []value.Value{value.Int(1), value.Error(value.ErrBadArg), value.Int(2)}, expected: value.Error(value.ErrBadArg)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Reduce(sub, slices.Values(tc.values)))
		})
	}
}
