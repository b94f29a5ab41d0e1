// internal/cellref/parser_test.go
package cellref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Coord
	}{
		{name: "first cell", raw: "A1", expected: Coord{Col: 0, Row: 0}},
		{name: "two digit row", raw: "C12", expected: Coord{Col: 2, Row: 11}},
		{name: "last cell", raw: "Z26", expected: Coord{Col: 25, Row: 25}},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - lower case column", raw: "a1", expectErr: true},
		{name: "error - row zero", raw: "A0", expectErr: true},
		{name: "error - row past grid", raw: "A27", expectErr: true},
		{name: "error - three digit row", raw: "A100", expectErr: true},
		{name: "error - two letters", raw: "AA1", expectErr: true},
		{name: "error - missing row", raw: "B", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, c := range All() {
		parsed, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("C3:A1")
	require.NoError(t, err)
	assert.Equal(t, Range{From: At(0, 0), To: At(2, 2)}, r)

	single, err := ParseRange("B2")
	require.NoError(t, err)
	assert.Equal(t, Range{From: At(1, 1), To: At(1, 1)}, single)

	_, err = ParseRange("A1:A99")
	assert.Error(t, err)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not-a-cell") })
}
