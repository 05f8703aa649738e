package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name         string
		number, size int
		want         Page
	}{
		{"defaults", 0, 0, Page{Number: 1, Size: DefaultPageSize}},
		{"negative", -3, -1, Page{Number: 1, Size: DefaultPageSize}},
		{"too large", 2, 51, Page{Number: 2, Size: DefaultPageSize}},
		{"max", 3, 50, Page{Number: 3, Size: 50}},
		{"regular", 4, 25, Page{Number: 4, Size: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.number, tc.size))
		})
	}
}

func TestPageWindow(t *testing.T) {
	page := Normalize(3, 10)
	require.Equal(t, 20, page.Offset())

	start, end := page.Window(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = Normalize(5, 10).Window(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestPageWindowHugePageNumber(t *testing.T) {
	page := Normalize(1152921504606846977, 10)
	assert.Equal(t, math.MaxInt, page.Offset())

	start, end := page.Window(1)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)

	start, end = Normalize(math.MaxInt, 50).Window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestParseDirection(t *testing.T) {
	assert.True(t, ParseDirection("DESC").Desc())
	assert.True(t, ParseDirection(" desc ").Desc())
	assert.False(t, ParseDirection("descending").Desc())
	assert.False(t, ParseDirection("").Desc())
}

func TestResultTotalPagesAndMap(t *testing.T) {
	result := NewResult([]int{1, 2, 3}, 23, Normalize(1, 10))
	assert.Equal(t, 3, result.TotalPages())

	mapped := Map(result, func(v int) string { return string(rune('a' + v - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, mapped.Items)
	assert.Equal(t, int64(23), mapped.TotalCount)

	empty := NewResult[int](nil, 0, Normalize(1, 10))
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages())
}
