package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{26, 5, 6},
		{7, 0, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.limit), "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestParsePageDefaults(t *testing.T) {
	p := ParsePage("", "", 10)
	assert.Equal(t, Page{Number: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())

	p = ParsePage("abc", "-3", 100)
	assert.Equal(t, Page{Number: 1, Limit: 100}, p)

	p = ParsePage("3", "20", 10)
	assert.Equal(t, 40, p.Offset())
}

func TestParseDirection(t *testing.T) {
	assert.False(t, ParseDirection("asc", true))
	assert.True(t, ParseDirection("DESC", false))
	assert.True(t, ParseDirection("-1", false))
	assert.True(t, ParseDirection("", true))
	assert.False(t, ParseDirection("sideways", false))
	assert.Equal(t, "DESC", Sort{Desc: true}.Direction())
}
