package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		page, limit string
		want        Page
	}{
		{"", "", Page{1, 10}},
		{"3", "25", Page{3, 25}},
		{"abc", "-4", Page{1, 10}},
		{"0", "0", Page{1, 10}},
		{"2", "1000", Page{2, MaxLimit}},
		{"100000000000000000", "100", Page{MaxPage, 100}},
		{"99999999999999999999999", "5", Page{MaxPage, 5}},
		{"-99999999999999999999999", "5", Page{1, 5}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Parse(tc.page, tc.limit), "page=%q limit=%q", tc.page, tc.limit)
	}
}

func TestSkipAndMeta(t *testing.T) {
	p := Page{Page: 3, Limit: 10}
	require.Equal(t, int64(20), p.Skip())

	m := p.Meta(21)
	require.Equal(t, Meta{Page: 3, Limit: 10, Total: 21, Pages: 3}, m)
	require.Equal(t, int64(0), p.Meta(0).Pages)
	require.Equal(t, int64(2), p.Meta(20).Pages)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	require.Equal(t, []int{3, 4}, Slice(items, Page{Page: 2, Limit: 2}))
	require.Equal(t, []int{5}, Slice(items, Page{Page: 3, Limit: 2}))
	require.Empty(t, Slice(items, Page{Page: 4, Limit: 2}))
}

func TestHugePageStaysInRange(t *testing.T) {
	p := Parse("100000000000000000", "100")
	require.Positive(t, p.Skip())
	require.Equal(t, int64(MaxPage-1)*MaxLimit, p.Skip())
	require.Empty(t, Slice([]int{1, 2, 3}, p))

	require.Equal(t, int64(0), Page{Page: -3, Limit: 10}.Skip())
	require.Equal(t, []int{1, 2}, Slice([]int{1, 2, 3}, Page{Page: 0, Limit: 2}))
}
