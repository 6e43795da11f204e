package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	cases := []struct {
		name         string
		in           Page
		wantPage     int
		wantPageSize int
	}{
		{"defaults", Page{}, 1, DefaultPageSize},
		{"explicit", Page{Page: 3, PageSize: 50}, 3, 50},
		{"zero page clamped", Page{Page: 0, PageSize: 10}, 1, 10},
		{"negative page clamped", Page{Page: -5, PageSize: 10}, 1, 10},
		{"oversized pageSize clamped", Page{Page: 1, PageSize: 500}, 1, MaxPageSize},
		{"zero pageSize defaulted", Page{Page: 2, PageSize: 0}, 2, DefaultPageSize},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, pageSize := c.in.Normalize()
			assert.Equal(t, c.wantPage, page)
			assert.Equal(t, c.wantPageSize, pageSize)
		})
	}
}

func TestPage_OffsetAndLimit(t *testing.T) {
	p := Page{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())

	// 非法取值收敛后再计算偏移
	assert.Equal(t, 0, Page{Page: -1, PageSize: 10}.Offset())
}
