package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCountAndBounds(t *testing.T) {
	const size = 50
	for n := 1; n <= 260; n++ {
		count := PageCount(n, size)
		assert.Equal(t, (n+size-1)/size, count, "n=%d", n)

		covered := 0
		for p := 1; p <= count; p++ {
			start, end := PageBounds(p, size, n)
			assert.Equal(t, (p-1)*size, start, "n=%d p=%d", n, p)
			want := p * size
			if want > n {
				want = n
			}
			assert.Equal(t, want, end, "n=%d p=%d", n, p)
			covered += end - start
		}
		assert.Equal(t, n, covered, "pages must cover every row exactly once (n=%d)", n)
	}
}

func TestPageCount_Empty(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 50))
	start, end := PageBounds(1, 50, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-7, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(4, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}
