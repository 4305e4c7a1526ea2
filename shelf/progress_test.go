package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seowoojae/shelfd/model"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 50, Percentage(150, 300))
	assert.Equal(t, 0, Percentage(0, 300))
	assert.Equal(t, 100, Percentage(300, 300))
	assert.Equal(t, 33, Percentage(100, 300), "floored, not rounded")
	assert.Equal(t, 0, Percentage(42, 0), "unknown total reports zero")
}

func TestPercentageStaysInRange(t *testing.T) {
	for total := 1; total <= 400; total += 13 {
		for current := 0; current <= total; current += 7 {
			p := Percentage(current, total)
			require.GreaterOrEqual(t, p, 0)
			require.LessOrEqual(t, p, 100)
		}
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, ClampPage(-5, 100))
	assert.Equal(t, 100, ClampPage(250, 100))
	assert.Equal(t, 42, ClampPage(42, 100))
	// unknown total accepts any non-negative value
	assert.Equal(t, 9999, ClampPage(9999, 0))
	assert.Equal(t, 0, ClampPage(-1, 0))
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 0, ClampRating(-1))
	assert.Equal(t, 5, ClampRating(9))
	assert.Equal(t, 3, ClampRating(3))
}

func TestApplyCurrentPageIsIdempotent(t *testing.T) {
	book := &model.Book{CurrentPage: 10, TotalPage: 100}
	once := ApplyCurrentPage(book, 240)
	twice := ApplyCurrentPage(once, 240)
	assert.Equal(t, 100, once.CurrentPage)
	assert.Equal(t, once.CurrentPage, twice.CurrentPage)
}

func TestApplyTotalPageLowersCurrentPage(t *testing.T) {
	book := &model.Book{CurrentPage: 150, TotalPage: 300}
	next := ApplyTotalPage(book, 100)
	assert.Equal(t, 100, next.TotalPage)
	assert.Equal(t, 100, next.CurrentPage)
	assert.Equal(t, 100, Percentage(next.CurrentPage, next.TotalPage))
	// untouched when the new total still covers the position
	next = ApplyTotalPage(book, 200)
	assert.Equal(t, 150, next.CurrentPage)
}

func TestApplyRating(t *testing.T) {
	book := &model.Book{}
	next := ApplyRating(book, 7)
	require.NotNil(t, next.Rating)
	assert.Equal(t, 5, *next.Rating)
	assert.Nil(t, book.Rating)
}
