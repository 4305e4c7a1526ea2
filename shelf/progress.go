package shelf

import "github.com/seowoojae/shelfd/model"

// Percentage returns the reading progress as a whole percent, floored.
// A book with no known total reports 0.
func Percentage(current, total int) int {
	if total <= 0 {
		return 0
	}
	return current * 100 / total
}

// ClampPage bounds a page position to [0, total]. When the total is unknown
// (zero or negative) any non-negative value is accepted.
func ClampPage(value, total int) int {
	if value < 0 {
		return 0
	}
	if total > 0 && value > total {
		return total
	}
	return value
}

// ClampRating bounds a rating to [0, 5].
func ClampRating(value int) int {
	if value < 0 {
		return 0
	}
	if value > 5 {
		return 5
	}
	return value
}

// ApplyCurrentPage returns book with its current page set to the clamped
// value.
func ApplyCurrentPage(book *model.Book, value int) *model.Book {
	next := *book
	next.CurrentPage = ClampPage(value, next.TotalPage)
	return &next
}

// ApplyTotalPage returns book with a new total. The current page is lowered
// to match when the new total undercuts it, so the pair never goes
// inconsistent.
func ApplyTotalPage(book *model.Book, total int) *model.Book {
	next := *book
	if total < 0 {
		total = 0
	}
	next.TotalPage = total
	if total > 0 && next.CurrentPage > total {
		next.CurrentPage = total
	}
	return &next
}

// ApplyRating returns book with the clamped rating set.
func ApplyRating(book *model.Book, value int) *model.Book {
	next := *book
	r := ClampRating(value)
	next.Rating = &r
	return &next
}
