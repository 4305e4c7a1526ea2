package shelf

import (
	"time"

	"github.com/seowoojae/shelfd/model"
)

// completionDate is the date a finished book is bucketed by: the end date
// when present, else the creation time.
func completionDate(book *model.Book) time.Time {
	if book.EndDate != nil {
		return *book.EndDate
	}
	return book.CreatedAt
}

// MonthlyCounts buckets finished books into the twelve months of year,
// indexed 0 (January) through 11 (December). Books outside the year are
// ignored; non-finished books are ignored too, so callers can pass an
// unfiltered list.
func MonthlyCounts(books []*model.Book, year int) [12]int {
	var counts [12]int
	for _, book := range books {
		if book.Status != model.StatusFinished {
			continue
		}
		d := completionDate(book)
		if d.Year() != year {
			continue
		}
		counts[int(d.Month())-1]++
	}
	return counts
}

// Total sums a monthly count array.
func Total(counts [12]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// FilterByMonth returns the finished books completed in the exact
// (year, month) pair, using the same date-selection rule as MonthlyCounts.
// month is 1-based.
func FilterByMonth(books []*model.Book, year int, month time.Month) []*model.Book {
	list := make([]*model.Book, 0)
	for _, book := range books {
		if book.Status != model.StatusFinished {
			continue
		}
		d := completionDate(book)
		if d.Year() == year && d.Month() == month {
			list = append(list, book)
		}
	}
	return list
}
