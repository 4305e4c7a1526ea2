// Package shelf holds the rules that move a book between the three shelves
// and keep its derived fields consistent. Everything in here is pure: the
// handlers load a book, apply one of these functions, and persist the result.
package shelf

import (
	"time"

	"github.com/pkg/errors"

	"github.com/seowoojae/shelfd/model"
)

// Transition returns a copy of book moved to the target status, applying the
// date and page rules for that move. The input is never mutated.
//
// Rules:
//   - into reading: start date is set to now only if absent, end date is
//     cleared (the book is being read again).
//   - into finished: end date is set to now, start date is set to now if
//     absent, current page snaps to the total.
//   - into wish: start date, end date and current page are all reset.
//
// Dates cleared by an earlier transition are never restored.
func Transition(book *model.Book, target model.BookStatus, now time.Time) (*model.Book, error) {
	if !target.Valid() {
		return nil, errors.Errorf("unknown book status: %q", target)
	}

	next := *book
	next.Status = target

	switch target {
	case model.StatusReading:
		if next.StartDate == nil {
			t := now
			next.StartDate = &t
		}
		next.EndDate = nil
	case model.StatusFinished:
		t := now
		next.EndDate = &t
		if next.StartDate == nil {
			t := now
			next.StartDate = &t
		}
		next.CurrentPage = next.TotalPage
	case model.StatusWish:
		next.StartDate = nil
		next.EndDate = nil
		next.CurrentPage = 0
	}
	return &next, nil
}
