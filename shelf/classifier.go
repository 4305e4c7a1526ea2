package shelf

import (
	"sort"

	"github.com/seowoojae/shelfd/model"
)

// Shelves is a user's library partitioned by status.
type Shelves struct {
	Reading  []*model.Book `json:"reading"`
	Wish     []*model.Book `json:"wish"`
	Finished []*model.Book `json:"finished"`
}

func (s *Shelves) Counts() map[model.BookStatus]int {
	return map[model.BookStatus]int{
		model.StatusReading:  len(s.Reading),
		model.StatusWish:     len(s.Wish),
		model.StatusFinished: len(s.Finished),
	}
}

// Partition groups books into the three shelves. Reading and wish keep
// addition recency (created at, newest first); the finished shelf orders by
// completion recency, falling back to the creation time for rows that never
// got an end date. Books with an unrecognized status are dropped.
func Partition(books []*model.Book) *Shelves {
	shelves := &Shelves{
		Reading:  make([]*model.Book, 0),
		Wish:     make([]*model.Book, 0),
		Finished: make([]*model.Book, 0),
	}
	for _, book := range books {
		switch book.Status {
		case model.StatusReading:
			shelves.Reading = append(shelves.Reading, book)
		case model.StatusWish:
			shelves.Wish = append(shelves.Wish, book)
		case model.StatusFinished:
			shelves.Finished = append(shelves.Finished, book)
		}
	}

	byCreated := func(list []*model.Book) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
	byCreated(shelves.Reading)
	byCreated(shelves.Wish)
	sort.SliceStable(shelves.Finished, func(i, j int) bool {
		return completionDate(shelves.Finished[i]).After(completionDate(shelves.Finished[j]))
	})
	return shelves
}
