package store

import (
	"testing"
	"time"

	"github.com/seowoojae/shelfd/model"
)

func createTestUser(t *testing.T, s *Store) *model.User {
	t.Helper()

	user, err := s.CreateUser(&model.User{
		Username:     "reader",
		Role:         model.RoleHost,
		Email:        "reader@example.com",
		Nickname:     "Reader",
		PasswordHash: "not-a-real-hash",
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func TestAddAndGetBook(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	book, err := s.AddBook(&model.Book{
		UserID:      user.ID,
		Title:       "The Go Programming Language",
		Authors:     []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
		Publisher:   "Addison-Wesley",
		ISBN:        "9780134190440",
		Status:      model.StatusWish,
		TotalPage:   380,
		CurrentPage: 0,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	if book.ID == 0 {
		t.Fatalf("Expected non-zero book id")
	}
	if book.CreatedAt.IsZero() {
		t.Fatalf("Expected created_ts to be set")
	}

	got, err := s.GetBook(&model.FindBook{ID: &book.ID, UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if got.Title != book.Title {
		t.Errorf("Expected title %q, got %q", book.Title, got.Title)
	}
	if len(got.Authors) != 2 || got.Authors[0] != "Alan A. A. Donovan" {
		t.Errorf("Authors did not round-trip: %v", got.Authors)
	}
	if got.Status != model.StatusWish {
		t.Errorf("Expected status %q, got %q", model.StatusWish, got.Status)
	}
	if got.StartDate != nil || got.EndDate != nil || got.Rating != nil {
		t.Errorf("Expected empty dates and rating on a wish book")
	}
}

func TestListBooksByStatus(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	for _, seed := range []struct {
		title  string
		status model.BookStatus
	}{
		{"A", model.StatusReading},
		{"B", model.StatusWish},
		{"C", model.StatusReading},
	} {
		if _, err := s.AddBook(&model.Book{
			UserID:  user.ID,
			Title:   seed.title,
			Authors: []string{"author"},
			Status:  seed.status,
		}); err != nil {
			t.Fatalf("Failed to add book %q: %v", seed.title, err)
		}
	}

	reading := model.StatusReading
	books, err := s.ListBooks(&model.FindBook{UserID: &user.ID, Status: &reading})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("Expected 2 reading books, got %d", len(books))
	}

	all, err := s.ListBooks(&model.FindBook{UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 books, got %d", len(all))
	}
}

func TestUpdateBook(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	book, err := s.AddBook(&model.Book{
		UserID:    user.ID,
		Title:     "Mistborn",
		Authors:   []string{"Brandon Sanderson"},
		Status:    model.StatusReading,
		TotalPage: 541,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}

	now := time.Now().Truncate(time.Second)
	rating := 5
	book.Status = model.StatusFinished
	book.CurrentPage = 541
	book.EndDate = &now
	book.Rating = &rating

	updated, err := s.UpdateBook(book)
	if err != nil {
		t.Fatalf("Failed to update book: %v", err)
	}
	if updated.Status != model.StatusFinished {
		t.Errorf("Expected status finished, got %q", updated.Status)
	}
	if updated.CurrentPage != 541 {
		t.Errorf("Expected current page 541, got %d", updated.CurrentPage)
	}
	if updated.EndDate == nil || !updated.EndDate.Equal(now) {
		t.Errorf("End date did not round-trip: %v", updated.EndDate)
	}
	if updated.Rating == nil || *updated.Rating != 5 {
		t.Errorf("Rating did not round-trip: %v", updated.Rating)
	}
}

func TestRemoveBookCascadesMemos(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	book, err := s.AddBook(&model.Book{
		UserID:  user.ID,
		Title:   "Dune",
		Authors: []string{"Frank Herbert"},
		Status:  model.StatusReading,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	if _, err := s.AddMemo(&model.Memo{
		UserID:  user.ID,
		BookID:  book.ID,
		Content: "The spice must flow.",
	}); err != nil {
		t.Fatalf("Failed to add memo: %v", err)
	}

	if err := s.RemoveBook(book.ID, user.ID); err != nil {
		t.Fatalf("Failed to remove book: %v", err)
	}

	got, err := s.GetBook(&model.FindBook{ID: &book.ID, UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if got != nil {
		t.Errorf("Expected missing book after removal, got %v", got)
	}
	memos, err := s.ListMemos(&model.FindMemo{UserID: &user.ID, BookID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to list memos: %v", err)
	}
	if len(memos) != 0 {
		t.Errorf("Expected memos to be removed with the book, got %d", len(memos))
	}
}

func TestCheckBookAdded(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	if _, err := s.AddBook(&model.Book{
		UserID:  user.ID,
		Title:   "Snow Crash",
		Authors: []string{"Neal Stephenson"},
		ISBN:    "9780553380958",
		Status:  model.StatusWish,
	}); err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}

	tests := []struct {
		name      string
		candidate *model.CandidateBook
		want      bool
	}{
		{
			name: "SameISBN",
			candidate: &model.CandidateBook{
				Title:   "Snow Crash (Reissue)",
				Authors: []string{"N. Stephenson"},
				ISBN:    "9780553380958",
			},
			want: true,
		},
		{
			name: "SameTitleAndAuthorsNoISBN",
			candidate: &model.CandidateBook{
				Title:   "Snow Crash",
				Authors: []string{"Neal Stephenson"},
			},
			want: true,
		},
		{
			name: "DifferentBook",
			candidate: &model.CandidateBook{
				Title:   "Snow Crash",
				Authors: []string{"Someone Else"},
				ISBN:    "9999999999999",
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CheckBookAdded(user.ID, tt.candidate)
			if err != nil {
				t.Fatalf("CheckBookAdded failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
