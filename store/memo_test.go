package store

import (
	"testing"
	"time"

	"github.com/seowoojae/shelfd/model"
)

func TestMemoUpdateMovesToFront(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	book, err := s.AddBook(&model.Book{
		UserID:  user.ID,
		Title:   "Walden",
		Authors: []string{"Henry David Thoreau"},
		Status:  model.StatusReading,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}

	// All writes land within one wall-clock second; the millisecond
	// timestamps alone must keep them in order.
	first, err := s.AddMemo(&model.Memo{UserID: user.ID, BookID: book.ID, Content: "first"})
	if err != nil {
		t.Fatalf("Failed to add memo: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := s.AddMemo(&model.Memo{UserID: user.ID, BookID: book.ID, Content: "second"})
	if err != nil {
		t.Fatalf("Failed to add memo: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	list, err := s.ListMemos(&model.FindMemo{UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to list memos: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("Expected the newer memo first, got %+v", list)
	}

	updated, err := s.UpdateMemo(first.ID, user.ID, "first, revised")
	if err != nil {
		t.Fatalf("Failed to update memo: %v", err)
	}
	if updated.Content != "first, revised" {
		t.Errorf("Expected updated content, got %q", updated.Content)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("Expected updated_ts to move past created_ts")
	}

	list, err = s.ListMemos(&model.FindMemo{UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to list memos: %v", err)
	}
	if list[0].ID != first.ID {
		t.Errorf("Expected the edited memo first, got memo %d", list[0].ID)
	}
}

func TestListMemosWithBook(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	book, err := s.AddBook(&model.Book{
		UserID:    user.ID,
		Title:     "Walden",
		Authors:   []string{"Henry David Thoreau"},
		Thumbnail: "https://example.com/walden.jpg",
		Status:    model.StatusFinished,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	if _, err := s.AddMemo(&model.Memo{UserID: user.ID, BookID: book.ID, Content: "simplify"}); err != nil {
		t.Fatalf("Failed to add memo: %v", err)
	}

	list, err := s.ListMemosWithBook(user.ID)
	if err != nil {
		t.Fatalf("Failed to list memos with books: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 memo, got %d", len(list))
	}
	if list[0].BookTitle != "Walden" {
		t.Errorf("Expected book title on memo, got %q", list[0].BookTitle)
	}
	if list[0].BookThumbnail != "https://example.com/walden.jpg" {
		t.Errorf("Expected book thumbnail on memo, got %q", list[0].BookThumbnail)
	}
}

func TestRemoveMemoScopedToUser(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)
	other, err := s.CreateUser(&model.User{
		Username:     "other",
		Role:         model.RoleUser,
		Email:        "other@example.com",
		PasswordHash: "not-a-real-hash",
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	book, err := s.AddBook(&model.Book{
		UserID:  user.ID,
		Title:   "Walden",
		Authors: []string{"Henry David Thoreau"},
		Status:  model.StatusReading,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	memo, err := s.AddMemo(&model.Memo{UserID: user.ID, BookID: book.ID, Content: "mine"})
	if err != nil {
		t.Fatalf("Failed to add memo: %v", err)
	}

	// A delete issued by another user must not touch the memo.
	if err := s.RemoveMemo(memo.ID, other.ID); err != nil {
		t.Fatalf("RemoveMemo failed: %v", err)
	}
	got, err := s.GetMemo(&model.FindMemo{ID: &memo.ID, UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to get memo: %v", err)
	}
	if got == nil {
		t.Fatalf("Expected memo to survive a foreign delete")
	}

	if err := s.RemoveMemo(memo.ID, user.ID); err != nil {
		t.Fatalf("RemoveMemo failed: %v", err)
	}
	got, err = s.GetMemo(&model.FindMemo{ID: &memo.ID, UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to get memo: %v", err)
	}
	if got != nil {
		t.Errorf("Expected memo to be gone")
	}
}
