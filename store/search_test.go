package store

import (
	"testing"
	"time"

	"github.com/seowoojae/shelfd/model"
)

func TestRecentSearchUpsertRefreshesRecency(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	// Both terms are recorded within the same second; the millisecond
	// timestamps must still tell them apart.
	for _, term := range []string{"sqlite", "golang"} {
		if err := s.UpsertRecentSearch(user.ID, term); err != nil {
			t.Fatalf("Failed to upsert search: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Searching "sqlite" again must bring it back to the front without
	// growing the row count.
	if err := s.UpsertRecentSearch(user.ID, "sqlite"); err != nil {
		t.Fatalf("Failed to upsert search: %v", err)
	}

	list, err := s.ListRecentSearches(user.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list searches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 terms, got %d", len(list))
	}
	if list[0].Term != "sqlite" {
		t.Errorf("Expected the re-searched term first, got %q", list[0].Term)
	}
}

func TestRecentSearchLimitAndClear(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	terms := []string{"a", "b", "c", "d", "e"}
	for _, term := range terms {
		if err := s.UpsertRecentSearch(user.ID, term); err != nil {
			t.Fatalf("Failed to upsert search: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	list, err := s.ListRecentSearches(user.ID, 3)
	if err != nil {
		t.Fatalf("Failed to list searches: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 terms, got %d", len(list))
	}
	if list[0].Term != "e" || list[2].Term != "c" {
		t.Errorf("Unexpected order: %v", termsOf(list))
	}

	if err := s.RemoveRecentSearch(user.ID, "e"); err != nil {
		t.Fatalf("Failed to remove search: %v", err)
	}
	list, err = s.ListRecentSearches(user.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list searches: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("Expected 4 terms after removal, got %d", len(list))
	}

	if err := s.ClearRecentSearches(user.ID); err != nil {
		t.Fatalf("Failed to clear searches: %v", err)
	}
	list, err = s.ListRecentSearches(user.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list searches: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected no terms after clear, got %d", len(list))
	}
}

func termsOf(list []*model.RecentSearch) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.Term)
	}
	return out
}
