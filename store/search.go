package store

import (
	"time"

	"github.com/seowoojae/shelfd/model"
)

// UpsertRecentSearch records a search term, refreshing its recency when the
// user has searched it before.
func (s *Store) UpsertRecentSearch(userID int32, term string) error {
	stmt := `
	INSERT INTO recent_searches (user_id, term, created_ts)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id, term) DO UPDATE
	SET created_ts = EXCLUDED.created_ts
	`
	// Millisecond timestamps keep two searches issued within the same
	// second in their real order.
	_, err := s.db.Exec(stmt, userID, term, time.Now().UnixMilli())
	return err
}

// ListRecentSearches returns the user's most recent terms, newest first.
func (s *Store) ListRecentSearches(userID int32, limit int) ([]*model.RecentSearch, error) {
	stmt := `
        SELECT user_id, term, created_ts
        FROM recent_searches
        WHERE user_id = ?
        ORDER BY created_ts DESC, rowid DESC
        LIMIT ?`

	rows, err := s.db.Query(stmt, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.RecentSearch, 0)
	for rows.Next() {
		var search model.RecentSearch
		var createdTs int64
		if err := rows.Scan(&search.UserID, &search.Term, &createdTs); err != nil {
			return nil, err
		}
		search.CreatedAt = time.UnixMilli(createdTs).UTC()
		list = append(list, &search)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) RemoveRecentSearch(userID int32, term string) error {
	_, err := s.db.Exec(`DELETE FROM recent_searches WHERE user_id = ? AND term = ?`, userID, term)
	return err
}

func (s *Store) ClearRecentSearches(userID int32) error {
	_, err := s.db.Exec(`DELETE FROM recent_searches WHERE user_id = ?`, userID)
	return err
}
