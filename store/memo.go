package store

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
)

func (s *Store) AddMemo(create *model.Memo) (*model.Memo, error) {
	// Timestamps are stored in milliseconds so edits made within the same
	// second still sort by recency.
	now := time.Now().UnixMilli()
	stmt := `
        INSERT INTO memos (
            user_id,
            book_id,
            content,
            created_ts,
            updated_ts
        ) VALUES (?,?,?,?,?)
        RETURNING id, user_id, book_id, content, created_ts, updated_ts`
	args := []any{create.UserID, create.BookID, create.Content, now, now}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	memo, err := scanMemo(tx.QueryRow(stmt, args...).Scan)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return memo, nil
}

func scanMemo(scan func(dest ...any) error) (*model.Memo, error) {
	var memo model.Memo
	var createdTs, updatedTs int64
	if err := scan(
		&memo.ID,
		&memo.UserID,
		&memo.BookID,
		&memo.Content,
		&createdTs,
		&updatedTs,
	); err != nil {
		return nil, err
	}
	memo.CreatedAt = time.UnixMilli(createdTs).UTC()
	memo.UpdatedAt = time.UnixMilli(updatedTs).UTC()
	return &memo, nil
}

func (s *Store) GetMemo(find *model.FindMemo) (*model.Memo, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.ListMemos(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListMemos orders by update recency: the most recently touched memo comes
// first.
func (s *Store) ListMemos(find *model.FindMemo) ([]*model.Memo, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            user_id,
            book_id,
            content,
            created_ts,
            updated_ts
        FROM memos
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY updated_ts DESC, id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query memos", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Memo, 0)
	for rows.Next() {
		memo, err := scanMemo(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, memo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ListMemosWithBook joins each memo with its book's title and cover for the
// note-overview listing.
func (s *Store) ListMemosWithBook(userID int32) ([]*model.MemoWithBook, error) {
	query := `
        SELECT
            m.id,
            m.user_id,
            m.book_id,
            m.content,
            m.created_ts,
            m.updated_ts,
            b.title,
            b.thumbnail
        FROM memos m
        JOIN books b ON b.id = m.book_id
        WHERE m.user_id = ?
        ORDER BY m.updated_ts DESC, m.id DESC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		log.Error("Failed to query memos with books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.MemoWithBook, 0)
	for rows.Next() {
		var item model.MemoWithBook
		var createdTs, updatedTs int64
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.BookID,
			&item.Content,
			&createdTs,
			&updatedTs,
			&item.BookTitle,
			&item.BookThumbnail,
		); err != nil {
			return nil, err
		}
		item.CreatedAt = time.UnixMilli(createdTs).UTC()
		item.UpdatedAt = time.UnixMilli(updatedTs).UTC()
		list = append(list, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateMemo replaces the content and refreshes the update timestamp, which
// moves the memo to the front of the listing.
func (s *Store) UpdateMemo(memoID int, userID int32, content string) (*model.Memo, error) {
	stmt := `
        UPDATE memos
        SET content = ?, updated_ts = ?
        WHERE id = ? AND user_id = ?
        RETURNING id, user_id, book_id, content, created_ts, updated_ts`
	args := []any{content, time.Now().UnixMilli(), memoID, userID}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	memo, err := scanMemo(tx.QueryRow(stmt, args...).Scan)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *Store) RemoveMemo(memoID int, userID int32) error {
	_, err := s.db.Exec(`DELETE FROM memos WHERE id = ? AND user_id = ?`, memoID, userID)
	return err
}
