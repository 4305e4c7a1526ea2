package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
)

// Authors and translators are stored as JSON arrays in text columns.
func marshalStrings(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func unmarshalStrings(value string) []string {
	list := make([]string, 0)
	if value == "" {
		return list
	}
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return []string{}
	}
	return list
}

func nullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func timeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

const bookColumns = `
            id,
            user_id,
            title,
            authors,
            translators,
            thumbnail,
            publisher,
            contents,
            isbn,
            status,
            current_page,
            total_page,
            start_date,
            end_date,
            rating,
            has_local_cover,
            created_ts`

func scanBook(scan func(dest ...any) error) (*model.Book, error) {
	var book model.Book
	var authors, translators string
	var startDate, endDate, rating sql.NullInt64
	var createdTs int64
	if err := scan(
		&book.ID,
		&book.UserID,
		&book.Title,
		&authors,
		&translators,
		&book.Thumbnail,
		&book.Publisher,
		&book.Contents,
		&book.ISBN,
		&book.Status,
		&book.CurrentPage,
		&book.TotalPage,
		&startDate,
		&endDate,
		&rating,
		&book.HasLocalCover,
		&createdTs,
	); err != nil {
		return nil, err
	}
	book.Authors = unmarshalStrings(authors)
	book.Translators = unmarshalStrings(translators)
	book.StartDate = timeFromNull(startDate)
	book.EndDate = timeFromNull(endDate)
	book.Rating = intFromNull(rating)
	book.CreatedAt = time.Unix(createdTs, 0).UTC()
	return &book, nil
}

func (s *Store) AddBook(create *model.Book) (*model.Book, error) {
	stmt := `
        INSERT INTO books (
            user_id,
            title,
            authors,
            translators,
            thumbnail,
            publisher,
            contents,
            isbn,
            status,
            current_page,
            total_page,
            start_date,
            end_date,
            rating
        ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
        RETURNING ` + bookColumns
	args := []any{
		create.UserID,
		create.Title,
		marshalStrings(create.Authors),
		marshalStrings(create.Translators),
		create.Thumbnail,
		create.Publisher,
		create.Contents,
		create.ISBN,
		create.Status,
		create.CurrentPage,
		create.TotalPage,
		nullTime(create.StartDate),
		nullTime(create.EndDate),
		nullInt(create.Rating),
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	newBook, err := scanBook(tx.QueryRow(stmt, args...).Scan)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return newBook, nil
}

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, *v)
	}
	if v := find.ISBN; v != nil {
		where, args = append(where, "isbn = ?"), append(args, *v)
	}

	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows.Scan)
		if err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateBook writes every mutable column of the book row. Callers load the
// book, apply the domain rules, and persist the result; the last write wins.
func (s *Store) UpdateBook(book *model.Book) (*model.Book, error) {
	stmt := `
        UPDATE books
        SET
            status = ?,
            current_page = ?,
            total_page = ?,
            start_date = ?,
            end_date = ?,
            rating = ?,
            thumbnail = ?,
            has_local_cover = ?
        WHERE id = ? AND user_id = ?
        RETURNING ` + bookColumns
	args := []any{
		book.Status,
		book.CurrentPage,
		book.TotalPage,
		nullTime(book.StartDate),
		nullTime(book.EndDate),
		nullInt(book.Rating),
		book.Thumbnail,
		book.HasLocalCover,
		book.ID,
		book.UserID,
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	updated, err := scanBook(tx.QueryRow(stmt, args...).Scan)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveBook deletes a book row and everything hanging off it: memos and
// pending jobs go in the same transaction.
func (s *Store) RemoveBook(bookID int, userID int32) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM memos WHERE book_id = ? AND user_id = ?`, bookID, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM job WHERE book_id = ? AND user_id = ?`, bookID, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM books WHERE id = ? AND user_id = ?`, bookID, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// CheckBookAdded reports whether the user already shelved this candidate.
// The ISBN wins when both sides carry one; otherwise the title plus joined
// author list stands in as the identity.
func (s *Store) CheckBookAdded(userID int32, candidate *model.CandidateBook) (bool, error) {
	if candidate.ISBN != "" {
		var exists bool
		stmt := `SELECT EXISTS(SELECT 1 FROM books WHERE user_id = ? AND isbn = ? AND isbn != '')`
		if err := s.db.QueryRow(stmt, userID, candidate.ISBN).Scan(&exists); err != nil {
			return false, err
		}
		if exists {
			return true, nil
		}
	}

	rows, err := s.db.Query(`SELECT title, authors FROM books WHERE user_id = ?`, userID)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	fingerprint := candidate.Fingerprint()
	for rows.Next() {
		var title, authors string
		if err := rows.Scan(&title, &authors); err != nil {
			return false, err
		}
		existing := model.Book{Title: title, Authors: unmarshalStrings(authors)}
		if existing.Fingerprint() == fingerprint {
			return true, nil
		}
	}
	return false, rows.Err()
}

// SetHasLocalCover flags a book whose cover the mirror worker stored.
func (s *Store) SetHasLocalCover(bookID int, has bool) error {
	_, err := s.db.Exec(`UPDATE books SET has_local_cover = ? WHERE id = ?`, has, bookID)
	return err
}
