package model

import "time"

// Memo is a free-text note attached to a book. Memos are listed most
// recently touched first, so UpdatedAt is refreshed on every edit.
type Memo struct {
	ID        int       `json:"id"`
	UserID    int32     `json:"user_id"`
	BookID    int       `json:"book_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FindMemo struct {
	ID     *int   `json:"id"`
	UserID *int32 `json:"user_id"`
	BookID *int   `json:"book_id"`

	Limit *int `json:"limit"`
}

// MemoWithBook joins a memo with the title and cover of its owning book for
// the note-overview listing.
type MemoWithBook struct {
	Memo
	BookTitle     string `json:"book_title"`
	BookThumbnail string `json:"book_thumbnail,omitempty"`
}
