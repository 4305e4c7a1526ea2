package model //import "github.com/seowoojae/shelfd/model"

import (
	"strings"
	"time"
)

// BookStatus is the shelf a book currently lives on.
type BookStatus string

const (
	// StatusReading marks a book the user is currently reading.
	StatusReading BookStatus = "reading"
	// StatusWish marks a book the user wants to read.
	StatusWish BookStatus = "wish"
	// StatusFinished marks a book the user has finished.
	StatusFinished BookStatus = "finished"
)

func (s BookStatus) Valid() bool {
	switch s {
	case StatusReading, StatusWish, StatusFinished:
		return true
	}
	return false
}

type Book struct {
	ID     int   `json:"id"`
	UserID int32 `json:"user_id"`

	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Translators []string `json:"translators,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Contents    string   `json:"contents,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`

	Status      BookStatus `json:"status"`
	CurrentPage int        `json:"current_page"`
	TotalPage   int        `json:"total_page"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Rating    *int       `json:"rating,omitempty"`

	// HasLocalCover is set once the cover mirror worker has stored a local
	// copy of the cover image.
	HasLocalCover bool      `json:"has_local_cover"`
	CreatedAt     time.Time `json:"created_at"`
}

// Fingerprint is the de-duplication key used by "already added" checks.
// Search results carry no stable identifier before insertion, so the title
// and joined author list stand in for one.
func (b *Book) Fingerprint() string {
	return b.Title + strings.Join(b.Authors, "")
}

type FindBook struct {
	ID     *int        `json:"id"`
	UserID *int32      `json:"user_id"`
	Status *BookStatus `json:"status"`
	ISBN   *string     `json:"isbn"`

	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

// CandidateBook is a search result that has not been persisted yet, so it
// carries no ID and no owner.
type CandidateBook struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Translators []string `json:"translators,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Contents    string   `json:"contents,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
}

func (c *CandidateBook) Fingerprint() string {
	return c.Title + strings.Join(c.Authors, "")
}

type AddBookRequest struct {
	Book   CandidateBook `json:"book"`
	Status BookStatus    `json:"status"`
}
