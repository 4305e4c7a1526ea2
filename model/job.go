package model

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

const (
	// JobTypeCoverMirror downloads a book cover and stores a local webp copy.
	JobTypeCoverMirror = "COVER_MIRROR"
)

type Job struct {
	ID     int    `json:"id"`
	UserID int32  `json:"user_id"`
	BookID int    `json:"book_id"`
	Type   string `json:"type"`
	Status string `json:"status"`

	// CoverURL is carried in memory only; restarts drop pending mirrors,
	// which is acceptable since the remote URL stays on the book row.
	CoverURL string `json:"-"`
}
