package model

import "time"

// RecentSearch is one saved search term. (user_id, term) is unique so a
// repeated search only refreshes its recency.
type RecentSearch struct {
	UserID    int32     `json:"user_id"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
}
