package models

import "time"

// WebSessionRecord is the persisted form of a browser session; Data holds the
// encoded session state and Version the optimistic-lock counter.
type WebSessionRecord struct {
	ID        string    `json:"id"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
