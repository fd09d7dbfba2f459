package types

import "time"

// PageView is one recorded visit to a site path.
type PageView struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Referrer string    `json:"referrer,omitempty"`
	ViewedAt time.Time `json:"viewed_at"`
}

// PathCount pairs a normalized path with its view total.
type PathCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}
