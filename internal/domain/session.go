package domain

import "time"

// Session identifies an anonymous visitor by an opaque token. Sessions
// are minted lazily on first cart interaction and never expired here.
type Session struct {
	Token     string    `json:"session_id"`
	CreatedAt time.Time `json:"-"`
}
