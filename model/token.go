// file: model/token.go

package model

import "time"

// RefreshToken holds the data for a refresh token in the database.
// Each user owns at most one row; the token value itself is an opaque
// random string that clients present verbatim.
type RefreshToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
