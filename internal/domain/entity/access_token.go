package entity

import "time"

// AccessToken is the record behind a pool access token. Tokens are issued
// by an external collaborator; the core only reads them.
type AccessToken struct {
	Value     string
	IssuedTo  string // user ID the token was issued to
	Active    bool
	IssuedAt  time.Time
	ExpiresAt *time.Time // nil means no expiry
}

// IsUsable reports whether the token may be presented at the given time
func (t AccessToken) IsUsable(now time.Time) bool {
	if !t.Active {
		return false
	}
	if t.ExpiresAt != nil && !now.Before(*t.ExpiresAt) {
		return false
	}
	return true
}
