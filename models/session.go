package models

import "time"

// Session is the locally persisted authentication state. It survives
// process restarts so a signed-in user keeps syncing without a fresh
// sign-in. Token issuance and verification belong to the remote auth
// layer; the engine only stores the token and the extracted user id.
type Session struct {
	// UserID is the subject extracted from the token.
	UserID string `json:"user_id"`

	// Token is the bearer token attached to remote requests.
	Token string `json:"token"`

	// SignedInAt is the moment the session was established.
	SignedInAt time.Time `json:"signed_in_at"`
}

// Active reports whether the session identifies a user.
func (s Session) Active() bool {
	return s.UserID != ""
}
