// Package session holds the client's authentication context: the bearer
// token and the signed-in user's profile.
//
// The Store is the single source of truth for "who is signed in". The HTTP
// layer and the screen guard both read it at the moment of need rather than
// caching it, so a logout (explicit or forced by a 401) is observed by the
// very next read. Every mutation is persisted through a Persister so the
// session survives restarts; a missing or corrupt persisted snapshot falls
// back to a logged-out session without surfacing an error.
package session

import "storepulse/internal/client/models"

// Session is the in-memory authentication context. An empty Token means
// logged out. A Session with a token but no user is still authenticated;
// that state occurs when a persisted snapshot restores only partially and
// user-dependent display must degrade gracefully.
type Session struct {
	Token string
	User  *models.User
}

// Authenticated reports whether a bearer token is present. User presence is
// deliberately irrelevant to the check.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// persistVersion is written into every snapshot so future schema changes can
// detect and migrate old payloads.
const persistVersion = 1

// snapshot is the durable JSON envelope: {"state":{"token","user"},"version"}.
type snapshot struct {
	State   snapshotState `json:"state"`
	Version int           `json:"version"`
}

type snapshotState struct {
	Token *string      `json:"token"`
	User  *models.User `json:"user"`
}
