package store

import "context"

// sessionKey is the fixed metadata key the session snapshot lives under.
const sessionKey = "auth-storage"

// SessionPersister adapts the metadata table to the session.Persister
// contract: one JSON envelope under a fixed key, last write wins.
type SessionPersister struct {
	repo *MetadataRepo
}

func NewSessionPersister(repo *MetadataRepo) *SessionPersister {
	return &SessionPersister{repo: repo}
}

func (p *SessionPersister) Save(snapshot []byte) error {
	return p.repo.Set(context.Background(), sessionKey, snapshot)
}

func (p *SessionPersister) Load() ([]byte, error) {
	return p.repo.Get(context.Background(), sessionKey)
}
