package session

// Persister stores the serialized session snapshot under a fixed key in some
// durable client-side storage. Implementations must overwrite any previous
// value on Save and return (nil, nil) from Load when nothing is stored yet.
type Persister interface {
	Save(snapshot []byte) error
	Load() ([]byte, error)
}

// MemPersister keeps the snapshot in memory. It is the Persister used in
// tests and the fallback when no durable storage is available.
type MemPersister struct {
	data []byte
}

func NewMemPersister() *MemPersister { return &MemPersister{} }

func (m *MemPersister) Save(snapshot []byte) error {
	m.data = append([]byte(nil), snapshot...)
	return nil
}

func (m *MemPersister) Load() ([]byte, error) {
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}
