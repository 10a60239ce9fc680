package session

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/internal/client/models"
)

func testUser() *models.User {
	return &models.User{ID: 1, Name: "A", Email: "a@b.com"}
}

func TestLogin_SetsBothFields(t *testing.T) {
	s := NewStore(NewMemPersister(), nil)

	s.Login(testUser(), "T1")

	got := s.Get()
	require.Equal(t, "T1", got.Token)
	require.NotNil(t, got.User)
	assert.EqualValues(t, 1, got.User.ID)
	assert.True(t, s.Authenticated())
}

func TestLogout_ClearsEverything_Idempotent(t *testing.T) {
	s := NewStore(NewMemPersister(), nil)
	s.Login(testUser(), "T1")

	s.Logout()
	s.Logout() // a second 401 arriving late must be harmless

	got := s.Get()
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)
	assert.False(t, s.Authenticated())
}

func TestSetters_ReplaceSingleField(t *testing.T) {
	s := NewStore(NewMemPersister(), nil)

	s.SetToken("tok")
	assert.True(t, s.Authenticated(), "token presence alone means authenticated")
	assert.Nil(t, s.User())

	s.SetUser(testUser())
	assert.Equal(t, "tok", s.Token())

	s.SetToken("")
	assert.False(t, s.Authenticated())
	assert.NotNil(t, s.User(), "clearing the token must not touch the user")
}

func TestPersistence_RoundTrip(t *testing.T) {
	p := NewMemPersister()

	s := NewStore(p, nil)
	s.Login(testUser(), "T1")

	// A fresh store over the same persister restores the same pair.
	restored := NewStore(p, nil)
	got := restored.Get()
	require.Equal(t, "T1", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "a@b.com", got.User.Email)
}

func TestPersistence_SnapshotShape(t *testing.T) {
	p := NewMemPersister()
	s := NewStore(p, nil)
	s.Login(testUser(), "T1")

	data, err := p.Load()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "state")
	require.Contains(t, raw, "version")
	assert.JSONEq(t, `1`, string(raw["version"]))

	// Logged-out snapshot normalizes absent fields to null.
	s.Logout()
	data, err = p.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"token":null,"user":null},"version":1}`, string(data))
}

func TestRestore_TokenWithoutUser(t *testing.T) {
	p := NewMemPersister()
	require.NoError(t, p.Save([]byte(`{"state":{"token":"T2","user":null},"version":1}`)))

	s := NewStore(p, nil)
	assert.True(t, s.Authenticated())
	assert.Nil(t, s.User())
}

func TestRestore_MalformedOrAbsent_StartsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"absent", nil},
		{"empty", []byte{}},
		{"garbage", []byte("{not-json")},
		{"wrong type", []byte(`{"state":"nope","version":1}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewMemPersister()
			if tc.data != nil {
				require.NoError(t, p.Save(tc.data))
			}
			s := NewStore(p, nil)
			assert.False(t, s.Authenticated())
			assert.Nil(t, s.User())
		})
	}
}

type failingPersister struct {
	loadErr error
	saveErr error
}

func (f *failingPersister) Save([]byte) error { return f.saveErr }
func (f *failingPersister) Load() ([]byte, error) { return nil, f.loadErr }

func TestPersisterFailures_AreSilent(t *testing.T) {
	p := &failingPersister{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}

	s := NewStore(p, nil)
	assert.False(t, s.Authenticated())

	// Mutations still apply in memory even when persistence fails.
	s.Login(testUser(), "T1")
	assert.True(t, s.Authenticated())
}

func TestStore_ConcurrentLogoutsConverge(t *testing.T) {
	s := NewStore(NewMemPersister(), nil)
	s.Login(testUser(), "T1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Logout()
		}()
	}
	wg.Wait()

	got := s.Get()
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)
}
