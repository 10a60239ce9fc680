package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessions records the pipeline's interactions with the session store.
type fakeSessions struct {
	mu      sync.Mutex
	token   string
	logouts int
}

func (f *fakeSessions) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSessions) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.logouts++
}

func (f *fakeSessions) set(tok string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = tok
}

func TestDo_AttachesBearerWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sessions := &fakeSessions{token: "abc"}
	c := NewHTTPClient(srv.URL, sessions)

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestDo_NoHeaderWhenLoggedOut(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeSessions{})

	require.NoError(t, c.Ping(context.Background()))
	assert.False(t, hadAuth, "unauthenticated requests must carry no Authorization header")
}

func TestDo_ReadsTokenFreshPerRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sessions := &fakeSessions{token: "first"}
	c := NewHTTPClient(srv.URL, sessions)

	require.NoError(t, c.Ping(context.Background()))
	sessions.set("second")
	require.NoError(t, c.Ping(context.Background()))

	require.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestDo_TagsRequestsWithID(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeSessions{})
	require.NoError(t, c.Ping(context.Background()))
	assert.NotEmpty(t, gotID)
}

func TestDo_401_ClearsSessionAndPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sessions := &fakeSessions{token: "stale"}
	redirects := 0
	c := NewHTTPClient(srv.URL, sessions, WithUnauthorizedHandler(func() { redirects++ }))

	_, err := c.Dashboard(context.Background(), "7d")

	// The side effect runs in addition to rejection, never instead of it.
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, sessions.logouts)
	assert.Empty(t, sessions.Token())
	assert.Equal(t, 1, redirects)
}

func TestDo_Concurrent401s_ConvergeToLoggedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sessions := &fakeSessions{token: "stale"}
	c := NewHTTPClient(srv.URL, sessions)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Ping(context.Background())
		}()
	}
	wg.Wait()

	assert.Empty(t, sessions.Token())
}

func TestDo_422_PassesValidationMapThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"email":["The email has already been taken."]}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeSessions{})

	_, err := c.Register(context.Background(), "A", "a@b.com", "x", "x")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "The given data was invalid.", apiErr.Message)
	require.Contains(t, apiErr.Fields, "email")
	assert.Equal(t, []string{"The email has already been taken."}, apiErr.Fields["email"])

	assert.Equal(t, apiErr.Fields, FieldErrors(err))
}

func TestDo_NetworkFailure_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	sessions := &fakeSessions{token: "abc"}
	c := NewHTTPClient(srv.URL, sessions)

	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "abc", sessions.Token(), "network failures must not clear the session")
}

func TestDo_ServerError_CarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeSessions{})

	err := c.Ping(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestLogin_DecodesUserAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":1,"name":"A","email":"a@b.com"},"token":"T1"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeSessions{})

	user, token, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.EqualValues(t, 1, user.ID)
	assert.Equal(t, "T1", token)
}

func TestDashboard_SendsPeriodQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "30d", r.URL.Query().Get("period"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_name":"A","connections":{"shopify_connected":true,"ga4_connected":false,"ga4_property_set":false},"shopify_metrics":null,"ga_metrics":null,"calculated_metrics":null,"period":{"label":"Last 30 days","start_date":"2026-07-31","end_date":"2026-08-30"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeSessions{token: "t"})

	data, err := c.Dashboard(context.Background(), "30d")
	require.NoError(t, err)
	assert.Equal(t, "A", data.UserName)
	assert.True(t, data.Connections.ShopifyConnected)
	assert.Nil(t, data.ShopifyMetrics)
}

func TestErrorTaxonomy_SentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrUnauthorized, ErrUnavailable))
}
