package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messmgmt/mess-console/internal/core/domain"
)

// memStore is an in-memory SessionStore for exercising the interceptor chain.
type memStore struct {
	mu      sync.Mutex
	session *domain.Session
}

func (m *memStore) Current(context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *memStore) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func liveSession() *domain.Session {
	return &domain.Session{ID: 7, Name: "Admin", Email: "admin@mess.local", Role: domain.RoleAdmin, Token: "tok-123"}
}

func newTestClient(t *testing.T, serverURL string, opts Options) *Client {
	t.Helper()
	c, err := New(serverURL, &http.Client{Timeout: 5 * time.Second}, zerolog.Nop(), opts)
	require.NoError(t, err)
	return c
}

func TestDo_AttachesBearerWhenSessionLive(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	store := &memStore{session: liveSession()}
	client := newTestClient(t, srv.URL, Options{})

	ctx := ContextWithStore(context.Background(), store)
	err := client.Do(ctx, Request{Method: http.MethodGet, Path: "/meals"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDo_NoHeaderWithoutSession(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Options{})

	// No store bound at all.
	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/meals"})
	require.NoError(t, err)
	assert.False(t, hadHeader)

	// Store bound but empty.
	ctx := ContextWithStore(context.Background(), &memStore{})
	err = client.Do(ctx, Request{Method: http.MethodGet, Path: "/meals"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.False(t, hadHeader)
}

func TestDo_UnauthenticatedPathSkipsCredential(t *testing.T) {
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := &memStore{session: liveSession()}
	client := newTestClient(t, srv.URL, Options{})

	ctx := ContextWithStore(context.Background(), store)
	err := client.Do(ctx, Request{Method: http.MethodPost, Path: "/api/auth/login", Unauthenticated: true})
	require.NoError(t, err)
	assert.False(t, hadHeader, "login must travel without a bearer token")
}

func TestDo_RejectionClearsStoreAndNotifiesOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	store := &memStore{session: liveSession()}
	var notified []*domain.Session
	client := newTestClient(t, srv.URL, Options{
		Notify: func(_ context.Context, s *domain.Session) { notified = append(notified, s) },
	})

	ctx := ContextWithStore(context.Background(), store)
	err := client.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/users"})

	// The original rejection still reaches the caller.
	require.Error(t, err)
	assert.True(t, IsAuthRejection(err))

	current, storeErr := store.Current(context.Background())
	require.NoError(t, storeErr)
	assert.Nil(t, current, "session must be cleared after rejection")

	require.Len(t, notified, 1, "exactly one notification per rejected response")
	assert.Equal(t, "admin@mess.local", notified[0].Email)
}

func TestDo_RejectionOnPublicPathLeavesSessionAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer srv.Close()

	store := &memStore{session: liveSession()}
	notifications := 0
	client := newTestClient(t, srv.URL, Options{
		Notify: func(context.Context, *domain.Session) { notifications++ },
	})

	ctx := ContextWithStore(context.Background(), store)
	err := client.Do(ctx, Request{Method: http.MethodPost, Path: "/api/auth/login", Unauthenticated: true})
	require.Error(t, err)
	assert.True(t, IsAuthRejection(err))

	current, _ := store.Current(context.Background())
	assert.NotNil(t, current, "failed login must not tear down the live session")
	assert.Zero(t, notifications)
}

func TestDo_BusinessErrorPassesThroughUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"utr number already verified"}`))
	}))
	defer srv.Close()

	store := &memStore{session: liveSession()}
	notifications := 0
	client := newTestClient(t, srv.URL, Options{
		Notify: func(context.Context, *domain.Session) { notifications++ },
	})

	ctx := ContextWithStore(context.Background(), store)
	err := client.Do(ctx, Request{Method: http.MethodPost, Path: "/api/payments/4/verify"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "utr number already verified", apiErr.Message())

	current, _ := store.Current(context.Background())
	assert.NotNil(t, current, "non-401 errors must not touch the session")
	assert.Zero(t, notifications)
}

func TestDo_InFlightRequestsSurviveForcedLogout(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/reject", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := &memStore{session: liveSession()}
	client := newTestClient(t, srv.URL, Options{})
	ctx := ContextWithStore(context.Background(), store)

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- client.Do(ctx, Request{Method: http.MethodGet, Path: "/slow"})
	}()

	// Trigger the forced logout while /slow is still in flight.
	err := client.Do(ctx, Request{Method: http.MethodGet, Path: "/reject"})
	require.True(t, IsAuthRejection(err))
	current, _ := store.Current(context.Background())
	require.Nil(t, current)

	close(release)
	select {
	case err := <-slowDone:
		assert.NoError(t, err, "in-flight request must complete on its own terms")
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request hung after forced logout")
	}
}

func TestDo_DecodesResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":3,"name":"Monthly","price":2500,"totalDays":30}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Options{})
	var plan domain.MessPlan
	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/mess-plans/3", Out: &plan})
	require.NoError(t, err)
	assert.Equal(t, int64(3), plan.ID)
	assert.Equal(t, "Monthly", plan.Name)
	assert.Equal(t, 30, plan.TotalDays)
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("not-a-url", nil, zerolog.Nop(), Options{})
	require.Error(t, err)
}

func TestAPIError_MessageEnvelopes(t *testing.T) {
	assert.Equal(t, "nope", (&APIError{Status: 400, Body: []byte(`{"error":"nope"}`)}).Message())
	assert.Equal(t, "nope", (&APIError{Status: 400, Body: []byte(`{"message":"nope"}`)}).Message())
	assert.Empty(t, (&APIError{Status: 500, Body: []byte(`<html>`)}).Message())
}
