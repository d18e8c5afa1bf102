package remote

import (
	"autoDetailing/internal/config"
	"autoDetailing/internal/http-server/router"
	"autoDetailing/internal/identity"
	"autoDetailing/internal/lib/logger/handlers/slogdiscard"
	"autoDetailing/internal/models"
	"autoDetailing/internal/session"
	"autoDetailing/internal/storage/memory"
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	store := memory.New()
	ids := identity.New(log, store, session.NewMemoryStore(time.Hour), config.Auth{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		AdminEmails:       []string{"owner@example.com"},
		MinPasswordLength: 6,
	})

	srv := httptest.NewServer(router.New(log, ids, store, config.RateLimit{}))
	t.Cleanup(srv.Close)

	return srv
}

func TestIdentityClient_SessionLifecycle(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	c := NewIdentityClient(slogdiscard.NewDiscardLogger(), srv.URL, srv.Client())

	var seen []*models.Session
	unsubscribe := c.ObserveSession(func(s *models.Session) {
		seen = append(seen, s)
	})
	defer unsubscribe()

	require.Len(t, seen, 1)
	assert.Nil(t, seen[0])

	sess, err := c.CreateAccount(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.User.DisplayName)
	assert.Equal(t, sess.Token, c.Token())

	require.Len(t, seen, 2)
	assert.Equal(t, "alice@example.com", seen[1].User.Email)

	require.NoError(t, c.EndSession(ctx))
	assert.Empty(t, c.Token())
	assert.Nil(t, c.CurrentSession())
	require.Len(t, seen, 3)
	assert.Nil(t, seen[2])

	_, err = c.Authenticate(ctx, "alice@example.com", "wrong-one")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid email or password", err.Error())
	assert.Len(t, seen, 3)

	_, err = c.CreateAccount(ctx, "alice@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "email already in use", err.Error())

	_, err = c.Authenticate(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Len(t, seen, 4)
}

func TestIdentityClient_Unsubscribe(t *testing.T) {
	srv := newServer(t)

	c := NewIdentityClient(slogdiscard.NewDiscardLogger(), srv.URL, srv.Client())

	calls := 0
	unsubscribe := c.ObserveSession(func(*models.Session) { calls++ })
	unsubscribe()

	_, err := c.CreateAccount(context.Background(), "bob@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRecordsClient(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	log := slogdiscard.NewDiscardLogger()

	alice := NewIdentityClient(log, srv.URL, srv.Client())
	a, err := alice.CreateAccount(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	owner := NewIdentityClient(log, srv.URL, srv.Client())
	_, err = owner.CreateAccount(ctx, "owner@example.com", "secret1")
	require.NoError(t, err)

	records := NewRecordsClient(srv.URL, srv.Client(), alice)
	adminRecords := NewRecordsClient(srv.URL, srv.Client(), owner)

	id, err := records.Insert(ctx, models.Booking{
		Name:      "Alice",
		Email:     "alice@example.com",
		Phone:     "704-555-0101",
		Address:   "12 Elm St",
		Date:      "2025-06-01",
		Service:   models.ServiceBasicWash,
		OwnerID:   a.User.ID,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	jobs, err := records.Query(ctx, models.BookingFilter{OwnerID: a.User.ID})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, id, jobs[0].ID)

	_, err = records.Query(ctx, models.BookingFilter{OwnerID: "someone-else"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	all, err := adminRecords.Query(ctx, models.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	services, err := records.Services(ctx)
	require.NoError(t, err)
	assert.Len(t, services, len(models.Catalog))

	var buf bytes.Buffer
	require.Error(t, records.Export(ctx, &buf))

	require.NoError(t, adminRecords.Export(ctx, &buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Jobs")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestDecodeError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRecordsClient(srv.URL, srv.Client(), NewIdentityClient(slogdiscard.NewDiscardLogger(), srv.URL, nil))

	_, err := c.Query(context.Background(), models.BookingFilter{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestIdentityClient_SwitchingAccountsRevokesOldSession(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	c := NewIdentityClient(slogdiscard.NewDiscardLogger(), srv.URL, srv.Client())

	_, err := c.CreateAccount(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	oldToken := c.Token()

	_, err = c.CreateAccount(ctx, "bob@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, c.Token())

	err = c.doJSON(ctx, http.MethodGet, "/auth/session", oldToken, nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	require.NoError(t, c.doJSON(ctx, http.MethodGet, "/auth/session", c.Token(), nil, nil))
}
