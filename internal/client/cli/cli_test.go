package cli

import (
	"autoDetailing/internal/client/app"
	"autoDetailing/internal/client/remote"
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
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func runScript(t *testing.T, script ...string) string {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	store := memory.New()
	ids := identity.New(log, store, session.NewMemoryStore(time.Hour), config.Auth{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		MinPasswordLength: 6,
	})

	srv := httptest.NewServer(router.New(log, ids, store, config.RateLimit{}))
	defer srv.Close()

	var out bytes.Buffer

	idc := remote.NewIdentityClient(log, srv.URL, srv.Client())
	records := remote.NewRecordsClient(srv.URL, srv.Client(), idc)

	a := app.New(context.Background(), log, idc, records, NewConsole(&out))
	defer a.Close()

	in := strings.NewReader(strings.Join(script, "\n") + "\n")

	require.NoError(t, New(log, a, records, records, in, &out).Run(context.Background()))

	return out.String()
}

func TestRun_RegisterAndBook(t *testing.T) {
	out := runScript(t,
		"register", "Alice", "alice@example.com", "secret1", "12 Elm St",
		"book", "Alice", "alice@example.com", "704-555-0101", "12 Elm St", "2025-06-01", "1",
		"bogus",
		"exit",
	)

	assert.Contains(t, out, "Registration successful!")
	assert.Contains(t, out, "Thank you for booking! We'll contact you shortly.")
	assert.Contains(t, out, "Welcome, alice")
	assert.Contains(t, out, "06/01/2025")
	assert.Contains(t, out, "Basic Wash")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Bye!")
}

func TestRun_SignedOut(t *testing.T) {
	out := runScript(t,
		"dashboard",
		"login", "nobody@example.com", "secret1",
		"book", "Eve", "", "", "", "", "",
		"close",
		"services",
		"help",
	)

	assert.Contains(t, out, "No upcoming jobs yet.")
	assert.Contains(t, out, "Login failed: invalid email or password")
	assert.Contains(t, out, "Error: booking form is incomplete")
	assert.Contains(t, out, "Our Pricing")
	assert.Contains(t, out, "Weekly Subscription")
	assert.Contains(t, out, "export [file]")
}

type failingCatalog struct{}

func (failingCatalog) Services(context.Context) ([]models.ServiceInfo, error) {
	return nil, errors.New("offline")
}

func TestServices_FallsBackToBuiltIn(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{log: slogdiscard.NewDiscardLogger(), catalog: failingCatalog{}, out: &out}

	require.NoError(t, c.services(context.Background()))
	assert.Contains(t, out.String(), "$359/mo")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "06/01/2025", formatDate("2025-06-01"))
	assert.Equal(t, "next week", formatDate("next week"))
}

func TestResolveService(t *testing.T) {
	assert.Equal(t, "Basic Wash", resolveService("1"))
	assert.Equal(t, "Weekly Subscription", resolveService("6"))
	assert.Equal(t, "7", resolveService("7"))
	assert.Equal(t, "Premium Wash", resolveService("Premium Wash"))
}

func TestRenderDashboard_Empty(t *testing.T) {
	var out bytes.Buffer
	renderDashboard(&out, nil, nil)

	assert.Contains(t, out.String(), "Welcome, \n")
	assert.Contains(t, out.String(), "No upcoming jobs yet.")
}

func TestRun_RegisterRequiresProfile(t *testing.T) {
	out := runScript(t,
		"register", "", "frank@example.com", "secret1", "",
		"exit",
	)

	assert.Contains(t, out, "Error: name and address are required")
	assert.NotContains(t, out, "Registration successful!")
	assert.NotContains(t, out, "Welcome, frank")
}
