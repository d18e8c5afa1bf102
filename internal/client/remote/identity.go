package remote

import (
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"context"
	"log/slog"
	"net/http"
	"sync"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	envelope
	Session *models.Session `json:"session"`
}

// IdentityClient holds the signed-in session and tells observers about
// every change to it. Observers run synchronously on the caller's goroutine.
type IdentityClient struct {
	transport
	log *slog.Logger

	mu        sync.RWMutex
	current   *models.Session
	observers map[int]func(*models.Session)
	nextID    int
}

func NewIdentityClient(log *slog.Logger, baseURL string, httpClient *http.Client) *IdentityClient {
	return &IdentityClient{
		transport: newTransport(baseURL, httpClient),
		log:       log.With(slog.String("component", "remote/identity")),
		observers: make(map[int]func(*models.Session)),
	}
}

func (c *IdentityClient) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	return c.signIn(ctx, "/auth/login", email, password)
}

func (c *IdentityClient) CreateAccount(ctx context.Context, email, password string) (*models.Session, error) {
	return c.signIn(ctx, "/auth/register", email, password)
}

// signIn replaces the current session and revokes the one it replaced.
func (c *IdentityClient) signIn(ctx context.Context, path, email, password string) (*models.Session, error) {
	prev := c.Token()

	var resp sessionResponse

	err := c.doJSON(ctx, http.MethodPost, path, "", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Session == nil {
		return nil, &APIError{Status: http.StatusBadGateway, Message: "server returned no session"}
	}

	c.set(resp.Session)

	if prev != "" && prev != resp.Session.Token {
		if err = c.doJSON(ctx, http.MethodPost, "/auth/logout", prev, nil, nil); err != nil {
			c.log.Warn("failed to revoke replaced session", sl.Err(err))
		}
	}

	return resp.Session, nil
}

// EndSession revokes the session server-side. The local session is dropped
// even when the server call fails.
func (c *IdentityClient) EndSession(ctx context.Context) error {
	token := c.Token()
	if token == "" {
		return nil
	}

	err := c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
	if err != nil {
		c.log.Warn("server logout failed", sl.Err(err))
	}

	c.set(nil)

	return err
}

// ObserveSession registers fn and calls it once with the current session.
// The returned func removes the observer.
func (c *IdentityClient) ObserveSession(fn func(*models.Session)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	current := c.current
	c.mu.Unlock()

	fn(current)

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

func (c *IdentityClient) CurrentSession() *models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

func (c *IdentityClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return ""
	}

	return c.current.Token
}

func (c *IdentityClient) set(sess *models.Session) {
	c.mu.Lock()
	c.current = sess
	fns := make([]func(*models.Session), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}
