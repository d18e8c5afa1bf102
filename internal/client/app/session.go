package app

import (
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"context"
	"log/slog"
	"sync"
)

// UserListener is told about every change of signed-in identity. user is
// nil after sign-out.
type UserListener func(user *models.User)

type SessionController struct {
	log    *slog.Logger
	idp    IdentityProvider
	router *Router
	alerts Notifier

	mu        sync.RWMutex
	user      *models.User
	listeners []UserListener

	unsubscribe func()
}

func NewSessionController(log *slog.Logger, idp IdentityProvider, router *Router, alerts Notifier, listeners ...UserListener) *SessionController {
	c := &SessionController{
		log:       log.With(slog.String("component", "session")),
		idp:       idp,
		router:    router,
		alerts:    alerts,
		listeners: listeners,
	}

	c.unsubscribe = idp.ObserveSession(c.onSession)

	return c
}

func (c *SessionController) Login(ctx context.Context, email, password string) error {
	if _, err := c.idp.Authenticate(ctx, email, password); err != nil {
		c.log.Info("login failed", sl.Err(err))
		c.alerts.Alert("Login failed: " + err.Error())
		return &AuthError{Op: "login", Err: err}
	}

	return nil
}

// Register creates the account. name and address are collected by the
// form but only email and password reach the provider.
func (c *SessionController) Register(ctx context.Context, name, email, password, address string) error {
	c.log.Debug("profile fields are not stored",
		slog.Bool("name_set", name != ""),
		slog.Bool("address_set", address != ""),
	)

	if _, err := c.idp.CreateAccount(ctx, email, password); err != nil {
		c.log.Info("registration failed", sl.Err(err))
		c.alerts.Alert("Registration failed: " + err.Error())
		return &AuthError{Op: "register", Err: err}
	}

	c.alerts.Alert("Registration successful!")
	c.router.Navigate(PageDashboard)

	return nil
}

// Logout always ends on the home page signed out, whatever the provider says.
func (c *SessionController) Logout(ctx context.Context) {
	if err := c.idp.EndSession(ctx); err != nil {
		c.log.Error("failed to end session", sl.Err(err))
	}

	c.setUser(nil)
	c.router.Navigate(PageHome)
}

func (c *SessionController) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil {
		return nil
	}

	u := *c.user

	return &u
}

func (c *SessionController) IsAdmin() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.user != nil && c.user.IsAdmin()
}

func (c *SessionController) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *SessionController) onSession(sess *models.Session) {
	if sess == nil {
		c.setUser(nil)
		return
	}

	u := sess.User
	if u.DisplayName == "" {
		u.DisplayName = models.DisplayNameFromEmail(u.Email)
	}

	c.setUser(&u)
	c.router.Navigate(PageDashboard)
}

// setUser fires listeners only when the identity actually changes.
func (c *SessionController) setUser(u *models.User) {
	c.mu.Lock()

	prev := ""
	if c.user != nil {
		prev = c.user.ID
	}
	next := ""
	if u != nil {
		next = u.ID
	}

	c.user = u
	listeners := c.listeners
	c.mu.Unlock()

	if prev == next {
		return
	}

	for _, fn := range listeners {
		var arg *models.User
		if u != nil {
			cp := *u
			arg = &cp
		}
		fn(arg)
	}
}
