// Package identity is the service-side identity provider: accounts,
// password checks, session issue and revocation, and role claims.
package identity

import (
	"autoDetailing/internal/config"
	"autoDetailing/internal/lib/auth"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/metrics"
	"autoDetailing/internal/models"
	"autoDetailing/internal/session"
	"autoDetailing/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("weak password")
	ErrUnauthenticated    = errors.New("session is not valid")
)

type UserStorage interface {
	CreateUser(ctx context.Context, email string, passwordHash []byte, role models.Role) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.Account, error)
	User(ctx context.Context, id string) (models.User, error)
}

type SessionRegistry interface {
	Create(ctx context.Context, userID string) (string, time.Time, error)
	UserID(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type Service struct {
	log         *slog.Logger
	users       UserStorage
	sessions    SessionRegistry
	secret      []byte
	admins      map[string]struct{}
	minPassword int
}

func New(log *slog.Logger, users UserStorage, sessions SessionRegistry, cfg config.Auth) *Service {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[normalizeEmail(email)] = struct{}{}
	}

	return &Service{
		log:         log.With(slog.String("component", "identity")),
		users:       users,
		sessions:    sessions,
		secret:      []byte(cfg.JWTSecret),
		admins:      admins,
		minPassword: cfg.MinPasswordLength,
	}
}

func (s *Service) CreateAccount(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "identity.CreateAccount"

	email = normalizeEmail(email)

	if len(password) < s.minPassword {
		metrics.IncAuth("register", "weak_password")
		return nil, fmt.Errorf("%w: password should be at least %d characters", ErrWeakPassword, s.minPassword)
	}

	if len(password) > auth.MaxPasswordBytes {
		metrics.IncAuth("register", "weak_password")
		return nil, fmt.Errorf("%w: password should be at most %d bytes", ErrWeakPassword, auth.MaxPasswordBytes)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password should be at most %d bytes", ErrWeakPassword, auth.MaxPasswordBytes)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, email, hash, s.roleFor(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			metrics.IncAuth("register", "email_in_use")
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("account created", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	metrics.IncAuth("register", "ok")

	return s.issue(ctx, user)
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "identity.Authenticate"

	acc, err := s.users.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			metrics.IncAuth("login", "invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = auth.CheckPassword(acc.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			metrics.IncAuth("login", "invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.IncAuth("login", "ok")

	return s.issue(ctx, acc.User)
}

// Verify resolves a bearer token to its live session.
func (s *Service) Verify(ctx context.Context, token string) (*models.Session, error) {
	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	userID, err := s.sessions.UserID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("identity.Verify: %w", err)
	}

	if userID != claims.Subject {
		s.log.Warn("session owner mismatch", slog.String("session_id", claims.ID))
		return nil, ErrUnauthenticated
	}

	res := &models.Session{
		ID:    claims.ID,
		Token: token,
		User:  claims.User(),
	}
	if claims.ExpiresAt != nil {
		res.ExpiresAt = claims.ExpiresAt.Time
	}

	return res, nil
}

func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("identity.EndSession: %w", err)
	}

	return nil
}

func (s *Service) issue(ctx context.Context, user models.User) (*models.Session, error) {
	const op = "identity.issue"

	sessionID, expiresAt, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := auth.GenerateToken(user, sessionID, s.secret, expiresAt)
	if err != nil {
		if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil {
			s.log.Error("failed to drop unused session", sl.Err(delErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.DisplayName = models.DisplayNameFromEmail(user.Email)

	return &models.Session{
		ID:        sessionID,
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// roleFor grants admin to addresses listed in auth.admin_emails. The role
// is then carried as a token claim.
func (s *Service) roleFor(email string) models.Role {
	if _, ok := s.admins[email]; ok {
		return models.RoleAdmin
	}

	return models.RoleCustomer
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
