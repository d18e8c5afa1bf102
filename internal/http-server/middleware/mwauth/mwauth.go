package mwauth

import (
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strings"
)

type ctxKey struct{}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionVerifier
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*models.Session, error)
}

// New rejects requests without a live bearer session.
func New(log *slog.Logger, verifier SessionVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/auth"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing bearer token"))
				return
			}

			sess, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Warn("rejected session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireAdmin must run after New.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		if !ok || !sess.User.IsAdmin() {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

func SessionFrom(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*models.Session)
	return sess, ok && sess != nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

	return token, token != ""
}
