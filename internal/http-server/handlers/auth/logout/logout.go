package logout

import (
	"autoDetailing/internal/http-server/middleware/mwauth"
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionEnder
type SessionEnder interface {
	EndSession(ctx context.Context, sessionID string) error
}

func New(log *slog.Logger, sessions SessionEnder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		log := log.With(slog.String("op", op))

		sess, ok := mwauth.SessionFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		if err := sessions.EndSession(r.Context(), sess.ID); err != nil {
			log.Error("failed to end session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to sign out"))
			return
		}

		log.Info("signed out", slog.String("user_id", sess.User.ID))

		render.JSON(w, r, response.OK())
	}
}
