package getSession

import (
	"autoDetailing/internal/http-server/middleware/mwauth"
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"autoDetailing/internal/storage"
	"context"
	"errors"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type Response struct {
	response.Response
	User      *models.User `json:"user,omitempty"`
	SessionID string       `json:"session_id,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserGetter
type UserGetter interface {
	User(ctx context.Context, id string) (models.User, error)
}

// New reports the signed-in user. The role is read back from the user
// record, so a role change takes effect without a new token.
func New(log *slog.Logger, users UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.getSession.New"

		log := log.With(slog.String("op", op))

		sess, ok := mwauth.SessionFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		user, err := users.User(r.Context(), sess.User.ID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Warn("session user no longer exists", slog.String("user_id", sess.User.ID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get session"))
			return
		}

		render.JSON(w, r, Response{
			Response:  response.OK(),
			User:      &user,
			SessionID: sess.ID,
		})
	}
}
