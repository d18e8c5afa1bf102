package register

import (
	"autoDetailing/internal/identity"
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	response.Response
	Session *models.Session `json:"session,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AccountCreator
type AccountCreator interface {
	CreateAccount(ctx context.Context, email, password string) (*models.Session, error)
}

func New(log *slog.Logger, accounts AccountCreator) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validate.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		sess, err := accounts.CreateAccount(r.Context(), req.Email, req.Password)
		if err != nil {
			log.Error("failed to create account", sl.Err(err))

			switch {
			case errors.Is(err, identity.ErrEmailInUse):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(identity.ErrEmailInUse.Error()))
			case errors.Is(err, identity.ErrWeakPassword):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create account"))
			}

			return
		}

		log.Info("account registered", slog.String("user_id", sess.User.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: response.OK(),
			Session:  sess,
		})
	}
}
