package createBooking

import (
	"autoDetailing/internal/http-server/middleware/mwauth"
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/lib/validate"
	"autoDetailing/internal/metrics"
	"autoDetailing/internal/models"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"time"
)

type BookingRequest struct {
	models.BookingDraft
	OwnerID   string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingResponse struct {
	response.Response
	ID string `json:"id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, b models.Booking) (string, error)
}

func New(log *slog.Logger, booking BookingCreator) http.HandlerFunc {
	v := validate.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(slog.String("op", op))

		sess, ok := mwauth.SessionFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		log = log.With(slog.String("user_id", sess.User.ID))

		var req BookingRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = v.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if req.OwnerID != "" && req.OwnerID != sess.User.ID {
			log.Warn("booking owner does not match session", slog.String("owner_id", req.OwnerID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("owner does not match signed-in user"))
			return
		}

		createdAt := req.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		id, err := booking.CreateBooking(r.Context(), req.BookingDraft.Booking(sess.User.ID, createdAt))
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		metrics.IncBookingCreated(req.Service)
		log.Info("booking created", slog.String("id", id), slog.String("service", req.Service))

		responseOK(w, r, id)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, id string) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		ID:       id,
	})
}
