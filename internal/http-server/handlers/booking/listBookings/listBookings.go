package listBookings

import (
	"autoDetailing/internal/http-server/middleware/mwauth"
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/metrics"
	"autoDetailing/internal/models"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type BookingsResponse struct {
	response.Response
	Jobs []models.Booking `json:"jobs"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsGetter
type BookingsGetter interface {
	Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

// New lists jobs. Admins may read every owner or narrow with ?owner_id;
// everyone else only ever sees their own records.
func New(log *slog.Logger, bookings BookingsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listBookings.New"

		log := log.With(slog.String("op", op))

		sess, ok := mwauth.SessionFrom(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		ownerID := r.URL.Query().Get("owner_id")
		filter := models.BookingFilter{OwnerID: sess.User.ID}
		scope := "own"

		switch {
		case sess.User.IsAdmin():
			filter.OwnerID = ownerID
			if ownerID == "" {
				scope = "all"
			}
		case ownerID != "" && ownerID != sess.User.ID:
			log.Warn("cross-owner query rejected", slog.String("user_id", sess.User.ID), slog.String("owner_id", ownerID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
			return
		}

		jobs, err := bookings.Bookings(r.Context(), filter)
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		if jobs == nil {
			jobs = []models.Booking{}
		}

		metrics.IncBookingQuery(scope)
		log.Info("bookings retrieved", slog.Int("count", len(jobs)), slog.String("scope", scope))

		responseOK(w, r, jobs)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, jobs []models.Booking) {
	render.JSON(w, r, BookingsResponse{
		Response: response.OK(),
		Jobs:     jobs,
	})
}
