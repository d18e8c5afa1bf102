package router

import (
	"autoDetailing/internal/config"
	"autoDetailing/internal/http-server/handlers/auth/getSession"
	"autoDetailing/internal/http-server/handlers/auth/login"
	"autoDetailing/internal/http-server/handlers/auth/logout"
	"autoDetailing/internal/http-server/handlers/auth/register"
	"autoDetailing/internal/http-server/handlers/booking/createBooking"
	"autoDetailing/internal/http-server/handlers/booking/exportBookings"
	"autoDetailing/internal/http-server/handlers/booking/listBookings"
	"autoDetailing/internal/http-server/handlers/catalog/getServices"
	"autoDetailing/internal/http-server/middleware/mwauth"
	"autoDetailing/internal/http-server/middleware/mwlogger"
	"autoDetailing/internal/http-server/middleware/mwratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

type Identity interface {
	register.AccountCreator
	login.Authenticator
	logout.SessionEnder
	mwauth.SessionVerifier
}

type Storage interface {
	getSession.UserGetter
	createBooking.BookingCreator
	listBookings.BookingsGetter
}

func New(log *slog.Logger, identity Identity, storage Storage, rl config.RateLimit) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	authenticated := mwauth.New(log, identity)
	limited := mwratelimit.New(log, rl)

	router.Get("/services", getServices.New(log))

	router.Route("/auth", func(r chi.Router) {
		r.With(limited).Post("/register", register.New(log, identity))
		r.With(limited).Post("/login", login.New(log, identity))

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/logout", logout.New(log, identity))
			r.Get("/session", getSession.New(log, storage))
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticated)
		r.Post("/jobs", createBooking.New(log, storage))
		r.Get("/jobs", listBookings.New(log, storage))
		r.With(mwauth.RequireAdmin).Get("/jobs/export", exportBookings.New(log, storage))
	})

	router.Handle("/metrics", promhttp.Handler())

	return router
}
