// Package app holds the client-side state machine behind the terminal UI.
package app

import (
	"autoDetailing/internal/models"
	"context"
	"log/slog"
)

type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (*models.Session, error)
	CreateAccount(ctx context.Context, email, password string) (*models.Session, error)
	EndSession(ctx context.Context) error
	ObserveSession(fn func(*models.Session)) (unsubscribe func())
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RecordStore
type RecordStore interface {
	Insert(ctx context.Context, b models.Booking) (string, error)
	Query(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

// Notifier shows a blocking message to the user.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	Alert(msg string)
}

type App struct {
	Router  *Router
	Session *SessionController
	Jobs    *JobsLoader
	Form    *BookingForm
}

// New wires the controllers together. ctx bounds the background job
// fetches started on identity changes.
func New(ctx context.Context, log *slog.Logger, idp IdentityProvider, store RecordStore, alerts Notifier) *App {
	router := NewRouter()
	jobs := NewJobsLoader(ctx, log, store)
	form := NewBookingForm(log, store, alerts)
	session := NewSessionController(log, idp, router, alerts, jobs.HandleUserChange)

	return &App{
		Router:  router,
		Session: session,
		Jobs:    jobs,
		Form:    form,
	}
}

// SubmitBooking submits the form as the signed-in user and reloads the
// jobs list after a successful write.
func (a *App) SubmitBooking(ctx context.Context) error {
	var ownerID string
	if u := a.Session.User(); u != nil {
		ownerID = u.ID
	}

	if err := a.Form.Submit(ctx, ownerID); err != nil {
		return err
	}

	a.Jobs.Refresh(ctx)

	return nil
}

func (a *App) Close() {
	a.Session.Close()
	a.Jobs.Wait()
}
