package app

import (
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/lib/validate"
	"autoDetailing/internal/models"
	"context"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"sync"
	"time"
)

const (
	msgBooked     = "Thank you for booking! We'll contact you shortly."
	msgBookFailed = "There was an error submitting your booking."
)

type BookingForm struct {
	log      *slog.Logger
	store    RecordStore
	alerts   Notifier
	validate *validator.Validate
	now      func() time.Time

	mu    sync.Mutex
	open  bool
	draft models.BookingDraft
}

func NewBookingForm(log *slog.Logger, store RecordStore, alerts Notifier) *BookingForm {
	return &BookingForm{
		log:      log.With(slog.String("component", "booking_form")),
		store:    store,
		alerts:   alerts,
		validate: validate.New(),
		now:      time.Now,
	}
}

func (f *BookingForm) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

// Close hides the form and throws the draft away.
func (f *BookingForm) Close() {
	f.mu.Lock()
	f.open = false
	f.draft = models.BookingDraft{}
	f.mu.Unlock()
}

func (f *BookingForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.open
}

func (f *BookingForm) Draft() models.BookingDraft {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.draft
}

func (f *BookingForm) UpdateField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.draft.Set(field, value)
}

// Submit validates the draft and writes it as a record owned by ownerID.
// An incomplete draft is rejected before the store is touched and without
// an alert. A failed write keeps the form open with the draft intact.
func (f *BookingForm) Submit(ctx context.Context, ownerID string) error {
	draft := f.Draft()

	if err := f.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrIncompleteForm, response.ValidationError(verrs).Error)
		}
		return fmt.Errorf("%w: %w", ErrIncompleteForm, err)
	}

	if ownerID == "" {
		return f.fail(ErrSignedOut)
	}

	id, err := f.store.Insert(ctx, draft.Booking(ownerID, f.now()))
	if err != nil {
		return f.fail(err)
	}

	f.log.Info("booking submitted", slog.String("id", id), slog.String("service", draft.Service))
	f.alerts.Alert(msgBooked)
	f.Close()

	return nil
}

func (f *BookingForm) fail(err error) error {
	f.log.Error("failed to submit booking", sl.Err(err))
	f.alerts.Alert(msgBookFailed)

	return &SubmitError{Err: err}
}
