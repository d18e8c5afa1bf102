package app

import (
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"context"
	"log/slog"
	"slices"
	"sync"
)

// LoadJobs returns every record for an admin and the user's own records
// for anyone else.
func LoadJobs(ctx context.Context, store RecordStore, user models.User, isAdmin bool) ([]models.Booking, error) {
	filter := models.BookingFilter{OwnerID: user.ID}
	if isAdmin {
		filter = models.BookingFilter{}
	}

	jobs, err := store.Query(ctx, filter)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	return jobs, nil
}

// JobsLoader keeps the jobs list in step with the signed-in identity.
// Each fetch is tagged with the generation it was started for and its
// result is dropped if the generation has moved on.
type JobsLoader struct {
	ctx   context.Context
	log   *slog.Logger
	store RecordStore

	mu   sync.Mutex
	gen  uint64
	user *models.User
	jobs []models.Booking

	wg sync.WaitGroup
}

func NewJobsLoader(ctx context.Context, log *slog.Logger, store RecordStore) *JobsLoader {
	return &JobsLoader{
		ctx:   ctx,
		log:   log.With(slog.String("component", "jobs")),
		store: store,
	}
}

// HandleUserChange is a UserListener.
func (l *JobsLoader) HandleUserChange(user *models.User) {
	l.mu.Lock()
	l.gen++
	l.user = user
	l.jobs = nil
	gen := l.gen
	l.mu.Unlock()

	if user == nil {
		return
	}

	l.start(l.ctx, gen, *user)
}

// Refresh reloads the list for the current identity.
func (l *JobsLoader) Refresh(ctx context.Context) {
	l.mu.Lock()
	if l.user == nil {
		l.mu.Unlock()
		return
	}
	l.gen++
	gen, user := l.gen, *l.user
	l.mu.Unlock()

	l.start(ctx, gen, user)
}

func (l *JobsLoader) Jobs() []models.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.jobs)
}

// Wait blocks until every in-flight fetch has finished.
func (l *JobsLoader) Wait() {
	l.wg.Wait()
}

func (l *JobsLoader) start(ctx context.Context, gen uint64, user models.User) {
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()
		l.fetch(ctx, gen, user)
	}()
}

func (l *JobsLoader) fetch(ctx context.Context, gen uint64, user models.User) {
	jobs, err := LoadJobs(ctx, l.store, user, user.IsAdmin())

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		l.log.Debug("discarding stale jobs", slog.Uint64("gen", gen), slog.Uint64("current", l.gen))
		return
	}

	if err != nil {
		l.log.Error("failed to load jobs", sl.Err(err), slog.String("user_id", user.ID))
		l.jobs = nil
		return
	}

	l.jobs = jobs
}
