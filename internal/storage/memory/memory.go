package memory

import (
	"autoDetailing/internal/models"
	"autoDetailing/internal/storage"
	"context"
	"github.com/google/uuid"
	"slices"
	"strings"
	"sync"
	"time"
)

// Storage keeps users and jobs in process memory. Used for the local env
// and in tests.
type Storage struct {
	mu       sync.RWMutex
	users    map[string]models.Account
	byEmail  map[string]string
	bookings []models.Booking
}

func New() *Storage {
	return &Storage{
		users:   make(map[string]models.Account),
		byEmail: make(map[string]string),
	}
}

func (s *Storage) CreateUser(_ context.Context, email string, passwordHash []byte, role models.Role) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.byEmail[key]; ok {
		return models.User{}, storage.ErrUserExists
	}

	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: models.DisplayNameFromEmail(email),
		Role:        role,
	}

	s.users[user.ID] = models.Account{
		User:         user,
		PasswordHash: slices.Clone(passwordHash),
		CreatedAt:    time.Now(),
	}
	s.byEmail[key] = user.ID

	return user, nil
}

func (s *Storage) UserByEmail(_ context.Context, email string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return models.Account{}, storage.ErrUserNotFound
	}

	return s.users[id], nil
}

func (s *Storage) User(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return acc.User, nil
}

func (s *Storage) CreateBooking(_ context.Context, b models.Booking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.NewString()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	s.bookings = append(s.bookings, b)

	return b.ID, nil
}

func (s *Storage) Bookings(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if filter.Match(b) {
			res = append(res, b)
		}
	}

	return res, nil
}
