package memory

import (
	"autoDetailing/internal/models"
	"autoDetailing/internal/storage"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func TestStorage_Users(t *testing.T) {
	ctx := context.Background()
	s := New()

	user, err := s.CreateUser(ctx, "jane@example.com", []byte("hash"), models.RoleCustomer)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane", user.DisplayName)

	_, err = s.CreateUser(ctx, "JANE@example.com", []byte("hash"), models.RoleCustomer)
	assert.ErrorIs(t, err, storage.ErrUserExists)

	acc, err := s.UserByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, acc.ID)
	assert.Equal(t, []byte("hash"), acc.PasswordHash)

	got, err := s.User(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = s.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.User(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_Bookings(t *testing.T) {
	ctx := context.Background()
	s := New()

	idA, err := s.CreateBooking(ctx, models.Booking{Name: "A", OwnerID: "a", Service: models.ServiceBasicWash})
	require.NoError(t, err)
	_, err = s.CreateBooking(ctx, models.Booking{Name: "B", OwnerID: "b", Service: models.ServicePremiumWash})
	require.NoError(t, err)

	own, err := s.Bookings(ctx, models.BookingFilter{OwnerID: "a"})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, idA, own[0].ID)
	assert.False(t, own[0].CreatedAt.IsZero())

	all, err := s.Bookings(ctx, models.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := s.Bookings(ctx, models.BookingFilter{OwnerID: "c"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStorage_ConcurrentBookings(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateBooking(ctx, models.Booking{OwnerID: "a"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := s.Bookings(ctx, models.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
