package listBookings

import (
	"autoDetailing/internal/http-server/handlers/booking/listBookings/mocks"
	"autoDetailing/internal/http-server/middleware/mwauth"
	"autoDetailing/internal/lib/logger/handlers/slogdiscard"
	"autoDetailing/internal/models"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	customer := &models.Session{ID: "s-a", User: models.User{ID: "user-a", Role: models.RoleCustomer}}
	admin := &models.Session{ID: "s-x", User: models.User{ID: "admin", Role: models.RoleAdmin}}

	jobA := models.Booking{ID: "1", Name: "Alice", OwnerID: "user-a", Service: models.ServiceBasicWash}
	jobB := models.Booking{ID: "2", Name: "Bob", OwnerID: "user-b", Service: models.ServicePremiumWash}

	testCases := []struct {
		name           string
		session        *models.Session
		query          string
		mockSetup      func(m *mocks.BookingsGetter)
		expectedStatus int
		expectedIDs    []string
		expectedBody   string
	}{
		{
			name:    "Customer sees own jobs",
			session: customer,
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Bookings", mock.Anything, models.BookingFilter{OwnerID: "user-a"}).Return([]models.Booking{jobA}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"1"},
		},
		{
			name:    "Customer may name themselves",
			session: customer,
			query:   "?owner_id=user-a",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Bookings", mock.Anything, models.BookingFilter{OwnerID: "user-a"}).Return([]models.Booking{jobA}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"1"},
		},
		{
			name:           "Customer cannot read another owner",
			session:        customer,
			query:          "?owner_id=user-b",
			mockSetup:      func(m *mocks.BookingsGetter) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"forbidden"}`,
		},
		{
			name:    "Admin sees all",
			session: admin,
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Bookings", mock.Anything, models.BookingFilter{}).Return([]models.Booking{jobA, jobB}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"1", "2"},
		},
		{
			name:    "Admin narrows by owner",
			session: admin,
			query:   "?owner_id=user-b",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Bookings", mock.Anything, models.BookingFilter{OwnerID: "user-b"}).Return([]models.Booking{jobB}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"2"},
		},
		{
			name:    "Empty result is an empty array",
			session: customer,
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Bookings", mock.Anything, models.BookingFilter{OwnerID: "user-a"}).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","jobs":[]}`,
		},
		{
			name:           "Unauthenticated",
			mockSetup:      func(m *mocks.BookingsGetter) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:    "Store failure",
			session: customer,
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Bookings", mock.Anything, models.BookingFilter{OwnerID: "user-a"}).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get bookings"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewBookingsGetter(t)
			tc.mockSetup(getter)

			req := httptest.NewRequest(http.MethodGet, "/jobs"+tc.query, nil)
			if tc.session != nil {
				req = req.WithContext(mwauth.WithSession(req.Context(), tc.session))
			}
			rr := httptest.NewRecorder()

			New(logger, getter).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				return
			}

			var resp BookingsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "OK", resp.Status)

			ids := make([]string, 0, len(resp.Jobs))
			for _, j := range resp.Jobs {
				ids = append(ids, j.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}
