package exportBookings

import (
	"autoDetailing/internal/http-server/handlers/booking/exportBookings/mocks"
	"autoDetailing/internal/lib/logger/handlers/slogdiscard"
	"autoDetailing/internal/models"
	"bytes"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExportBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	t.Run("Writes workbook", func(t *testing.T) {
		t.Parallel()

		getter := mocks.NewBookingsGetter(t)
		getter.On("Bookings", mock.Anything, models.BookingFilter{}).Return([]models.Booking{
			{
				ID:        "1",
				Name:      "Alice",
				Email:     "alice@example.com",
				Phone:     "704-555-0101",
				Address:   "12 Elm St",
				Date:      "2025-06-01",
				Service:   models.ServiceBasicWash,
				OwnerID:   "user-a",
				CreatedAt: time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
			},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/jobs/export", nil)
		rr := httptest.NewRecorder()

		New(logger, getter).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, contentType, rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "jobs_")

		f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, header, rows[0])
		assert.Equal(t, "Alice", rows[1][0])
		assert.Equal(t, "Basic Wash", rows[1][3])
		assert.Equal(t, "12 Elm St", rows[1][5])
		assert.Equal(t, "2025-05-20T10:00:00Z", rows[1][7])
	})

	t.Run("Store failure", func(t *testing.T) {
		t.Parallel()

		getter := mocks.NewBookingsGetter(t)
		getter.On("Bookings", mock.Anything, models.BookingFilter{}).Return(nil, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/jobs/export", nil)
		rr := httptest.NewRecorder()

		New(logger, getter).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"failed to get bookings"}`, rr.Body.String())
	})
}
