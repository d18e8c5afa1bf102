package exportBookings

import (
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"context"
	"fmt"
	"github.com/go-chi/render"
	"github.com/xuri/excelize/v2"
	"log/slog"
	"net/http"
	"time"
)

const (
	SheetName   = "Jobs"
	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []string{"Customer", "Email", "Phone", "Service", "Date", "Address", "Owner", "Created"}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsGetter
type BookingsGetter interface {
	Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

// New streams every job as an xlsx workbook. Mount behind mwauth.RequireAdmin.
func New(log *slog.Logger, bookings BookingsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.exportBookings.New"

		log := log.With(slog.String("op", op))

		jobs, err := bookings.Bookings(r.Context(), models.BookingFilter{})
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		f, err := buildWorkbook(jobs)
		if err != nil {
			log.Error("failed to build workbook", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to export bookings"))
			return
		}
		defer f.Close()

		fileName := fmt.Sprintf("jobs_%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

		if _, err = f.WriteTo(w); err != nil {
			log.Error("failed to write workbook", sl.Err(err))
			return
		}

		log.Info("bookings exported", slog.Int("count", len(jobs)))
	}
}

func buildWorkbook(jobs []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("error renaming sheet: %w", err)
	}

	for i, title := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, title)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(SheetName, "A1", "H1", style)
	}

	for i, job := range jobs {
		row := []any{
			job.Name,
			job.Email,
			job.Phone,
			string(job.Service),
			job.Date,
			job.Address,
			job.OwnerID,
			job.CreatedAt.UTC().Format(time.RFC3339),
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "H", 22)

	return f, nil
}
