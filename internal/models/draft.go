package models

import (
	"fmt"
	"time"
)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldDate    = "date"
	FieldService = "service"
)

// DraftFields lists the booking form inputs in the order they are shown.
var DraftFields = []string{FieldName, FieldEmail, FieldPhone, FieldAddress, FieldDate, FieldService}

// BookingDraft is the unsaved booking form. Every field stays optional
// until Submit validates it.
type BookingDraft struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Service string `json:"service" validate:"required,detailing_service"`
}

// Set merges a single field into the draft and leaves the others untouched.
func (d *BookingDraft) Set(field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldAddress:
		d.Address = value
	case FieldDate:
		d.Date = value
	case FieldService:
		d.Service = value
	default:
		return fmt.Errorf("unknown booking field %q", field)
	}

	return nil
}

func (d BookingDraft) Get(field string) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldAddress:
		return d.Address
	case FieldDate:
		return d.Date
	case FieldService:
		return d.Service
	}

	return ""
}

func (d BookingDraft) IsEmpty() bool {
	return d == BookingDraft{}
}

func (d BookingDraft) Booking(ownerID string, createdAt time.Time) Booking {
	return Booking{
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		Date:      d.Date,
		Service:   Service(d.Service),
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}
}
