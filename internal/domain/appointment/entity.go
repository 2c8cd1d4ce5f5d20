package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ===============================
// Domain Actions
// ===============================

// Confirm assigns the staff member and clears the notes.
func Confirm(ap *models.Appointment, staffID *uint) error {
	if staffID == nil || *staffID == 0 {
		return httperr.ErrBusiness("staff_required")
	}
	id := *staffID
	ap.StaffID = &id
	ap.Status = string(StatusConfirmed)
	ap.Notes = ""
	return nil
}

// Decline stores the reason in the notes. The assignment becomes staffID,
// cleared when none is given.
func Decline(ap *models.Appointment, staffID *uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return httperr.ErrBusiness("reason_required")
	}
	ap.StaffID = nil
	if staffID != nil && *staffID != 0 {
		id := *staffID
		ap.StaffID = &id
	}
	ap.Status = string(StatusDeclined)
	ap.Notes = reason
	return nil
}

// ===============================
// Validations
// ===============================

// ParseDate parses YYYY-MM-DD in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}

// ValidateTimes checks HH:MM values with end strictly after start.
func ValidateTimes(start, end string) error {
	s, err := time.Parse(TimeLayout, start)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	e, err := time.Parse(TimeLayout, end)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if !e.After(s) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}
