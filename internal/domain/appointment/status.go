package appointment

import "github.com/BruksfildServices01/salon-admin/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// ParseStatus accepts any known status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// ParseDecision accepts only the statuses a decision can move to.
func ParseDecision(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusConfirmed, StatusDeclined:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func InitialStatus() Status {
	return StatusPending
}
