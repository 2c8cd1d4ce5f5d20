package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// StaffView is the API shape of a staff member: never carries the hash.
type StaffView struct {
	ID          uint      `json:"staff_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	RoleID      uint      `json:"role_id"`
	Position    string    `json:"position,omitempty"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Province    string    `json:"province"`
	PostalCode  string    `json:"postal_code"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewStaffView(s *models.Staff, position string) StaffView {
	return StaffView{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Username:    s.Username,
		RoleID:      s.RoleID,
		Position:    position,
		Address:     s.Address,
		City:        s.City,
		Province:    s.Province,
		PostalCode:  s.PostalCode,
		CreatedAt:   s.CreatedAt,
	}
}
