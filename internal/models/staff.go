package models

import (
	"strings"
	"time"
)

type Staff struct {
	ID uint `gorm:"column:staff_id;primaryKey" json:"staff_id"`

	FirstName   string `gorm:"size:100;not null" json:"first_name"`
	LastName    string `gorm:"size:100;not null" json:"last_name"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username    string `gorm:"size:50;uniqueIndex;not null" json:"username"`

	// Serialized under its column name so that change logs show it redacted.
	// API responses go through dto.StaffView instead.
	HashedPassword string `gorm:"size:255;not null" json:"hashed_password"`

	RoleID uint `json:"role_id"`

	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	Province   string `gorm:"size:100" json:"province"`
	PostalCode string `gorm:"size:20" json:"postal_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }

// DisplayName is "First Last", falling back to the username.
func (s *Staff) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return s.Username
	}
	return name
}
