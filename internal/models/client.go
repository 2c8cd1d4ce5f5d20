package models

import (
	"strings"
	"time"
)

type Client struct {
	ID uint `gorm:"column:client_id;primaryKey" json:"client_id"`

	FirstName   string `gorm:"size:100;not null" json:"first_name"`
	LastName    string `gorm:"size:100;not null" json:"last_name"`
	Email       string `gorm:"size:100;not null" json:"email"`
	PhoneNumber string `gorm:"size:20;not null" json:"phone_number"`
	Address     string `gorm:"size:255" json:"address"`
	City        string `gorm:"size:100" json:"city"`
	PostalCode  string `gorm:"size:20" json:"postal_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
