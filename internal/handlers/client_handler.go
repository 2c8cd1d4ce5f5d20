package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/httpresp"
	"github.com/BruksfildServices01/salon-admin/internal/models"
	"github.com/BruksfildServices01/salon-admin/internal/validators"
)

type ClientHandler struct {
	db     *gorm.DB
	audit  audit.Sink
	emails validators.EmailChecker
	log    *logrus.Logger
}

func NewClientHandler(db *gorm.DB, sink audit.Sink, emails validators.EmailChecker, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{db: db, audit: sink, emails: emails, log: log}
}

type CreateClientRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
}

type UpdateClientRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
}

// ======================================================
// LIST
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone_number LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("last_name ASC").
		Order("first_name ASC").
		Find(&clients).Error; err != nil {
		writeError(c, h.log, err, "client_list_failed")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// GET
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		writeError(c, h.log, err, "client_get_failed")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing required fields: first_name, last_name, email, phone_number.")
		return
	}

	email, code := h.emails.Normalize(req.Email)
	if code != "" {
		httperr.BadRequest(c, code, "Invalid email address.")
		return
	}

	client := models.Client{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		writeError(c, h.log, err, "client_create_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityClient, client.ID, audit.ActionCreate, audit.Change{New: client})

	httpresp.Created(c, client)
}

// ======================================================
// UPDATE
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		writeError(c, h.log, err, "client_update_failed")
		return
	}
	before := client

	if req.Email != nil {
		email, code := h.emails.Normalize(*req.Email)
		if code != "" {
			httperr.BadRequest(c, code, "Invalid email address.")
			return
		}
		client.Email = email
	}
	setString(&client.FirstName, req.FirstName)
	setString(&client.LastName, req.LastName)
	setString(&client.PhoneNumber, req.PhoneNumber)
	setString(&client.Address, req.Address)
	setString(&client.City, req.City)
	setString(&client.PostalCode, req.PostalCode)

	if client.FirstName == "" || client.LastName == "" || client.PhoneNumber == "" {
		httperr.BadRequest(c, "invalid_request", "first_name, last_name and phone_number cannot be empty.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		writeError(c, h.log, err, "client_update_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityClient, client.ID, audit.ActionUpdate, audit.Change{Old: before, New: client})

	httpresp.OK(c, client)
}

// ======================================================
// DELETE
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		writeError(c, h.log, err, "client_delete_failed")
		return
	}

	var booked int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Appointment{}).
		Where("client_id = ?", id).
		Count(&booked).Error; err != nil {
		writeError(c, h.log, err, "client_delete_failed")
		return
	}
	if booked > 0 {
		httperr.Conflict(c, "client_has_appointments", "Client still has appointments.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&models.Client{}, id).Error; err != nil {
		writeError(c, h.log, err, "client_delete_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityClient, id, audit.ActionDelete, audit.Change{Old: client})

	httpresp.Message(c, "Client deleted successfully")
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
