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
)

type ServiceHandler struct {
	db    *gorm.DB
	audit audit.Sink
	log   *logrus.Logger
}

func NewServiceHandler(db *gorm.DB, sink audit.Sink, log *logrus.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, audit: sink, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Description     string  `json:"description" binding:"required"`
	Category        string  `json:"category" binding:"required"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Category        *string  `json:"category,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("service_id ASC").
		Find(&services).Error; err != nil {
		writeError(c, h.log, err, "service_list_failed")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	service, ok := h.load(c, id)
	if !ok {
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name, duration_minutes, price, description and category are required.")
		return
	}

	service := models.Service{
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Description:     strings.TrimSpace(req.Description),
		Category:        strings.TrimSpace(req.Category),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		writeError(c, h.log, err, "service_create_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityService, service.ID, audit.ActionCreate, audit.Change{New: service})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service, ok := h.load(c, id)
	if !ok {
		return
	}
	before := *service

	setString(&service.Name, req.Name)
	setString(&service.Description, req.Description)
	setString(&service.Category, req.Category)
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}

	if service.Name == "" || service.DurationMinutes <= 0 || service.Price <= 0 {
		httperr.BadRequest(c, "invalid_request", "name, positive duration_minutes and positive price are required.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		writeError(c, h.log, err, "service_update_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityService, service.ID, audit.ActionUpdate, audit.Change{Old: before, New: *service})

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	service, ok := h.load(c, id)
	if !ok {
		return
	}

	var booked int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Appointment{}).
		Where("service_id = ?", id).
		Count(&booked).Error; err != nil {
		writeError(c, h.log, err, "service_delete_failed")
		return
	}
	if booked > 0 {
		httperr.Conflict(c, "service_in_use", "Service is used by appointments.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, id).Error; err != nil {
		writeError(c, h.log, err, "service_delete_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityService, id, audit.ActionDelete, audit.Change{Old: *service})

	httpresp.Message(c, "Service deleted successfully")
}

func (h *ServiceHandler) load(c *gin.Context, id uint) (*models.Service, bool) {
	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return nil, false
		}
		writeError(c, h.log, err, "service_load_failed")
		return nil, false
	}
	return &service, true
}
