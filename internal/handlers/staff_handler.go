package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/dto"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/httpresp"
	"github.com/BruksfildServices01/salon-admin/internal/models"
	"github.com/BruksfildServices01/salon-admin/internal/validators"
)

type StaffHandler struct {
	db     *gorm.DB
	audit  audit.Sink
	emails validators.EmailChecker
	log    *logrus.Logger
}

func NewStaffHandler(db *gorm.DB, sink audit.Sink, emails validators.EmailChecker, log *logrus.Logger) *StaffHandler {
	return &StaffHandler{db: db, audit: sink, emails: emails, log: log}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phone_number"`
	RoleID      uint   `json:"role_id" binding:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
}

type UpdateStaffRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	PhoneNumber *string `json:"phone_number"`
	RoleID      *uint   `json:"role_id"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Province    *string `json:"province"`
	PostalCode  *string `json:"postal_code"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// staffRow is a staff member joined with its role name.
type staffRow struct {
	models.Staff
	Position string
}

// staffWithRole selects staff rows with their role name as position.
func staffWithRole(db *gorm.DB) *gorm.DB {
	return db.Table("staff AS s").
		Select("s.*, r.role_name AS position").
		Joins("LEFT JOIN roles r ON r.role_id = s.role_id")
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	var rows []staffRow
	if err := staffWithRole(h.db.WithContext(c.Request.Context())).
		Order("s.last_name ASC").
		Order("s.first_name ASC").
		Find(&rows).Error; err != nil {
		writeError(c, h.log, err, "staff_list_failed")
		return
	}

	out := make([]dto.StaffView, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewStaffView(&rows[i].Staff, rows[i].Position))
	}
	httpresp.List(c, out)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var row staffRow
	if err := staffWithRole(h.db.WithContext(c.Request.Context())).Where("s.staff_id = ?", id).Take(&row).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "staff_not_found", "Staff member not found.")
			return
		}
		writeError(c, h.log, err, "staff_get_failed")
		return
	}

	httpresp.OK(c, dto.NewStaffView(&row.Staff, row.Position))
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email, code := h.emails.Normalize(req.Email)
	if code != "" {
		httperr.BadRequest(c, code, "Invalid email address.")
		return
	}

	if !h.roleExists(c, req.RoleID) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, h.log, err, "failed_to_hash_password")
		return
	}

	staff := models.Staff{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          email,
		Username:       strings.TrimSpace(req.Username),
		HashedPassword: string(hashed),
		PhoneNumber:    req.PhoneNumber,
		RoleID:         req.RoleID,
		Address:        req.Address,
		City:           req.City,
		Province:       req.Province,
		PostalCode:     req.PostalCode,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&staff).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "already_exists", "Email or username already in use.")
			return
		}
		writeError(c, h.log, err, "staff_create_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityStaff, staff.ID, audit.ActionCreate, audit.Change{New: staff})

	httpresp.Created(c, dto.NewStaffView(&staff, ""))
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staff, ok := h.load(c, id)
	if !ok {
		return
	}
	before := *staff

	if req.Email != nil {
		email, code := h.emails.Normalize(*req.Email)
		if code != "" {
			httperr.BadRequest(c, code, "Invalid email address.")
			return
		}
		staff.Email = email
	}
	if req.RoleID != nil {
		if !h.roleExists(c, *req.RoleID) {
			return
		}
		staff.RoleID = *req.RoleID
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			httperr.BadRequest(c, "invalid_password", "Password must have at least 6 characters.")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(c, h.log, err, "failed_to_hash_password")
			return
		}
		staff.HashedPassword = string(hashed)
	}
	setString(&staff.FirstName, req.FirstName)
	setString(&staff.LastName, req.LastName)
	setString(&staff.Username, req.Username)
	setString(&staff.PhoneNumber, req.PhoneNumber)
	setString(&staff.Address, req.Address)
	setString(&staff.City, req.City)
	setString(&staff.Province, req.Province)
	setString(&staff.PostalCode, req.PostalCode)

	if err := h.db.WithContext(c.Request.Context()).Save(staff).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "already_exists", "Email or username already in use.")
			return
		}
		writeError(c, h.log, err, "staff_update_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityStaff, staff.ID, audit.ActionUpdate, audit.Change{Old: before, New: *staff})

	httpresp.OK(c, dto.NewStaffView(staff, ""))
}

// Delete removes the staff member together with their appointments.
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	staff, ok := h.load(c, id)
	if !ok {
		return
	}

	var removed []models.Appointment
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", id).Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("staff_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Staff{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "staff_not_found", "Staff member not found.")
			return
		}
		writeError(c, h.log, err, "staff_delete_failed")
		return
	}

	for _, ap := range removed {
		writeAudit(c, h.audit, audit.EntityAppointment, ap.ID, audit.ActionDelete, audit.Change{Old: ap})
	}
	writeAudit(c, h.audit, audit.EntityStaff, id, audit.ActionDelete, audit.Change{Old: *staff})

	httpresp.Message(c, "Staff member deleted successfully")
}

func (h *StaffHandler) VerifyPassword(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Password is required.")
		return
	}

	staff, ok := h.load(c, id)
	if !ok {
		return
	}

	valid := bcrypt.CompareHashAndPassword([]byte(staff.HashedPassword), []byte(req.Password)) == nil
	httpresp.OK(c, gin.H{"valid": valid})
}

func (h *StaffHandler) load(c *gin.Context, id uint) (*models.Staff, bool) {
	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).First(&staff, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "staff_not_found", "Staff member not found.")
			return nil, false
		}
		writeError(c, h.log, err, "staff_load_failed")
		return nil, false
	}
	return &staff, true
}

func (h *StaffHandler) roleExists(c *gin.Context, roleID uint) bool {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Role{}).
		Where("role_id = ?", roleID).
		Count(&count).Error; err != nil {
		writeError(c, h.log, err, "role_lookup_failed")
		return false
	}
	if count == 0 {
		httperr.BadRequest(c, "role_not_found", "Role does not exist.")
		return false
	}
	return true
}
