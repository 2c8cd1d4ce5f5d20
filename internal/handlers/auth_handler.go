package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/auth"
	"github.com/BruksfildServices01/salon-admin/internal/dto"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/httpresp"
)

type AuthHandler struct {
	db     *gorm.DB
	secret string
	log    *logrus.Logger
	now    func() time.Time
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{db: db, secret: jwtSecret, log: log, now: time.Now}
}

// --------- Requests ---------

// LoginRequest accepts either an email or a username as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Staff     dto.StaffView `json:"staff"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	identifier := strings.TrimSpace(req.Identifier)

	var row staffRow
	err := staffWithRole(h.db.WithContext(c.Request.Context())).
		Where("LOWER(s.email) = ? OR s.username = ?", strings.ToLower(identifier), identifier).
		Take(&row).Error
	if err != nil {
		if httperr.IsNotFound(err) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}
		writeError(c, h.log, err, "login_failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.HashedPassword), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	now := h.now()
	token, err := auth.IssueToken(h.secret, &row.Staff, row.Position, now)
	if err != nil {
		writeError(c, h.log, err, "failed_to_generate_token")
		return
	}

	h.log.WithFields(logrus.Fields{
		"staff_id": row.ID,
		"username": row.Username,
	}).Info("staff logged in")

	httpresp.OK(c, LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(auth.TokenTTL).UTC(),
		Staff:     dto.NewStaffView(&row.Staff, row.Position),
	})
}

