package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/dto"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/httpresp"
	"github.com/BruksfildServices01/salon-admin/internal/session"
)

type MeHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewMeHandler(db *gorm.DB, log *logrus.Logger) *MeHandler {
	return &MeHandler{db: db, log: log}
}

type MeResponse struct {
	Staff       dto.StaffView `json:"staff"`
	Permissions []string      `json:"permissions"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	sess := session.FromContext(c)
	if sess == nil {
		httperr.Unauthorized(c, "unauthorized", "Not authenticated.")
		return
	}

	var row staffRow
	if err := staffWithRole(h.db.WithContext(c.Request.Context())).
		Where("s.staff_id = ?", sess.StaffID).
		Take(&row).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "staff_not_found", "Staff member not found.")
			return
		}
		writeError(c, h.log, err, "me_failed")
		return
	}

	perms := sess.Permissions
	if perms == nil {
		perms = []string{}
	}

	httpresp.OK(c, MeResponse{
		Staff:       dto.NewStaffView(&row.Staff, row.Position),
		Permissions: perms,
	})
}
