package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/httpresp"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// PermissionInvalidator drops a role's cached permission set.
type PermissionInvalidator interface {
	Invalidate(ctx context.Context, roleID uint)
}

// RoleHandler serves roles, the permission catalogue and the grants between them.
type RoleHandler struct {
	db          *gorm.DB
	audit       audit.Sink
	permissions PermissionInvalidator
	log         *logrus.Logger
}

func NewRoleHandler(db *gorm.DB, sink audit.Sink, permissions PermissionInvalidator, log *logrus.Logger) *RoleHandler {
	return &RoleHandler{db: db, audit: sink, permissions: permissions, log: log}
}

type CreateRoleRequest struct {
	Name string `json:"role_name" binding:"required"`
}

type CreatePermissionRequest struct {
	Name        string `json:"permission_name" binding:"required"`
	Description string `json:"permission_description"`
}

// roleGrants is the audited shape of a role's permission set.
type roleGrants struct {
	RoleID      uint     `json:"role_id"`
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
}

// ======================================================
// ROLES
// ======================================================

func (h *RoleHandler) ListRoles(c *gin.Context) {
	var roles []models.Role
	if err := h.db.WithContext(c.Request.Context()).
		Order("role_name ASC").
		Find(&roles).Error; err != nil {
		writeError(c, h.log, err, "role_list_failed")
		return
	}
	httpresp.List(c, roles)
}

func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := models.Role{Name: strings.TrimSpace(req.Name)}
	if role.Name == "" {
		httperr.BadRequest(c, "invalid_role_name", "Role name is required.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&role).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "already_exists", "Role already exists.")
			return
		}
		writeError(c, h.log, err, "role_create_failed")
		return
	}

	writeAudit(c, h.audit, audit.EntityRole, role.ID, audit.ActionCreate, audit.Change{New: role})

	httpresp.Created(c, role)
}

func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	role, ok := h.loadRole(c, id)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var assigned int64
	if err := h.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("role_id = ?", id).
		Count(&assigned).Error; err != nil {
		writeError(c, h.log, err, "role_delete_failed")
		return
	}
	if assigned > 0 {
		httperr.Conflict(c, "role_in_use", "Role is assigned to staff members.")
		return
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, id).Error
	})
	if err != nil {
		writeError(c, h.log, err, "role_delete_failed")
		return
	}

	h.permissions.Invalidate(ctx, id)
	writeAudit(c, h.audit, audit.EntityRole, id, audit.ActionDelete, audit.Change{Old: *role})

	httpresp.Message(c, "Role deleted successfully")
}

// ======================================================
// ROLE PERMISSIONS
// ======================================================

func (h *RoleHandler) ListRolePermissions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.loadRole(c, id); !ok {
		return
	}

	var perms []models.Permission
	if err := h.rolePermissions(c.Request.Context(), id).Find(&perms).Error; err != nil {
		writeError(c, h.log, err, "role_permissions_failed")
		return
	}
	httpresp.List(c, perms)
}

func (h *RoleHandler) GrantPermission(c *gin.Context) {
	h.changeGrant(c, true)
}

func (h *RoleHandler) RevokePermission(c *gin.Context) {
	h.changeGrant(c, false)
}

func (h *RoleHandler) changeGrant(c *gin.Context, grant bool) {
	roleID, ok := parseID(c, "id")
	if !ok {
		return
	}
	permID, ok := parseID(c, "permission_id")
	if !ok {
		return
	}

	role, ok := h.loadRole(c, roleID)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var perm models.Permission
	if err := h.db.WithContext(ctx).First(&perm, permID).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "permission_not_found", "Permission not found.")
			return
		}
		writeError(c, h.log, err, "permission_load_failed")
		return
	}

	before, err := h.grantNames(ctx, roleID)
	if err != nil {
		writeError(c, h.log, err, "role_permissions_failed")
		return
	}

	link := models.RolePermission{RoleID: roleID, PermissionID: permID}
	var res *gorm.DB
	if grant {
		res = h.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	} else {
		res = h.db.WithContext(ctx).Where(&link).Delete(&models.RolePermission{})
	}
	if res.Error != nil {
		writeError(c, h.log, res.Error, "role_permissions_failed")
		return
	}
	if !grant && res.RowsAffected == 0 {
		httperr.NotFound(c, "grant_not_found", "Role does not have this permission.")
		return
	}

	after, err := h.grantNames(ctx, roleID)
	if err != nil {
		writeError(c, h.log, err, "role_permissions_failed")
		return
	}

	h.permissions.Invalidate(ctx, roleID)

	if res.RowsAffected > 0 {
		writeAudit(c, h.audit, audit.EntityRole, roleID, audit.ActionUpdate, audit.Change{
			Old: roleGrants{RoleID: roleID, RoleName: role.Name, Permissions: before},
			New: roleGrants{RoleID: roleID, RoleName: role.Name, Permissions: after},
		})
	}

	httpresp.OK(c, roleGrants{RoleID: roleID, RoleName: role.Name, Permissions: after})
}

// ======================================================
// PERMISSIONS
// ======================================================

func (h *RoleHandler) ListPermissions(c *gin.Context) {
	var perms []models.Permission
	if err := h.db.WithContext(c.Request.Context()).
		Order("permission_name ASC").
		Find(&perms).Error; err != nil {
		writeError(c, h.log, err, "permission_list_failed")
		return
	}
	httpresp.List(c, perms)
}

func (h *RoleHandler) CreatePermission(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	perm := models.Permission{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if perm.Name == "" {
		httperr.BadRequest(c, "invalid_permission_name", "Permission name is required.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&perm).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "already_exists", "Permission already exists.")
			return
		}
		writeError(c, h.log, err, "permission_create_failed")
		return
	}

	httpresp.Created(c, perm)
}

func (h *RoleHandler) DeletePermission(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var roleIDs []uint
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RolePermission{}).
			Where("permission_id = ?", id).
			Pluck("role_id", &roleIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("permission_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Permission{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "permission_not_found", "Permission not found.")
			return
		}
		writeError(c, h.log, err, "permission_delete_failed")
		return
	}

	for _, roleID := range roleIDs {
		h.permissions.Invalidate(ctx, roleID)
	}

	httpresp.Message(c, "Permission deleted successfully")
}

// ======================================================
// HELPERS
// ======================================================

func (h *RoleHandler) loadRole(c *gin.Context, id uint) (*models.Role, bool) {
	var role models.Role
	if err := h.db.WithContext(c.Request.Context()).First(&role, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "role_not_found", "Role not found.")
			return nil, false
		}
		writeError(c, h.log, err, "role_load_failed")
		return nil, false
	}
	return &role, true
}

func (h *RoleHandler) rolePermissions(ctx context.Context, roleID uint) *gorm.DB {
	return h.db.WithContext(ctx).
		Model(&models.Permission{}).
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.permission_id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.permission_name ASC")
}

func (h *RoleHandler) grantNames(ctx context.Context, roleID uint) ([]string, error) {
	names := []string{}
	err := h.rolePermissions(ctx, roleID).Pluck("permissions.permission_name", &names).Error
	return names, err
}
