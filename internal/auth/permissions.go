package auth

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/metrics"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// PermissionCache stores resolved permission names per role.
type PermissionCache interface {
	Get(ctx context.Context, roleID uint) ([]string, bool, error)
	Set(ctx context.Context, roleID uint, permissions []string) error
	Invalidate(ctx context.Context, roleID uint) error
}

// PermissionResolver loads a role's permissions from the database,
// going through the cache when one is configured.
type PermissionResolver struct {
	db    *gorm.DB
	cache PermissionCache
	log   *logrus.Logger
}

func NewPermissionResolver(db *gorm.DB, cache PermissionCache, log *logrus.Logger) *PermissionResolver {
	return &PermissionResolver{db: db, cache: cache, log: log}
}

func (r *PermissionResolver) Resolve(ctx context.Context, roleID uint) ([]string, error) {
	if r.cache != nil {
		perms, ok, err := r.cache.Get(ctx, roleID)
		switch {
		case err != nil:
			metrics.PermissionCacheLookups.WithLabelValues("error").Inc()
			r.log.WithError(err).WithField("role_id", roleID).Warn("permission cache read failed")
		case ok:
			metrics.PermissionCacheLookups.WithLabelValues("hit").Inc()
			return perms, nil
		default:
			metrics.PermissionCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	perms, err := r.load(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, roleID, perms); err != nil {
			r.log.WithError(err).WithField("role_id", roleID).Warn("permission cache write failed")
		}
	}
	return perms, nil
}

// Invalidate drops the cached entry after a grant or revoke.
func (r *PermissionResolver) Invalidate(ctx context.Context, roleID uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, roleID); err != nil {
		r.log.WithError(err).WithField("role_id", roleID).Warn("permission cache invalidate failed")
	}
}

func (r *PermissionResolver) load(ctx context.Context, roleID uint) ([]string, error) {
	perms := []string{}
	if err := r.db.WithContext(ctx).
		Model(&models.Permission{}).
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.permission_id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.permission_name ASC").
		Pluck("permissions.permission_name", &perms).Error; err != nil {
		return nil, fmt.Errorf("load permissions for role %d: %w", roleID, err)
	}
	return perms, nil
}
