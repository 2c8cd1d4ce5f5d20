package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-admin/internal/auth"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

const (
	AdminRole = "Admin"
	StaffRole = "Staff"
)

// staffDefaults are the permissions granted to the Staff role on first seed.
var staffDefaults = []string{
	auth.PermAppointmentCreate,
	auth.PermAppointmentReadAll,
	auth.PermAppointmentReadSingle,
	auth.PermAppointmentConfirmDeny,
	auth.PermClientReadAll,
	auth.PermClientReadSingle,
	auth.PermServiceReadAll,
	auth.PermServiceReadSingle,
}

type SeedAdmin struct {
	Email    string
	Username string
	Password string
}

// Seed inserts the permission catalogue and the default roles. The admin
// account is only created when a password is given and the username is free.
// Running it again is a no-op.
func Seed(ctx context.Context, db *gorm.DB, admin SeedAdmin, log *logrus.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range auth.AllPermissions {
			p := models.Permission{Name: name}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "permission_name"}},
				DoNothing: true,
			}).Create(&p).Error; err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
		}

		adminRole, created, err := ensureRole(tx, AdminRole)
		if err != nil {
			return err
		}
		if err := grantAll(tx, adminRole.ID, auth.AllPermissions); err != nil {
			return err
		}
		if created {
			log.WithField("role", AdminRole).Info("role seeded")
		}

		staffRole, created, err := ensureRole(tx, StaffRole)
		if err != nil {
			return err
		}
		if created {
			if err := grantAll(tx, staffRole.ID, staffDefaults); err != nil {
				return err
			}
			log.WithField("role", StaffRole).Info("role seeded")
		}

		if admin.Password == "" {
			return nil
		}
		return ensureAdmin(tx, adminRole.ID, admin, log)
	})
}

func ensureRole(tx *gorm.DB, name string) (models.Role, bool, error) {
	var role models.Role
	err := tx.Where("role_name = ?", name).First(&role).Error
	if err == nil {
		return role, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return role, false, fmt.Errorf("load role %s: %w", name, err)
	}
	role = models.Role{Name: name}
	if err := tx.Create(&role).Error; err != nil {
		return role, false, fmt.Errorf("create role %s: %w", name, err)
	}
	return role, true, nil
}

func grantAll(tx *gorm.DB, roleID uint, names []string) error {
	var ids []uint
	if err := tx.Model(&models.Permission{}).
		Where("permission_name IN ?", names).
		Pluck("permission_id", &ids).Error; err != nil {
		return fmt.Errorf("load permission ids: %w", err)
	}
	for _, id := range ids {
		link := models.RolePermission{RoleID: roleID, PermissionID: id}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return fmt.Errorf("grant permission %d to role %d: %w", id, roleID, err)
		}
	}
	return nil
}

func ensureAdmin(tx *gorm.DB, roleID uint, admin SeedAdmin, log *logrus.Logger) error {
	var count int64
	if err := tx.Model(&models.Staff{}).
		Where("username = ? OR email = ?", admin.Username, admin.Email).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	staff := models.Staff{
		FirstName:      "Salon",
		LastName:       "Admin",
		Email:          admin.Email,
		Username:       admin.Username,
		HashedPassword: string(hashed),
		RoleID:         roleID,
	}
	if err := tx.Create(&staff).Error; err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	log.WithField("username", staff.Username).Info("admin account seeded")
	return nil
}
