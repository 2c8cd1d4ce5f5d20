// Package testutil builds in-memory databases and fixtures for tests.
package testutil

import (
	"io"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// NewDB opens a private in-memory SQLite database with every model migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// Logger returns a logger that discards everything below error.
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func Date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func CreateClient(t testing.TB, db *gorm.DB, first, last string) *models.Client {
	t.Helper()
	c := &models.Client{
		FirstName:   first,
		LastName:    last,
		Email:       first + "@example.com",
		PhoneNumber: "555-0100",
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateService(t testing.TB, db *gorm.DB, name string, price float64) *models.Service {
	t.Helper()
	s := &models.Service{
		Name:            name,
		DurationMinutes: 30,
		Price:           price,
		Description:     name + " service",
		Category:        "Hair",
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func CreateRole(t testing.TB, db *gorm.DB, name string, permissions ...string) *models.Role {
	t.Helper()
	role := &models.Role{Name: name}
	require.NoError(t, db.Create(role).Error)

	for _, p := range permissions {
		perm := models.Permission{Name: p}
		require.NoError(t, db.Where(models.Permission{Name: p}).FirstOrCreate(&perm).Error)
		require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)
	}
	return role
}

func CreateStaff(t testing.TB, db *gorm.DB, first, last string, roleID uint, hashedPassword string) *models.Staff {
	t.Helper()
	s := &models.Staff{
		FirstName:      first,
		LastName:       last,
		Email:          first + "." + last + "@example.com",
		Username:       first,
		HashedPassword: hashedPassword,
		RoleID:         roleID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func CreateAppointment(t testing.TB, db *gorm.DB, clientID, serviceID uint, date string) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		ClientID:        clientID,
		ServiceID:       serviceID,
		AppointmentDate: Date(date),
		StartTime:       "10:00",
		EndTime:         "10:30",
		Status:          "pending",
	}
	require.NoError(t, db.Create(ap).Error)
	return ap
}
