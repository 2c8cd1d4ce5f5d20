package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-admin/internal/auth"
	"github.com/BruksfildServices01/salon-admin/internal/models"
	"github.com/BruksfildServices01/salon-admin/internal/testutil"
)

func TestSeedIsIdempotent(t *testing.T) {
	gdb := testutil.NewDB(t)
	log := testutil.Logger()
	admin := SeedAdmin{Email: "admin@example.com", Username: "admin", Password: "s3cret!"}

	require.NoError(t, Seed(context.Background(), gdb, admin, log))
	require.NoError(t, Seed(context.Background(), gdb, admin, log))

	var perms int64
	require.NoError(t, gdb.Model(&models.Permission{}).Count(&perms).Error)
	assert.Equal(t, int64(len(auth.AllPermissions)), perms)

	var roles []models.Role
	require.NoError(t, gdb.Order("role_name").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, AdminRole, roles[0].Name)
	assert.Equal(t, StaffRole, roles[1].Name)

	resolver := auth.NewPermissionResolver(gdb, nil, log)
	adminPerms, err := resolver.Resolve(context.Background(), roles[0].ID)
	require.NoError(t, err)
	assert.Len(t, adminPerms, len(auth.AllPermissions))

	staffPerms, err := resolver.Resolve(context.Background(), roles[1].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, staffDefaults, staffPerms)

	var staff []models.Staff
	require.NoError(t, gdb.Find(&staff).Error)
	require.Len(t, staff, 1)
	assert.Equal(t, roles[0].ID, staff[0].RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(staff[0].HashedPassword), []byte("s3cret!")))
}

func TestSeedWithoutPasswordSkipsAdmin(t *testing.T) {
	gdb := testutil.NewDB(t)

	require.NoError(t, Seed(context.Background(), gdb, SeedAdmin{Username: "admin"}, testutil.Logger()))

	var count int64
	require.NoError(t, gdb.Model(&models.Staff{}).Count(&count).Error)
	assert.Zero(t, count)
}
