package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/auth"
	"github.com/BruksfildServices01/salon-admin/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-admin/internal/db"
	infraRepo "github.com/BruksfildServices01/salon-admin/internal/infra/repository"
	"github.com/BruksfildServices01/salon-admin/internal/models"
	"github.com/BruksfildServices01/salon-admin/internal/testutil"
)

const adminPassword = "admin-pass"

type app struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := testutil.Logger()
	require.NoError(t, dbpkg.Seed(context.Background(), db, dbpkg.SeedAdmin{
		Email:    "admin@example.com",
		Username: "admin",
		Password: adminPassword,
	}, log))

	tracker := audit.NewTracker(
		audit.NewChangeLogger(db),
		audit.NewSnapshotRecorder(db, infraRepo.NewAppointmentGormRepository(db)),
		log,
	)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB: db,
		Config: &config.Config{
			JWTSecret:   "test-secret",
			Timezone:    "UTC",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Log:      log,
		Audit:    tracker,
		Reader:   audit.NewReader(db, log),
		Resolver: auth.NewPermissionResolver(db, nil, log),
	})

	return &app{t: t, db: db, router: r}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) login(identifier, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"identifier": identifier, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type logsPage struct {
	Data  []audit.ChangeRecord `json:"data"`
	Total int64                `json:"total"`
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"identifier": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"identifier": "ghost", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// email works as identifier too
	a.login("ADMIN@example.com", adminPassword)
}

func TestAppointmentAuditTrail(t *testing.T) {
	a := newApp(t)
	token := a.login("admin", adminPassword)

	w := a.do(http.MethodPost, "/api/clients", token, gin.H{
		"first_name": "Amy", "last_name": "Lee", "email": "amy@example.com", "phone_number": "555-0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	client := decode[models.Client](t, w)

	w = a.do(http.MethodPost, "/api/services", token, gin.H{
		"name": "Haircut", "duration_minutes": 30, "price": 50, "description": "Wash and cut", "category": "Hair",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	service := decode[models.Service](t, w)

	w = a.do(http.MethodPost, "/api/appointments", token, gin.H{
		"client_id": client.ID, "service_id": service.ID,
		"appointment_date": "2024-05-01", "start_time": "10:00", "end_time": "10:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		ID uint `json:"appointment_id"`
	}](t, w)

	var admin models.Staff
	require.NoError(t, a.db.Where("username = ?", "admin").First(&admin).Error)

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d", created.ID), token, gin.H{
		"status": "confirmed", "staff_id": admin.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[struct {
		Data []models.AppointmentHistory `json:"data"`
	}](t, w)
	require.Len(t, history.Data, 1)
	assert.Equal(t, created.ID, history.Data[0].AppointmentID)
	assert.Equal(t, "Amy Lee", history.Data[0].ClientName)
	assert.Equal(t, "Haircut", history.Data[0].ServiceName)
	assert.Equal(t, "confirmed", history.Data[0].Status)
	assert.Equal(t, "Salon Admin", history.Data[0].ChangedBy)

	w = a.do(http.MethodGet, "/api/logs?entity_type=appointment", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[logsPage](t, w)
	require.Equal(t, int64(2), logs.Total)
	require.Len(t, logs.Data, 2)

	update := logs.Data[0]
	assert.Equal(t, "update", update.Action)
	assert.Equal(t, "Salon Admin", update.ChangedBy)
	assert.Equal(t, "pending", update.Changes.Old.(map[string]any)["status"])
	assert.Equal(t, "confirmed", update.Changes.New.(map[string]any)["status"])

	assert.Equal(t, "create", logs.Data[1].Action)
	assert.Nil(t, logs.Data[1].Changes.Old)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/appointments/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/logs?entity_type=appointment&action=delete", token, nil)
	logs = decode[logsPage](t, w)
	require.Len(t, logs.Data, 1)
	assert.Nil(t, logs.Data[0].Changes.New)

	// the snapshot outlives the appointment
	w = a.do(http.MethodGet, "/api/history", token, nil)
	history = decode[struct {
		Data []models.AppointmentHistory `json:"data"`
	}](t, w)
	require.Len(t, history.Data, 1)
	assert.Equal(t, "confirmed", history.Data[0].Status)
}

func TestStaffPasswordIsNeverExposed(t *testing.T) {
	a := newApp(t)
	token := a.login("admin", adminPassword)

	var role models.Role
	require.NoError(t, a.db.Where("role_name = ?", dbpkg.StaffRole).First(&role).Error)

	w := a.do(http.MethodPost, "/api/staff", token, gin.H{
		"first_name": "Jane", "last_name": "Doe", "email": "jane@example.com",
		"username": "jane", "password": "plain-secret", "role_id": role.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "hashed_password")
	assert.NotContains(t, w.Body.String(), "plain-secret")
	staff := decode[struct {
		ID uint `json:"staff_id"`
	}](t, w)

	w = a.do(http.MethodGet, "/api/logs?entity_type=staff", token, nil)
	logs := decode[logsPage](t, w)
	require.Len(t, logs.Data, 1)
	newVal := logs.Data[0].Changes.New.(map[string]any)
	assert.Equal(t, audit.RedactionMarker, newVal["hashed_password"])
	assert.Equal(t, "jane", newVal["username"])

	path := fmt.Sprintf("/api/staff/%d/verify-password", staff.ID)
	w = a.do(http.MethodPost, path, token, gin.H{"password": "plain-secret"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true}`, w.Body.String())

	w = a.do(http.MethodPost, path, token, gin.H{"password": "wrong"})
	assert.JSONEq(t, `{"valid":false}`, w.Body.String())

	w = a.do(http.MethodPost, "/api/staff", token, gin.H{
		"first_name": "Jane", "last_name": "Twin", "email": "jane@example.com",
		"username": "jane2", "password": "plain-secret", "role_id": role.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStaffDeleteRemovesAppointments(t *testing.T) {
	a := newApp(t)
	token := a.login("admin", adminPassword)

	role := testutil.CreateRole(t, a.db, "Stylist")
	stylist := testutil.CreateStaff(t, a.db, "Bob", "Stone", role.ID, "hash")
	client := testutil.CreateClient(t, a.db, "Amy", "Lee")
	service := testutil.CreateService(t, a.db, "Haircut", 50)
	ap := testutil.CreateAppointment(t, a.db, client.ID, service.ID, "2024-05-01")
	require.NoError(t, a.db.Model(ap).Update("staff_id", stylist.ID).Error)

	w := a.do(http.MethodDelete, fmt.Sprintf("/api/staff/%d", stylist.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var remaining int64
	require.NoError(t, a.db.Model(&models.Appointment{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	w = a.do(http.MethodGet, "/api/logs?action=delete", token, nil)
	logs := decode[logsPage](t, w)
	require.Len(t, logs.Data, 2)

	entities := []string{logs.Data[0].EntityType, logs.Data[1].EntityType}
	assert.ElementsMatch(t, []string{"staff", "appointment"}, entities)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/staff/%d", stylist.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPermissionGrantTakesEffect(t *testing.T) {
	a := newApp(t)
	adminToken := a.login("admin", adminPassword)

	role := testutil.CreateRole(t, a.db, "Reception", auth.PermClientReadAll)
	hash, err := bcrypt.GenerateFromPassword([]byte("desk-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	testutil.CreateStaff(t, a.db, "Rita", "Desk", role.ID, string(hash))
	token := a.login("Rita", "desk-pass")

	w := a.do(http.MethodGet, "/api/clients", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/logs", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var perm models.Permission
	require.NoError(t, a.db.Where("permission_name = ?", auth.PermLogsReadAll).First(&perm).Error)

	grantPath := fmt.Sprintf("/api/roles/%d/permissions/%d", role.ID, perm.ID)
	w = a.do(http.MethodPost, grantPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/logs?entity_type=role", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[logsPage](t, w)
	require.Len(t, logs.Data, 1)
	assert.Equal(t, "update", logs.Data[0].Action)
	assert.Equal(t, []any{auth.PermClientReadAll}, logs.Data[0].Changes.Old.(map[string]any)["permissions"])
	assert.ElementsMatch(t,
		[]any{auth.PermClientReadAll, auth.PermLogsReadAll},
		logs.Data[0].Changes.New.(map[string]any)["permissions"],
	)

	w = a.do(http.MethodDelete, grantPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/logs", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/roles/%d", role.ID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestArchiveDisabled(t *testing.T) {
	a := newApp(t)
	token := a.login("admin", adminPassword)

	w := a.do(http.MethodPost, "/api/logs/archive", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMe(t *testing.T) {
	a := newApp(t)
	token := a.login("admin", adminPassword)

	w := a.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		Staff struct {
			Username string `json:"username"`
			Position string `json:"position"`
		} `json:"staff"`
		Permissions []string `json:"permissions"`
	}](t, w)
	assert.Equal(t, "admin", me.Staff.Username)
	assert.Equal(t, dbpkg.AdminRole, me.Staff.Position)
	assert.Len(t, me.Permissions, len(auth.AllPermissions))
}
