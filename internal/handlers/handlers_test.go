package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/archive"
	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/models"
	"github.com/BruksfildServices01/salon-admin/internal/session"
	"github.com/BruksfildServices01/salon-admin/internal/testutil"
	"github.com/BruksfildServices01/salon-admin/internal/validators"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Track(_ context.Context, ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

type invalidations struct {
	roles []uint
}

func (i *invalidations) Invalidate(_ context.Context, roleID uint) {
	i.roles = append(i.roles, roleID)
}

type fakeArchiver struct {
	results []archive.Result
	err     error
}

func (f *fakeArchiver) ExportPending(context.Context) ([]archive.Result, error) {
	return f.results, f.err
}

// newRouter wires a router whose requests carry a fixed session.
func newRouter(sess *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if sess != nil {
			session.Set(c, sess)
		}
		c.Next()
	})
	return r
}

func serve(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Code
}

func setupClients(t *testing.T, db *gorm.DB, sink audit.Sink, sess *session.Session) *gin.Engine {
	h := NewClientHandler(db, sink, validators.EmailChecker{}, testutil.Logger())
	r := newRouter(sess)
	r.POST("/clients", h.Create)
	r.PUT("/clients/:id", h.Update)
	r.DELETE("/clients/:id", h.Delete)
	return r
}

func TestClientMutationsAreTracked(t *testing.T) {
	db := testutil.NewDB(t)
	sink := &recordingSink{}
	r := setupClients(t, db, sink, &session.Session{DisplayName: "Jane Doe"})

	w := serve(r, http.MethodPost, "/clients", gin.H{
		"first_name": "Amy", "last_name": "Lee", "email": " Amy@Example.com ", "phone_number": "555",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(r, http.MethodPut, "/clients/1", gin.H{"city": "Toronto"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(r, http.MethodDelete, "/clients/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, sink.events, 3)
	assert.Equal(t, audit.ActionCreate, sink.events[0].Action)
	assert.Equal(t, audit.ActionUpdate, sink.events[1].Action)
	assert.Equal(t, audit.ActionDelete, sink.events[2].Action)
	for _, ev := range sink.events {
		assert.Equal(t, audit.EntityClient, ev.EntityType)
		assert.Equal(t, uint(1), ev.EntityID)
		assert.Equal(t, "Jane Doe", ev.Actor)
	}
	assert.Nil(t, sink.events[0].Change.Old)
	assert.Nil(t, sink.events[2].Change.New)
}

func TestClientWithoutSessionIsUnknown(t *testing.T) {
	db := testutil.NewDB(t)
	sink := &recordingSink{}
	r := setupClients(t, db, sink, nil)

	w := serve(r, http.MethodPost, "/clients", gin.H{
		"first_name": "Amy", "last_name": "Lee", "email": "amy@example.com", "phone_number": "555",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, sink.events, 1)
	assert.Equal(t, audit.UnknownActor, sink.events[0].Actor)
}

func TestClientValidationAndConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	sink := &recordingSink{}
	r := setupClients(t, db, sink, nil)

	w := serve(r, http.MethodPost, "/clients", gin.H{"first_name": "Amy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/clients", gin.H{
		"first_name": "Amy", "last_name": "Lee", "email": "not-an-email", "phone_number": "555",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email", errorCode(t, w))

	client := testutil.CreateClient(t, db, "Amy", "Lee")
	service := testutil.CreateService(t, db, "Haircut", 50)
	testutil.CreateAppointment(t, db, client.ID, service.ID, "2024-05-01")

	w = serve(r, http.MethodDelete, fmt.Sprintf("/clients/%d", client.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "client_has_appointments", errorCode(t, w))

	w = serve(r, http.MethodDelete, "/clients/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodDelete, "/clients/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, sink.events)
}

func TestServiceDeleteInUse(t *testing.T) {
	db := testutil.NewDB(t)
	sink := &recordingSink{}
	h := NewServiceHandler(db, sink, testutil.Logger())
	r := newRouter(nil)
	r.POST("/services", h.Create)
	r.DELETE("/services/:id", h.Delete)

	w := serve(r, http.MethodPost, "/services", gin.H{
		"name": "Color", "duration_minutes": 0, "price": 80, "description": "d", "category": "Hair",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	client := testutil.CreateClient(t, db, "Amy", "Lee")
	service := testutil.CreateService(t, db, "Haircut", 50)
	testutil.CreateAppointment(t, db, client.ID, service.ID, "2024-05-01")

	w = serve(r, http.MethodDelete, fmt.Sprintf("/services/%d", service.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "service_in_use", errorCode(t, w))
	assert.Empty(t, sink.events)
}

func TestRoleGrantInvalidatesCache(t *testing.T) {
	db := testutil.NewDB(t)
	sink := &recordingSink{}
	inv := &invalidations{}
	h := NewRoleHandler(db, sink, inv, testutil.Logger())
	r := newRouter(&session.Session{DisplayName: "Jane Doe"})
	r.POST("/roles", h.CreateRole)
	r.POST("/permissions", h.CreatePermission)
	r.POST("/roles/:id/permissions/:permission_id", h.GrantPermission)
	r.DELETE("/roles/:id/permissions/:permission_id", h.RevokePermission)
	r.GET("/roles/:id/permissions", h.ListRolePermissions)

	require.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/roles", gin.H{"role_name": "Reception"}).Code)
	w := serve(r, http.MethodPost, "/roles", gin.H{"role_name": "Reception"})
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/permissions", gin.H{"permission_name": "client_read_all"}).Code)

	w = serve(r, http.MethodPost, "/roles/1/permissions/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"role_id":1,"role_name":"Reception","permissions":["client_read_all"]}`, w.Body.String())

	// granting twice changes nothing and logs nothing
	w = serve(r, http.MethodPost, "/roles/1/permissions/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodDelete, "/roles/1/permissions/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodDelete, "/roles/1/permissions/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodPost, "/roles/1/permissions/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "permission_not_found", errorCode(t, w))

	require.Len(t, sink.events, 3)
	assert.Equal(t, audit.ActionCreate, sink.events[0].Action)

	grant := sink.events[1]
	assert.Equal(t, audit.EntityRole, grant.EntityType)
	assert.Equal(t, audit.ActionUpdate, grant.Action)
	assert.Equal(t, []string{}, grant.Change.Old.(roleGrants).Permissions)
	assert.Equal(t, []string{"client_read_all"}, grant.Change.New.(roleGrants).Permissions)

	revoke := sink.events[2]
	assert.Equal(t, []string{"client_read_all"}, revoke.Change.Old.(roleGrants).Permissions)
	assert.Equal(t, []string{}, revoke.Change.New.(roleGrants).Permissions)

	assert.Equal(t, []uint{1, 1, 1}, inv.roles)
}

func TestLogsQueryValidation(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewAuditLogsHandler(audit.NewReader(db, testutil.Logger()), nil, time.UTC, testutil.Logger())
	r := newRouter(nil)
	r.GET("/logs", h.List)
	r.POST("/logs/archive", h.Archive)

	cases := map[string]string{
		"/logs?entity_type=invoice": "invalid_entity_type",
		"/logs?action=upsert":       "invalid_action",
		"/logs?entity_id=x":         "invalid_entity_id",
		"/logs?from=01-05-2024":     "invalid_from",
		"/logs?limit=0":             "invalid_limit",
		"/logs?offset=-1":           "invalid_offset",
	}
	for path, code := range cases {
		w := serve(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, code, errorCode(t, w), path)
	}

	w := serve(r, http.MethodGet, "/logs?limit=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0,"limit":200,"offset":0}`, w.Body.String())

	w = serve(r, http.MethodPost, "/logs/archive", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHistoryReturnsEverySnapshot(t *testing.T) {
	db := testutil.NewDB(t)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := make([]models.AppointmentHistory, 0, 60)
	for i := 1; i <= 60; i++ {
		rows = append(rows, models.AppointmentHistory{
			AppointmentID: uint(i),
			ClientName:    fmt.Sprintf("Client %d", i),
			Status:        "pending",
			ChangedBy:     "admin",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
	}
	require.NoError(t, db.Create(&rows).Error)

	h := NewAuditLogsHandler(audit.NewReader(db, testutil.Logger()), nil, time.UTC, testutil.Logger())
	r := newRouter(nil)
	r.GET("/history", h.History)

	type page struct {
		Data  []models.AppointmentHistory `json:"data"`
		Total int64                       `json:"total"`
		Limit int                         `json:"limit"`
	}

	w := serve(r, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all.Data, 60)
	assert.EqualValues(t, 60, all.Total)
	assert.Equal(t, 0, all.Limit)
	assert.Equal(t, uint(60), all.Data[0].AppointmentID)

	w = serve(r, http.MethodGet, "/history?limit=10&offset=50", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tail page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tail))
	assert.Len(t, tail.Data, 10)
	assert.EqualValues(t, 60, tail.Total)
	assert.Equal(t, uint(10), tail.Data[0].AppointmentID)

	w = serve(r, http.MethodGet, "/history?entity_id=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var one page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &one))
	require.Len(t, one.Data, 1)
	assert.EqualValues(t, 1, one.Total)
}

func TestArchiveEndpoint(t *testing.T) {
	db := testutil.NewDB(t)
	arch := &fakeArchiver{results: []archive.Result{{Key: "salon/changelogs/1-2-x.ndjson", FromID: 1, ToID: 2, Count: 2}}}
	h := NewAuditLogsHandler(audit.NewReader(db, testutil.Logger()), arch, time.UTC, testutil.Logger())
	r := newRouter(nil)
	r.POST("/logs/archive", h.Archive)

	w := serve(r, http.MethodPost, "/logs/archive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"data":[{"key":"salon/changelogs/1-2-x.ndjson","from_id":1,"to_id":2,"count":2}],"total":1}`,
		w.Body.String(),
	)
}
