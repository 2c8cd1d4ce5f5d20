package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/archive"
	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/httpresp"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

// Archiver exports pending change records.
type Archiver interface {
	ExportPending(ctx context.Context) ([]archive.Result, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader   *audit.Reader
	archiver Archiver
	loc      *time.Location
	log      *logrus.Logger
}

// NewAuditLogsHandler builds the handler; archiver may be nil when no
// archive bucket is configured.
func NewAuditLogsHandler(reader *audit.Reader, archiver Archiver, loc *time.Location, log *logrus.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, archiver: archiver, loc: loc, log: log}
}

// List serves GET /api/logs.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q, ok := h.parseQuery(c, defaultLogLimit)
	if !ok {
		return
	}

	if et := c.Query("entity_type"); et != "" {
		if !audit.EntityType(et).Valid() {
			httperr.BadRequest(c, "invalid_entity_type", "Unknown entity type.")
			return
		}
		q.EntityType = et
	}
	if a := c.Query("action"); a != "" {
		if !audit.Action(a).Valid() {
			httperr.BadRequest(c, "invalid_action", "Unknown action.")
			return
		}
		q.Action = a
	}

	ctx := c.Request.Context()

	total, err := h.reader.CountChangeRecords(ctx, q)
	if err != nil {
		writeError(c, h.log, err, "audit_count_failed")
		return
	}

	logs, err := h.reader.ListChangeRecords(ctx, q)
	if err != nil {
		writeError(c, h.log, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, logs, total, q.Limit, q.Offset)
}

// History serves GET /api/history, the latest snapshot per appointment.
// Every snapshot is returned unless limit is given.
func (h *AuditLogsHandler) History(c *gin.Context) {
	q, ok := h.parseQuery(c, 0)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	total, err := h.reader.CountAppointmentSnapshots(ctx, q)
	if err != nil {
		writeError(c, h.log, err, "history_count_failed")
		return
	}

	rows, err := h.reader.ListAppointmentSnapshots(ctx, q)
	if err != nil {
		writeError(c, h.log, err, "history_list_failed")
		return
	}
	httpresp.Page(c, rows, total, q.Limit, q.Offset)
}

// Archive serves POST /api/logs/archive.
func (h *AuditLogsHandler) Archive(c *gin.Context) {
	if h.archiver == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "archive_disabled", "Change log archiving is not configured.")
		return
	}

	results, err := h.archiver.ExportPending(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "archive_failed")
		return
	}
	httpresp.List(c, results)
}

// parseQuery reads the filters shared by logs and history:
// entity_id, changed_by, from, to (YYYY-MM-DD, salon time), limit, offset.
// A zero defaultLimit means no limit unless one is asked for.
func (h *AuditLogsHandler) parseQuery(c *gin.Context, defaultLimit int) (audit.Query, bool) {
	var q audit.Query

	id, ok := optionalUint(c.Query("entity_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_entity_id", "Invalid entity_id.")
		return q, false
	}
	q.EntityID = id
	q.Actor = c.Query("changed_by")

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "from must be YYYY-MM-DD.")
			return q, false
		}
		q.Since = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "to must be YYYY-MM-DD.")
			return q, false
		}
		// inclusive day
		until := to.AddDate(0, 0, 1)
		q.Until = &until
	}

	q.Limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httperr.BadRequest(c, "invalid_limit", "limit must be a positive integer.")
			return q, false
		}
		q.Limit = min(n, maxLogLimit)
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_offset", "offset must not be negative.")
			return q, false
		}
		q.Offset = n
	}

	return q, true
}
