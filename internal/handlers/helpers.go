package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/middleware"
)

// parseID reads a positive numeric path parameter, writing 400 otherwise.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

// writeError maps business errors to their status and logs the rest.
func writeError(c *gin.Context, log *logrus.Logger, err error, fallbackCode string) {
	if code, ok := httperr.BusinessCode(err); ok {
		httperr.Write(c, httperr.StatusFor(code), code, code)
		return
	}
	log.WithError(err).WithFields(logrus.Fields{
		"path":       c.FullPath(),
		"request_id": c.GetString(middleware.RequestIDKey),
	}).Error(fallbackCode)
	httperr.Internal(c, fallbackCode, "Internal server error.")
}

func optionalUint(raw string) (*uint, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	id := uint(v)
	return &id, true
}
