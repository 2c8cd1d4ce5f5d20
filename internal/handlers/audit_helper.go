package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/session"
)

// actor is the display name of the authenticated staff member.
func actor(c *gin.Context) string {
	return session.FromContext(c).Actor()
}

func writeAudit(
	c *gin.Context,
	sink audit.Sink,
	entity audit.EntityType,
	entityID uint,
	action audit.Action,
	change audit.Change,
) {
	sink.Track(c.Request.Context(), audit.Event{
		EntityType: entity,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor(c),
		Change:     change,
	})
}
