// Package session carries the authenticated staff identity through a request.
package session

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
)

const ContextKey = "session"

type Session struct {
	StaffID     uint
	Username    string
	DisplayName string
	RoleID      uint
	RoleName    string
	Permissions []string
}

// Actor is the name recorded in audit entries.
func (s *Session) Actor() string {
	if s == nil {
		return audit.UnknownActor
	}
	return audit.ResolveActor(s.DisplayName)
}

func (s *Session) Has(permission string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func Set(c *gin.Context, s *Session) {
	c.Set(ContextKey, s)
}

// FromContext returns the session stored by the auth middleware, or nil.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
