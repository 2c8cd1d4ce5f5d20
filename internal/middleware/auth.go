package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/auth"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/session"
)

// AuthMiddleware validates the bearer token and attaches a session with
// the role's current permissions.
func AuthMiddleware(secret string, resolver *auth.PermissionResolver, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a bearer token.")
			return
		}

		claims, err := auth.ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Invalid or expired token.")
			return
		}
		staffID, _ := claims.StaffID()

		perms, err := resolver.Resolve(c.Request.Context(), claims.RoleID)
		if err != nil {
			log.WithError(err).WithField("role_id", claims.RoleID).Error("resolving permissions")
			httperr.Abort(c, http.StatusInternalServerError, "permissions_unavailable", "Could not load permissions.")
			return
		}

		session.Set(c, &session.Session{
			StaffID:     staffID,
			Username:    claims.Username,
			DisplayName: claims.Name,
			RoleID:      claims.RoleID,
			RoleName:    claims.RoleName,
			Permissions: perms,
		})

		c.Next()
	}
}

// RequirePermissions rejects the request unless the session holds every
// listed permission.
func RequirePermissions(perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.FromContext(c)
		if s == nil {
			httperr.Abort(c, http.StatusUnauthorized, "unauthenticated", "Authentication required.")
			return
		}
		for _, p := range perms {
			if !s.Has(p) {
				httperr.Abort(c, http.StatusForbidden, "forbidden", "Missing permission: "+p)
				return
			}
		}
		c.Next()
	}
}
