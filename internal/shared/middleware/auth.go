package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"beetlevault-backend/internal/domains/user"
	"beetlevault-backend/internal/shared/response"
	"beetlevault-backend/pkg/token"
)

const (
	ctxUserIDKey      = "userID"
	ctxCurrentUserKey = "currentUser"
)

// SessionAuth resolves the session cookie to a user identity.
//
// Missing cookie, bad signature, expired token and deleted user all end the
// same way: 401 UNAUTHORIZED, no detail about which check failed.
func SessionAuth(tm *token.Manager, users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ReadSessionCookie(c)
		if raw == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		userIDStr, err := tm.VerifySession(raw)
		if err != nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		u, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			// A valid token for a deleted user degrades to unauthenticated
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, u.ID)
		c.Set(ctxCurrentUserKey, u.ToPublic())

		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id. Only valid behind
// SessionAuth.
func CurrentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.MustGet(ctxUserIDKey).(uuid.UUID)
	return id
}

// CurrentUser returns the authenticated caller's public projection. Only
// valid behind SessionAuth.
func CurrentUser(c *gin.Context) user.PublicUser {
	u, _ := c.MustGet(ctxCurrentUserKey).(user.PublicUser)
	return u
}
