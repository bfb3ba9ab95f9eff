package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beetlevault-backend/pkg/token"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// SetSessionCookie attaches the session cookie to the response:
// http-only, same-site-lax, root path, 7-day max-age. Secure is left off so
// local deployments behind plain HTTP keep working; TLS termination happens
// upstream in production.
func SetSessionCookie(c *gin.Context, sessionToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		sessionToken,
		int(token.SessionTTL.Seconds()),
		"/",
		"",
		false,
		true,
	)
}

// ClearSessionCookie expires the session cookie immediately
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// ReadSessionCookie returns the raw session token, or "" when absent
func ReadSessionCookie(c *gin.Context) string {
	value, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return value
}
