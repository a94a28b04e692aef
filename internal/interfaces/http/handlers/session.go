// internal/interfaces/http/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "checkout_session"

// getOrCreateSessionID reads the session cookie, minting a new one on
// first contact. The same session ties together the cart, coupon and
// checkout wizard.
func getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(sessionCookieName)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Session cookie, 24 hours, HTTP only
		c.SetCookie(sessionCookieName, sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
