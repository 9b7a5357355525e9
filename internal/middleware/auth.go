package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/session"
)

const (
	// SessionCookie is the cookie carrying the session token.
	SessionCookie = "hearth_session"

	// HouseholdIDKey is the Gin context key holding the authenticated
	// household's ID.
	HouseholdIDKey = "householdID"
)

// Auth returns a Gin middleware that validates the session cookie and sets
// the household ID in the context. Requests without a valid session are
// rejected; no distinction is surfaced between absent, malformed and expired
// tokens.
func Auth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			unauthorized(c)
			return
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(HouseholdIDKey, claims.Subject)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrUnauthorized.Code,
			"message": apperrors.ErrUnauthorized.Message,
		},
	})
	c.Abort()
}
