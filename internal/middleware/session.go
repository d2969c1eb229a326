package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// SessionHeader carries the anonymous applicant session identifier.
const SessionHeader = "X-Session-ID"

// ContextSessionKey is the gin context key storing the applicant session id.
const ContextSessionKey = "applicantSession"

// ApplicantSession requires the applicant session header on wizard routes.
func ApplicantSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			response.Error(c, appErrors.ErrSessionRequired)
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, sessionID)
		c.Next()
	}
}
