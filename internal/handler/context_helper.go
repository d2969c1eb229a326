package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/middleware"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

func sessionFromContext(c *gin.Context) string {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return ""
	}
	sessionID, ok := value.(string)
	if !ok {
		return ""
	}
	return sessionID
}

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
