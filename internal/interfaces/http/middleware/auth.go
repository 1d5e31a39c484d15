package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// CurrentUserKey is the context key for the authenticated identity
	CurrentUserKey = "currentUser"
)

// AuthMiddleware validates the bearer token and attaches the authenticated
// identity to the request context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(CurrentUserKey, entities.CurrentUser{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
		})

		c.Next()
	}
}

// GetCurrentUser gets the authenticated identity from context
func GetCurrentUser(c *gin.Context) (entities.CurrentUser, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return entities.CurrentUser{}, false
	}
	user, ok := value.(entities.CurrentUser)
	return user, ok
}
