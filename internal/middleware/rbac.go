package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-papers-api/internal/models"
	appErrors "github.com/noah-isme/lms-papers-api/pkg/errors"
	"github.com/noah-isme/lms-papers-api/pkg/response"
)

// RequireRoles gates a route on the closed role enumeration. Unknown roles
// never pass; there is no string comparison against request input.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		switch claims.Role {
		case models.RoleAdmin, models.RoleStudent:
			if _, ok := allowed[claims.Role]; ok {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
