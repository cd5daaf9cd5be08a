package http

import (
	"net/http"
	"strings"

	"coursehub-backend/internal/domain"
	"coursehub-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware verifies the Bearer token and, when roles are given,
// requires the caller to hold one of them. The verified identity is stored
// as a domain.Caller so handlers pass it into usecases explicitly.
func AuthMiddleware(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid auth header format"})
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		caller := domain.Caller{
			ID:       claims.UserID,
			Role:     domain.Role(claims.Role),
			Approved: claims.Approved,
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if r == caller.Role {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden access"})
				return
			}
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireApproved rejects callers whose account is still pending review.
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := getCaller(c)
		if !caller.Approved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Your account is pending approval"})
			return
		}
		c.Next()
	}
}

func getCaller(c *gin.Context) domain.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(domain.Caller); ok {
			return caller
		}
	}
	return domain.Caller{}
}
