package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

const (
	ContextUser     = "user"
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			return
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), tokenParts[1])
		if err != nil {
			if appErr, ok := services.AsAppError(err); ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
					Success: false,
					Message: appErr.Message,
				})
				return
			}
			log.WithError(err).Error("authentication lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Internal server error",
			})
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

// RequireRole runs after AuthMiddleware and rejects users without the role
// before the handler reads the request body.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "User role not found",
			})
			return
		}

		if userRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: fmt.Sprintf("Access denied. Only %s users may perform this action", role),
			})
			return
		}

		c.Next()
	}
}

func ManagerOnly() gin.HandlerFunc {
	return RequireRole(models.RoleManager)
}
