package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"
)

// AuthzService is a local interface; anything with Enforce(role, resource,
// action) fits.
type AuthzService interface {
	Enforce(role, resource, action string) (bool, error)
}

// RequirePermission enforces the role -> resource -> action policy table.
// It assumes RequireAuth already ran; a missing role is treated as a missing
// session.
func RequirePermission(service AuthzService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(SessionKeyRole)
		if role == "" {
			response.Error(c, apperror.ErrUnauthorized.HTTPStatus, apperror.ErrUnauthorized.Code, apperror.ErrUnauthorized.Message, nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Permission check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, map[string]string{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
