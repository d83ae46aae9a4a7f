package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"
)

// Session value keys. These are mirrored into the gin context by RequireAuth
// so handlers never touch the session directly.
const (
	SessionKeyUserID     = "user_id"
	SessionKeyName       = "name"
	SessionKeyEmail      = "email"
	SessionKeyRole       = "role"
	SessionKeyDepartment = "department"
)

// Principal is the authenticated caller as seen by handlers and services.
type Principal struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Department string
}

// RequireAuth resolves the caller from the session store. A missing or empty
// session surfaces as 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, _ := session.Get(SessionKeyUserID).(string)
		if userID == "" {
			response.Error(c, apperror.ErrUnauthorized.HTTPStatus, apperror.ErrUnauthorized.Code, apperror.ErrUnauthorized.Message, nil)
			c.Abort()
			return
		}

		name, _ := session.Get(SessionKeyName).(string)
		email, _ := session.Get(SessionKeyEmail).(string)
		role, _ := session.Get(SessionKeyRole).(string)
		department, _ := session.Get(SessionKeyDepartment).(string)

		c.Set(SessionKeyUserID, userID)
		c.Set(SessionKeyName, name)
		c.Set(SessionKeyEmail, email)
		c.Set(SessionKeyRole, role)
		c.Set(SessionKeyDepartment, department)

		c.Next()
	}
}

// CurrentPrincipal reads the caller previously stored by RequireAuth.
func CurrentPrincipal(c *gin.Context) Principal {
	return Principal{
		ID:         c.GetString(SessionKeyUserID),
		Name:       c.GetString(SessionKeyName),
		Email:      c.GetString(SessionKeyEmail),
		Role:       c.GetString(SessionKeyRole),
		Department: c.GetString(SessionKeyDepartment),
	}
}
