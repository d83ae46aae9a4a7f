package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("0123456789abcdef"))))

	r.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionKeyUserID, c.Query("user_id"))
		session.Set(SessionKeyName, "Dina")
		session.Set(SessionKeyEmail, "dina@example.com")
		session.Set(SessionKeyRole, "employee")
		session.Set(SessionKeyDepartment, "Engineering")
		_ = session.Save()
		c.Status(http.StatusOK)
	})

	r.GET("/me", RequireAuth(), func(c *gin.Context) {
		p := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role, "department": p.Department})
	})

	return r
}

func TestRequireAuth(t *testing.T) {
	r := sessionRouter()
	userID := uuid.New().String()

	t.Run("no session is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session cookie resolves the principal", func(t *testing.T) {
		loginRec := httptest.NewRecorder()
		r.ServeHTTP(loginRec, httptest.NewRequest(http.MethodPost, "/login?user_id="+userID, nil))
		assert.Equal(t, http.StatusOK, loginRec.Code)

		cookies := loginRec.Result().Cookies()
		assert.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID)
		assert.Contains(t, w.Body.String(), "employee")
		assert.Contains(t, w.Body.String(), "Engineering")
	})
}
