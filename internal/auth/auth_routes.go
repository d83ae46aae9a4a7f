package auth

import (
	"github.com/gin-gonic/gin"

	"leavedesk/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		auth.POST("/logout", middleware.RequireAuth(), handler.Logout)
		auth.GET("/me", middleware.RequireAuth(), middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
