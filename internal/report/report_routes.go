package report

import (
	"github.com/gin-gonic/gin"

	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authzService authz.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.RequireAuth())
	{
		reports.POST("", middleware.RequirePermission(authzService, authz.ResourceReport, authz.ActionCreate), handler.Create)
	}
}
