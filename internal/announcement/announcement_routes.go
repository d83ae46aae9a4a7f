package announcement

import (
	"github.com/gin-gonic/gin"

	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authzService authz.Service,
) {
	announcements := r.Group("/announcements")
	announcements.Use(middleware.RequireAuth())
	{
		announcements.GET("", middleware.RequirePermission(authzService, authz.ResourceAnnouncement, authz.ActionRead), handler.List)
		announcements.GET("/:id", middleware.RequirePermission(authzService, authz.ResourceAnnouncement, authz.ActionRead), handler.GetByID)
		announcements.POST("", middleware.RequirePermission(authzService, authz.ResourceAnnouncement, authz.ActionCreate), handler.Create)
		announcements.PUT("/:id", middleware.RequirePermission(authzService, authz.ResourceAnnouncement, authz.ActionUpdate), handler.Update)
		announcements.DELETE("/:id", middleware.RequirePermission(authzService, authz.ResourceAnnouncement, authz.ActionDelete), handler.Delete)
	}
}
