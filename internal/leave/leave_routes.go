package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authzService authz.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.RequireAuth())
	{
		// Fixed paths before the :id wildcard.
		leaves.GET("/my-leaves", handler.MyLeaves)
		leaves.GET("/stats", handler.Stats)

		leaves.GET("", middleware.RequirePermission(authzService, authz.ResourceLeave, authz.ActionRead), handler.List)
		leaves.GET("/:id", middleware.RequirePermission(authzService, authz.ResourceLeave, authz.ActionRead), handler.GetByID)
		leaves.POST("", middleware.RequirePermission(authzService, authz.ResourceLeave, authz.ActionCreate), middleware.Idempotency(rdb), handler.Create)
		leaves.PUT("/:id", handler.Update)
		leaves.PATCH("/:id/approve", middleware.RequirePermission(authzService, authz.ResourceLeave, authz.ActionApprove), handler.Approve)
		leaves.DELETE("/:id", handler.Delete)
	}
}
