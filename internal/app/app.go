package app

import (
	"github.com/gin-contrib/sessions"
	redisstore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"leavedesk/internal/announcement"
	"leavedesk/internal/auth"
	"leavedesk/internal/config"
	"leavedesk/internal/leave"
	"leavedesk/internal/middleware"
	"leavedesk/internal/shared/connection"
)

const connectRetries = 5

// BuildApp wires infrastructure and registers every module's routes on the
// router. It returns only after the database and redis are reachable.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, connectRetries)
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(&auth.User{}, &leave.Leave{}, &announcement.Announcement{}); err != nil {
		return err
	}
	zap.L().Info("database migrated")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}

	store, err := redisstore.NewStore(10, "tcp", cfg.RedisAddr, "", "", []byte(cfg.SessionSecret))
	if err != nil {
		return err
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: 2, // Lax
	})
	router.Use(sessions.Sessions("leavedesk_session", store))
	router.Use(middleware.RequestID())

	return registerModules(router, gormDB, redisClient, cfg)
}
