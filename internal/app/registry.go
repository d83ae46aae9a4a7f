package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"leavedesk/internal/announcement"
	"leavedesk/internal/auth"
	"leavedesk/internal/authz"
	"leavedesk/internal/config"
	"leavedesk/internal/leave"
	"leavedesk/internal/report"
	"leavedesk/internal/shared/mailer"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Infrastructure ---
	authzService, err := authz.NewService(authz.DefaultPolicies)
	if err != nil {
		return err
	}
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	announcementRepo := announcement.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo, smtpMailer)
	leaveService := leave.NewService(db, leaveRepo)
	announcementService := announcement.NewService(db, announcementRepo)
	reportService := report.NewService(smtpMailer, cfg.SupportEmail)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandler(leaveService)
	announcementHandler := announcement.NewHandler(announcementService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leave.RegisterRoutes(api, leaveHandler, authzService, rdb)
		announcement.RegisterRoutes(api, announcementHandler, authzService)
		report.RegisterRoutes(api, reportHandler, authzService)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return nil
}
