package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/causewayapp/causeway/config"
	"github.com/causewayapp/causeway/controllers"
	"github.com/causewayapp/causeway/middleware"
	"github.com/causewayapp/causeway/services"
	"github.com/causewayapp/causeway/store"
	"github.com/causewayapp/causeway/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, tasks *services.TaskQueue) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Record daily activity after each request
	r.Use(middleware.ActivityRecorder(db))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	// The store is the authoritative backend; the commitment service
	// orchestrates the swipe workflow on top of it.
	st := store.NewStore(db)
	commits := services.NewCommitmentService(st, tasks)

	authController := controllers.NewAuthController()
	thresholdController := controllers.NewThresholdController(db, st)
	commitmentController := controllers.NewCommitmentController(st, commits)
	energyController := controllers.NewEnergyController(st)
	profileController := controllers.NewProfileController(st)
	badgeController := controllers.NewBadgeController(st)
	leaderboardController := controllers.NewLeaderboardController(st)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	// Public read projections
	api.GET("/leaderboard", leaderboardController.GetLeaderboard)
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.POST("/auth/logout", authController.Logout)

	protected.GET("/thresholds", thresholdController.ListThresholds)
	protected.GET("/profiles/me", profileController.Me)
	protected.GET("/energy", energyController.GetEnergy)
	protected.GET("/badges", badgeController.ListBadges)
	protected.GET("/commitments", commitmentController.ListCommitments)

	// Mutations get the rate limiter on top of auth
	mutations := protected.Group("")
	mutations.Use(middleware.RateLimitMiddleware())
	mutations.POST("/commitments", commitmentController.CreateCommitment)
	mutations.POST("/thresholds", thresholdController.CreateThreshold)
	mutations.PATCH("/thresholds/:id", thresholdController.SetThresholdActive)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
