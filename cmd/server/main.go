package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-insights-api/internal/app"
	"github.com/yukikurage/team-insights-api/internal/config"
	"github.com/yukikurage/team-insights-api/internal/constants"
	"github.com/yukikurage/team-insights-api/internal/handlers"
	"github.com/yukikurage/team-insights-api/internal/logger"
	"github.com/yukikurage/team-insights-api/internal/middleware"
	"github.com/yukikurage/team-insights-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New("team-insights-api", cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to the Entity Store and prepare its schema
	store, closeStore, err := app.OpenStore(context.Background(), cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer closeStore()

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zlog))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		// authentication key
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		zlog.Fatal("failed to create redis session store", zap.String("addr", redisAddr), zap.Error(err))
	}
	isProduction := cfg.GinMode == gin.ReleaseMode
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, sessionStore))

	// Initialize services
	clock := services.NewClock(nil, cfg.Location())
	teamService := services.NewTeamService(store.Teams, zlog)
	statsService := services.NewTeamStatsService(store, clock, zlog)
	repairer := services.NewConsistencyRepairer(store, zlog)

	// Initialize handlers
	teamHandler := handlers.NewTeamHandler(teamService, zlog)
	statsHandler := handlers.NewStatsHandler(statsService, zlog)
	maintenanceHandler := handlers.NewMaintenanceHandler(repairer, zlog)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Team Insights API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		teams := api.Group("/teams")
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.GET("/:id/progress", statsHandler.Progress)
			teams.GET("/:id/stats/overview", statsHandler.Overview)
			teams.GET("/:id/stats/members", statsHandler.Members)
			teams.GET("/:id/stats/top-projects", statsHandler.TopProjects)
			teams.GET("/:id/stats/income", statsHandler.Income)
		}

		maintenance := api.Group("/maintenance")
		{
			maintenance.POST("/repair-relationships", maintenanceHandler.RepairRelationships)
		}
	}

	// Start server
	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("stats_timezone", clock.Now().Location().String()))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
