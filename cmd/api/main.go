package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/samuelmonteirotf/habitus-app/docs" // swagger docs
	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
	"github.com/samuelmonteirotf/habitus-app/internal/api/routes"
	"github.com/samuelmonteirotf/habitus-app/internal/calendar"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/habits"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/routines"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/tasks"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/user"
	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/cache"
	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/persistence/postgres/connection"
	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/persistence/postgres/migrations"
	"github.com/samuelmonteirotf/habitus-app/pkg/config"
	"github.com/samuelmonteirotf/habitus-app/pkg/logger"
	"github.com/samuelmonteirotf/habitus-app/pkg/security/auth"
)

// @title           Hábitus API
// @version         1.0
// @description     Personal productivity API for habits, routines and tasks with Google Calendar sync.

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))

	metricsMiddleware := middleware.NewMetricsMiddleware()
	router.Use(metricsMiddleware.CollectMetrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "habitus", 5*time.Minute)

	blacklist := auth.NewTokenBlacklist()
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, blacklist)

	stateStore := auth.NewOAuthStateStore()
	oauthService := auth.NewOAuthService(cfg, stateStore)
	defer oauthService.Close()

	eventBuilder, err := calendar.NewEventBuilder(cfg.Calendar.Timezone, cfg.Calendar.HabitTime)
	if err != nil {
		log.Fatal("Failed to load calendar timezone", zap.Error(err))
	}
	calendarClient := calendar.NewClient(cfg.Calendar.BaseURL, cfg.Calendar.RequestTimeout)

	userRepo := user.NewRepository(db)
	habitsRepo := habits.NewRepository(db)
	routinesRepo := routines.NewRepository(db)
	tasksRepo := tasks.NewRepository(db)

	userService := user.NewService(userRepo)
	calendarService := calendar.NewService(calendarClient, eventBuilder, userService)

	habitsService := habits.NewService(habitsRepo, calendarService, log.Logger, eventBuilder.Location())
	routinesService := routines.NewService(routinesRepo, calendarService, log.Logger)
	tasksService := tasks.NewService(tasksRepo, calendarService, log.Logger)

	userHandler := handlers.NewUserHandler(userService, cfg, blacklist)
	habitsHandler := handlers.NewHabitsHandler(habitsService)
	routinesHandler := handlers.NewRoutinesHandler(routinesService)
	tasksHandler := handlers.NewTasksHandler(tasksService)
	oauthHandler := handlers.NewOAuthHandler(oauthService, userService)
	dashboardHandler := handlers.NewDashboardHandler(habitsService, routinesService, tasksService, eventBuilder.Location())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupHealthRoutes(router, db, redisClient)

	authRoutes := routes.NewAuthRoutes(userHandler, authMiddleware)
	authRoutes.RegisterRoutes(router)

	userRoutes := routes.NewUserRoutes(userHandler, authMiddleware)
	userRoutes.RegisterRoutes(router, cacheMiddleware)

	habitsRoutes := routes.NewHabitsRoutes(habitsHandler, authMiddleware)
	habitsRoutes.RegisterRoutes(router, cacheMiddleware)

	routinesRoutes := routes.NewRoutinesRoutes(routinesHandler, authMiddleware)
	routinesRoutes.RegisterRoutes(router, cacheMiddleware)

	tasksRoutes := routes.NewTasksRoutes(tasksHandler, authMiddleware)
	tasksRoutes.RegisterRoutes(router, cacheMiddleware)

	calendarRoutes := routes.NewCalendarRoutes(oauthHandler, authMiddleware)
	calendarRoutes.RegisterRoutes(router)

	dashboardRoutes := routes.NewDashboardRoutes(dashboardHandler, authMiddleware)
	dashboardRoutes.RegisterRoutes(router, cacheMiddleware)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
