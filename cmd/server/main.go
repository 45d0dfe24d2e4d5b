package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	clientapp "github.com/inmobiliaria/backend/internal/application/client"
	contractapp "github.com/inmobiliaria/backend/internal/application/contract"
	listingapp "github.com/inmobiliaria/backend/internal/application/listing"
	"github.com/inmobiliaria/backend/internal/application/publishing"
	"github.com/inmobiliaria/backend/internal/domain/portal"
	"github.com/inmobiliaria/backend/internal/infrastructure/cache"
	"github.com/inmobiliaria/backend/internal/infrastructure/config"
	"github.com/inmobiliaria/backend/internal/infrastructure/logger"
	"github.com/inmobiliaria/backend/internal/infrastructure/persistence"
	portalinfra "github.com/inmobiliaria/backend/internal/infrastructure/portal"
	"github.com/inmobiliaria/backend/internal/interfaces/http/handler"
	"github.com/inmobiliaria/backend/internal/interfaces/http/middleware"
	"github.com/inmobiliaria/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Inmobiliaria Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)

	// Token cache for Mercado Libre OAuth tokens. Redis keeps refreshed
	// tokens across restarts; the in-memory store only outlives a
	// single process.
	var tokenStore cache.TokenStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisTokenStore(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		tokenStore = redisStore
		log.Info("Redis token store connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		tokenStore = cache.NewInMemoryTokenStore()
		log.Info("Using in-memory token store")
	}

	// Build the portal publisher registry
	registry := portal.NewRegistry()

	inmoupConfig := portalinfra.NewInmoupConfig(cfg.Inmoup.BaseURL, cfg.Inmoup.APIKey, cfg.Site.BaseURL)
	if cfg.Inmoup.Timeout > 0 {
		inmoupConfig.Timeout = cfg.Inmoup.Timeout
	}
	if err := inmoupConfig.Validate(); err != nil {
		log.Warn("InmoUp portal not configured, publishing to it will fail", zap.Error(err))
	}
	registry.Register(portalinfra.NewInmoupAdapter(inmoupConfig, log))

	meliConfig := portalinfra.NewMeliConfig(
		cfg.Meli.ClientID, cfg.Meli.ClientSecret,
		cfg.Meli.AccessToken, cfg.Meli.RefreshToken,
		cfg.Site.BaseURL,
	)
	if cfg.Meli.BaseURL != "" {
		meliConfig.BaseURL = cfg.Meli.BaseURL
	}
	if cfg.Meli.TokenURL != "" {
		meliConfig.TokenURL = cfg.Meli.TokenURL
	}
	if cfg.Meli.SiteID != "" {
		meliConfig.SiteID = cfg.Meli.SiteID
	}
	if cfg.Meli.Timeout > 0 {
		meliConfig.Timeout = cfg.Meli.Timeout
	}
	if err := meliConfig.Validate(); err != nil {
		log.Warn("Mercado Libre portal not configured, publishing to it will fail", zap.Error(err))
	}
	registry.Register(portalinfra.NewMeliAdapter(meliConfig, tokenStore, log))

	// Initialize application services
	reconciler := publishing.NewStatusReconciler(propertyRepo, log)
	publishingService := publishing.NewService(propertyRepo, clientRepo, registry, reconciler, log)
	propertyService := listingapp.NewPropertyService(propertyRepo, log)
	clientService := clientapp.NewService(clientRepo, log)
	contractService := contractapp.NewService(contractRepo, propertyRepo, log)

	// Initialize HTTP handlers
	portalHandler := handler.NewPortalHandler(publishingService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	clientHandler := handler.NewClientHandler(clientService)
	contractHandler := handler.NewContractHandler(contractService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Portal publication routes
	portalRoutes := router.NewDomainGroup("portals", "/portals")
	portalRoutes.GET("", portalHandler.ListCapabilities)
	portalRoutes.GET("/:portal", portalHandler.Capabilities)
	portalRoutes.POST("/:portal", portalHandler.Publish)
	portalRoutes.PUT("/:portal", portalHandler.Sync)
	portalRoutes.DELETE("/:portal", portalHandler.Remove)

	// Property routes
	propertyRoutes := router.NewDomainGroup("properties", "/properties")
	propertyRoutes.POST("", propertyHandler.Create)
	propertyRoutes.GET("", propertyHandler.List)
	propertyRoutes.GET("/:id", propertyHandler.GetByID)
	propertyRoutes.PUT("/:id", propertyHandler.Update)
	propertyRoutes.DELETE("/:id", propertyHandler.Delete)

	// Client routes
	clientRoutes := router.NewDomainGroup("clients", "/clients")
	clientRoutes.POST("", clientHandler.Create)
	clientRoutes.GET("", clientHandler.List)
	clientRoutes.GET("/:id", clientHandler.GetByID)
	clientRoutes.PUT("/:id", clientHandler.Update)
	clientRoutes.DELETE("/:id", clientHandler.Delete)

	// Contract routes
	contractRoutes := router.NewDomainGroup("contracts", "/contracts")
	contractRoutes.POST("", contractHandler.Create)
	contractRoutes.GET("", contractHandler.List)
	contractRoutes.GET("/:id", contractHandler.GetByID)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(portalRoutes).
		Register(propertyRoutes).
		Register(clientRoutes).
		Register(contractRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
