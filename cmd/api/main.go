// ================== cmd/api/main.go ==================
//
// @title TradeHub API
// @version 1.0
// @description Marketplace and community API: trades, wishlists, events, forum and moderation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xyz-asif/tradehub/internal/config"
	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/middleware"
	"github.com/xyz-asif/tradehub/internal/pkg/broker"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	"github.com/xyz-asif/tradehub/internal/pkg/ratelimit"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
	"github.com/xyz-asif/tradehub/internal/routes"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	docs "github.com/xyz-asif/tradehub/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}
	logger.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB, database.Options{
		MaxPool: cfg.MongoMaxPool,
		MinPool: cfg.MongoMinPool,
	})
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect(context.Background())

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Rate limiting is shared through Redis when available.
	var limiter ratelimit.Limiter
	if rdb := config.NewRedisClient(cfg); rdb != nil {
		defer rdb.Close()
		limiter = ratelimit.NewRedis(rdb, "tradehub:rl", cfg.RateLimitRequests, cfg.RateLimitWindow)
		logger.Info("Rate limiting backed by Redis at %s", cfg.RedisAddr)
	} else {
		local := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
		local.StartCleanup(ctx, 5*time.Minute, 10*time.Minute)
		limiter = local
	}

	var events broker.Publisher = broker.Nop{}
	if cfg.RabbitMQURL != "" {
		pub, err := broker.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
		if err != nil {
			logger.Warn("Lifecycle events disabled: %v", err)
		} else {
			defer pub.Close()
			events = pub
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			response.ServiceUnavailable(c, "Database unavailable", "DB_UNAVAILABLE")
			return
		}
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	routes.SetupRoutes(router, db.Database, cfg, routes.Infra{
		Events:  events,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
