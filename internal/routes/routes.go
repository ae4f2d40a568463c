package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/config"
	"github.com/xyz-asif/tradehub/internal/features/auth"
	"github.com/xyz-asif/tradehub/internal/features/events"
	"github.com/xyz-asif/tradehub/internal/features/forum"
	"github.com/xyz-asif/tradehub/internal/features/media"
	"github.com/xyz-asif/tradehub/internal/features/reports"
	"github.com/xyz-asif/tradehub/internal/features/trades"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/features/wishlist"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"github.com/xyz-asif/tradehub/internal/middleware"
	"github.com/xyz-asif/tradehub/internal/pkg/broker"
	"github.com/xyz-asif/tradehub/internal/pkg/cloudinary"
	"github.com/xyz-asif/tradehub/internal/pkg/jwt"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	"github.com/xyz-asif/tradehub/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// Infra carries the optional collaborators built by main.
type Infra struct {
	Events  broker.Publisher
	Limiter ratelimit.Limiter
	Clock   lifecycle.Clock
}

// SetupRoutes builds every repository and service once and mounts the API
// under /api/v1.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, infra Infra) {
	if infra.Events == nil {
		infra.Events = broker.Nop{}
	}
	if infra.Limiter == nil {
		infra.Limiter = ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if infra.Clock == nil {
		infra.Clock = lifecycle.SystemClock{}
	}

	api := router.Group("/api/v1")

	// Identity
	signer := auth.NewJWTSigner(jwt.DefaultConfig(cfg.JWTSecret, cfg.JWTExpiry()))
	userService := users.NewService(users.NewRepository(db), infra.Clock, signer, infra.Events)
	authService := auth.NewService(userService, cfg.JWTSecret, cfg.BcryptCost)

	requireAuth := auth.NewAuthMiddleware(authService)
	staff := middleware.RequireStaff()
	admin := middleware.RequireRole(users.RoleAdmin)
	limit := func(scope string) gin.HandlerFunc {
		return ratelimit.Middleware(infra.Limiter, scope)
	}

	auth.RegisterRoutes(api, auth.NewHandler(authService), requireAuth, limit("auth"))
	users.RegisterRoutes(api, users.NewHandler(userService), requireAuth, staff, admin)

	// Content
	tradeService := trades.NewService(trades.NewRepository(db), userService, infra.Clock, infra.Events)
	trades.RegisterRoutes(api, trades.NewHandler(tradeService), requireAuth)

	wishlistService := wishlist.NewService(wishlist.NewRepository(db), userService, infra.Clock)
	wishlist.RegisterRoutes(api, wishlist.NewHandler(wishlistService), requireAuth)

	eventService := events.NewService(events.NewRepository(db), userService, infra.Clock, infra.Events)
	events.RegisterRoutes(api, events.NewHandler(eventService), requireAuth, limit("events"))

	forumService := forum.NewService(forum.NewRepository(db), userService, infra.Clock)
	forum.RegisterRoutes(api, forum.NewHandler(forumService), requireAuth, limit("votes"))

	reportService := reports.NewService(reports.NewRepository(db), userService, infra.Clock, infra.Events)
	reports.RegisterRoutes(api, reports.NewHandler(reportService), requireAuth, staff, limit("reports"))

	// Uploads
	var uploader media.Uploader
	cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		logger.Warn("media uploads disabled: %v", err)
	} else {
		uploader = cld
	}
	media.RegisterRoutes(api, media.NewHandler(uploader), requireAuth)
}
