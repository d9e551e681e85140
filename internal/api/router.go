package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/streamvault/streaming-api/docs"
	"github.com/streamvault/streaming-api/internal/api/handler"
	"github.com/streamvault/streaming-api/internal/api/middleware"
	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/service"
	"github.com/streamvault/streaming-api/internal/infrastructure/config"
	mongodb "github.com/streamvault/streaming-api/internal/infrastructure/db/mongo"
	redisdb "github.com/streamvault/streaming-api/internal/infrastructure/db/redis"
	"github.com/streamvault/streaming-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns it
// together with the beacon dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("streaming"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	planRepo := mongodb.NewPlanRepository(db)
	subscriptionRepo := mongodb.NewSubscriptionRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	contentRepo := mongodb.NewContentRepository(db)
	episodeRepo := mongodb.NewEpisodeRepository(db)
	playbackRepo := mongodb.NewPlaybackRepository(db)
	watchlistRepo := mongodb.NewWatchlistRepository(db)

	denylist := redisdb.NewTokenDenylist(rdb)
	progressDedup := redisdb.NewProgressDedup(rdb)

	// --- Services ---
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	issuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	verifier := service.NewTokenVerifier(cfg.JWTSecret, denylist)

	authService := service.NewAuthService(userRepo, profileRepo, hasher, issuer, denylist, log)
	userService := service.NewUserService(userRepo, hasher, log)
	profileService := service.NewProfileService(profileRepo, subscriptionRepo, planRepo, cfg.DefaultMaxProfiles, log)
	planService := service.NewPlanService(planRepo, subscriptionRepo, log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, planRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, subscriptionRepo, log)
	contentService := service.NewContentService(contentRepo, episodeRepo, log)
	episodeService := service.NewEpisodeService(episodeRepo, contentRepo, log)
	playbackService := service.NewPlaybackService(playbackRepo, profileRepo, contentRepo, episodeRepo, progressDedup, log)
	watchlistService := service.NewWatchlistService(watchlistRepo, profileRepo, contentRepo, log)

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, playbackService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService)
	planHandler := handler.NewPlanHandler(planService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	contentHandler := handler.NewContentHandler(contentService)
	episodeHandler := handler.NewEpisodeHandler(episodeService)
	playbackHandler := handler.NewPlaybackHandler(playbackService)
	eventHandler := handler.NewPlaybackEventHandler(dispatcher)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)

	authGuard := middleware.Auth(verifier)
	memberOrAdmin := middleware.RBAC(domain.RoleMember, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authGuard)
	e.GET("/auth/me", authHandler.Me, authGuard)
	e.POST("/auth/change-password", authHandler.ChangePassword, authGuard)

	// --- Public routes (no auth) ---
	e.GET("/public/contents", contentHandler.PublicList)

	// --- Member routes ---
	v1 := e.Group("/v1", authGuard, memberOrAdmin)

	v1.GET("/plans", planHandler.List)
	v1.GET("/plans/:id", planHandler.Get)

	v1.GET("/contents", contentHandler.List)
	v1.GET("/contents/:id", contentHandler.Get)
	v1.GET("/contents/:id/episodes", episodeHandler.ListByContent)
	v1.GET("/episodes/:id", episodeHandler.Get)

	v1.GET("/me/profiles", profileHandler.List)
	v1.POST("/me/profiles", profileHandler.Create)
	v1.PUT("/me/profiles/:id", profileHandler.Update)
	v1.DELETE("/me/profiles/:id", profileHandler.Delete)

	v1.GET("/me/subscriptions", subscriptionHandler.List)
	v1.POST("/me/subscriptions", subscriptionHandler.Create)
	v1.GET("/me/subscriptions/current", subscriptionHandler.Current)
	v1.GET("/me/subscriptions/:id", subscriptionHandler.Get)
	v1.POST("/me/subscriptions/:id/cancel", subscriptionHandler.Cancel)
	v1.POST("/me/subscriptions/:id/reactivate", subscriptionHandler.Reactivate)
	v1.POST("/me/subscriptions/:id/switch-plan", subscriptionHandler.SwitchPlan)
	v1.GET("/me/subscriptions/:id/payments", paymentHandler.ListForSubscription)

	v1.GET("/me/payments", paymentHandler.ListMine)
	v1.GET("/me/payments/:id", paymentHandler.GetMine)

	v1.POST("/me/playbacks", playbackHandler.Start)
	v1.GET("/me/playbacks", playbackHandler.List)
	v1.GET("/me/playbacks/:id", playbackHandler.Get)
	v1.PUT("/me/playbacks/:id/progress", playbackHandler.Progress)
	v1.POST("/me/playbacks/:id/complete", playbackHandler.Complete)
	v1.DELETE("/me/playbacks/:id", playbackHandler.Delete)

	v1.GET("/me/watchlist", watchlistHandler.List)
	v1.POST("/me/watchlist", watchlistHandler.Add)
	v1.DELETE("/me/watchlist/:id", watchlistHandler.Remove)

	v1.POST("/playback-events", eventHandler.Receive)
	v1.POST("/playback-events/batch", eventHandler.ReceiveBatch)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authGuard, adminOnly)

	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Deactivate)
	admin.POST("/users/:id/restore", userHandler.Restore)
	admin.PUT("/users/:id/password", userHandler.SetPassword)

	admin.POST("/plans", planHandler.Create)
	admin.PUT("/plans/:id", planHandler.Update)
	admin.DELETE("/plans/:id", planHandler.Delete)

	admin.POST("/contents", contentHandler.Create)
	admin.PUT("/contents/:id", contentHandler.Update)
	admin.DELETE("/contents/:id", contentHandler.Delete)
	admin.POST("/contents/:id/episodes", episodeHandler.Create)
	admin.PUT("/episodes/:id", episodeHandler.Update)
	admin.DELETE("/episodes/:id", episodeHandler.Delete)

	admin.GET("/subscriptions", subscriptionHandler.AdminList)
	admin.PUT("/subscriptions/:id/status", subscriptionHandler.AdminSetStatus)

	admin.GET("/payments", paymentHandler.AdminList)
	admin.GET("/payments/:id", paymentHandler.AdminGet)
	admin.POST("/payments", paymentHandler.AdminCreate)
	admin.PATCH("/payments/:id", paymentHandler.AdminUpdate)
	admin.DELETE("/payments/:id", paymentHandler.AdminDelete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
