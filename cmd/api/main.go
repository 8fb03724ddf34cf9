package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentorconnect/mentorconnect-api/config"
	"github.com/mentorconnect/mentorconnect-api/internal/cache"
	"github.com/mentorconnect/mentorconnect-api/internal/handlers"
	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/notify"
	"github.com/mentorconnect/mentorconnect-api/internal/repository"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
	"github.com/mentorconnect/mentorconnect-api/pkg/genai"
	"github.com/mentorconnect/mentorconnect-api/pkg/jwt"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
	"github.com/mentorconnect/mentorconnect-api/pkg/mongodb"
	"github.com/mentorconnect/mentorconnect-api/pkg/profiling"
	"github.com/mentorconnect/mentorconnect-api/pkg/storage"
	"github.com/mentorconnect/mentorconnect-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAuthRoutes registers session issuance routes (public)
func registerAuthRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
) {
	auth := router.Group("/api/v1/auth")
	auth.POST("/signup", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.Signup)
	auth.POST("/logout", authHandler.Logout)

	// Email-only login bypasses SSO and is never exposed in production
	if cfg.IsDevelopment() {
		logger.Warn("Dev login endpoint enabled: POST /api/v1/auth/dev-login")
		auth.POST("/dev-login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.DevLogin)
	}
}

// registerAPIRoutes registers all session-protected API routes
func registerAPIRoutes(
	group *gin.RouterGroup,
	generalRateLimiter, writeRateLimiter, assistantRateLimiter *middleware.RateLimiter,
	profileHandler *handlers.ProfileHandler,
	directoryHandler *handlers.DirectoryHandler,
	mentorshipHandler *handlers.MentorshipHandler,
	postHandler *handlers.PostHandler,
	discussionHandler *handlers.DiscussionHandler,
	chatHandler *handlers.ChatHandler,
	notificationHandler *handlers.NotificationHandler,
	assistantHandler *handlers.AssistantHandler,
) {
	// Profile routes
	group.GET("/profiles/me", generalRateLimiter.Middleware(), profileHandler.GetMe)
	group.GET("/profiles/:id", generalRateLimiter.Middleware(), profileHandler.GetByID)
	group.POST("/profiles/me/role", writeRateLimiter.Middleware(), profileHandler.SelectRole)
	group.PUT("/profiles/me", writeRateLimiter.Middleware(), profileHandler.UpdateProfile)
	group.POST("/profiles/me/avatar", writeRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), profileHandler.UploadAvatar)

	// Alumni directory routes
	group.GET("/directory/alumni", generalRateLimiter.Middleware(), directoryHandler.ListAlumni)
	group.GET("/directory/industries", generalRateLimiter.Middleware(), directoryHandler.Industries)

	// Mentorship request routes
	group.POST("/mentorship-requests", writeRateLimiter.Middleware(), mentorshipHandler.Create)
	group.GET("/mentorship-requests", generalRateLimiter.Middleware(), mentorshipHandler.List)
	group.POST("/mentorship-requests/:id/status", writeRateLimiter.Middleware(), mentorshipHandler.UpdateStatus)

	// Post routes
	group.POST("/posts", writeRateLimiter.Middleware(), postHandler.Create)
	group.GET("/posts", generalRateLimiter.Middleware(), postHandler.List)
	group.GET("/posts/:id", generalRateLimiter.Middleware(), postHandler.GetByID)
	group.PUT("/posts/:id", writeRateLimiter.Middleware(), postHandler.Update)
	group.DELETE("/posts/:id", writeRateLimiter.Middleware(), postHandler.Delete)
	group.POST("/posts/:id/like", writeRateLimiter.Middleware(), postHandler.ToggleLike)
	group.POST("/posts/:id/comments", writeRateLimiter.Middleware(), postHandler.AddComment)
	group.GET("/posts/:id/comments", generalRateLimiter.Middleware(), postHandler.ListComments)

	// Discussion routes
	group.POST("/discussions", writeRateLimiter.Middleware(), discussionHandler.CreateThread)
	group.GET("/discussions", generalRateLimiter.Middleware(), discussionHandler.ListThreads)
	group.GET("/discussions/:id", generalRateLimiter.Middleware(), discussionHandler.GetThread)
	group.POST("/discussions/:id/comments", writeRateLimiter.Middleware(), discussionHandler.AddComment)
	group.GET("/discussions/:id/comments", generalRateLimiter.Middleware(), discussionHandler.ListComments)

	// Chat routes
	group.POST("/chats", writeRateLimiter.Middleware(), chatHandler.Open)
	group.GET("/chats", generalRateLimiter.Middleware(), chatHandler.List)
	group.POST("/chats/:id/messages", writeRateLimiter.Middleware(), chatHandler.SendMessage)
	group.GET("/chats/:id/messages", generalRateLimiter.Middleware(), chatHandler.GetMessages)

	// Notification routes
	group.GET("/notifications", generalRateLimiter.Middleware(), notificationHandler.List)
	group.POST("/notifications/:id/read", generalRateLimiter.Middleware(), notificationHandler.MarkRead)

	// Assistant routes (model calls are expensive, keep the limit tight)
	group.POST("/assistant/ask", assistantRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), assistantHandler.Ask)
	group.GET("/assistant/recommendations", assistantRateLimiter.Middleware(), assistantHandler.Recommend)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorConnect API",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Connect to MongoDB
	store, err := mongodb.Connect(context.Background(), mongodb.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeout) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if disconnectErr := store.Disconnect(ctx); disconnectErr != nil {
			logger.Error("Failed to disconnect from document store", zap.Error(disconnectErr))
		}
	}()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(store)
	mentorshipRepo := repository.NewMentorshipRepository(store)
	postRepo := repository.NewPostRepository(store)
	discussionRepo := repository.NewDiscussionRepository(store)
	chatRepo := repository.NewChatRepository(store)

	// Unique indexes back the one-shot role selection and the one-session-per-pair
	// guarantee; refuse to start without them
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer indexCancel()
	if err := profileRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("Failed to create profile indexes", zap.Error(err))
	}
	if err := chatRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("Failed to create chat indexes", zap.Error(err))
	}

	// Initialize media storage client (optional: avatar uploads disabled without it)
	var mediaStorage services.MediaStorageInterface
	if cfg.MediaStorage.AccessKeyID != "" && cfg.MediaStorage.SecretAccessKey != "" {
		mediaClient, storageErr := storage.NewMediaClient(
			cfg.MediaStorage.AccessKeyID,
			cfg.MediaStorage.SecretAccessKey,
			cfg.MediaStorage.BucketName,
			cfg.MediaStorage.Endpoint,
			cfg.MediaStorage.Region,
		)
		if storageErr != nil {
			logger.Fatal("Failed to initialize media storage client", zap.Error(storageErr))
		}
		mediaStorage = mediaClient
	} else {
		logger.Warn("Media storage credentials not set: avatar uploads are disabled")
	}

	// Initialize generative model client
	genaiClient := genai.NewClient(cfg.GenAI.APIKey, cfg.GenAI.BaseURL, cfg.GenAI.Model)

	// In-memory notification feed
	feed := notify.NewFeed(cfg.Notifications.MaxPerUser)

	// Alumni directory cache, populated synchronously before accepting requests
	directoryCache := cache.NewDirectoryCache(profileRepo, cfg.Cache.DirectoryTTLSeconds)
	directoryReady := directoryCache.IsReady
	if cfg.Cache.DisableDirectoryCache {
		logger.Warn("Directory cache warmup is DISABLED - first directory request populates the cache")
		directoryReady = func() bool { return true }
	} else {
		cacheCtx, cacheCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := directoryCache.Initialize(cacheCtx); err != nil {
			cacheCancel()
			logger.Fatal("Failed to initialize directory cache", zap.Error(err))
		}
		cacheCancel()
	}

	// Session token manager
	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.SessionTTLHours)

	// Initialize services
	profileService := services.NewProfileService(profileRepo, mediaStorage, directoryCache)
	directoryService := services.NewDirectoryService(directoryCache, profileRepo)
	mentorshipService := services.NewMentorshipService(mentorshipRepo, profileRepo, feed)
	postService := services.NewPostService(postRepo, profileRepo)
	discussionService := services.NewDiscussionService(discussionRepo, profileRepo)
	chatService := services.NewChatService(chatRepo, profileRepo, feed)
	assistantService := services.NewAssistantService(genaiClient, profileRepo, postRepo, discussionRepo, directoryCache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(profileService, tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)
	profileHandler := handlers.NewProfileHandler(profileService, tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	mentorshipHandler := handlers.NewMentorshipHandler(mentorshipService)
	postHandler := handlers.NewPostHandler(postService)
	discussionHandler := handlers.NewDiscussionHandler(discussionService)
	chatHandler := handlers.NewChatHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(feed)
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	healthHandler := handlers.NewHealthHandler(store.Ping, directoryReady)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200)  // 100 req/sec, burst of 200
	writeRateLimiter := middleware.NewRateLimiter(10, 20)      // 10 req/sec, burst of 20
	assistantRateLimiter := middleware.NewRateLimiter(1, 5)    // 1 req/sec, burst of 5 (model calls)
	authRateLimiter := middleware.NewRateLimiter(0.05, 5)      // 3 req/min, burst of 5 (signup abuse)
	defer generalRateLimiter.Stop()
	defer writeRateLimiter.Stop()
	defer assistantRateLimiter.Stop()
	defer authRateLimiter.Stop()

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Session issuance routes (public)
	registerAuthRoutes(router, cfg, authRateLimiter, authHandler)

	// API v1 routes (session-protected)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure))
	registerAPIRoutes(v1, generalRateLimiter, writeRateLimiter, assistantRateLimiter,
		profileHandler, directoryHandler, mentorshipHandler, postHandler,
		discussionHandler, chatHandler, notificationHandler, assistantHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
