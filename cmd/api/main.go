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

	"github.com/studymate/studymate-api/config"
	"github.com/studymate/studymate-api/internal/cache"
	"github.com/studymate/studymate-api/internal/handlers"
	"github.com/studymate/studymate-api/internal/middleware"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/repository"
	"github.com/studymate/studymate-api/internal/services"
	"github.com/studymate/studymate-api/pkg/db"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"github.com/studymate/studymate-api/pkg/profiling"
	"github.com/studymate/studymate-api/pkg/storage"
	"github.com/studymate/studymate-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerRoutes wires the marketplace route table. The paths are kept
// exactly as the frontend calls them, which is why most of them live at the
// root rather than under a versioned prefix.
//
// gin allows only one wildcard name per path position, so the nested
// /session/:id/:sessionId routes reuse ":id" for the tutor email segment.
func registerRoutes(
	router *gin.Engine,
	generalRateLimiter, authRateLimiter, writeRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	bookingHandler *handlers.BookingHandler,
	reviewHandler *handlers.ReviewHandler,
	noteHandler *handlers.NoteHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
	authService *services.AuthService,
	userRepo repository.UserStore,
) {
	sessionGate := middleware.SessionMiddleware(
		authService.GetTokenManager(),
		authService.GetCookieDomain(),
		authService.GetCookieSecure(),
	)
	studentGate := middleware.RequireStoredRole(userRepo, models.RoleStudent)
	tutorGate := middleware.RequireStoredRole(userRepo, models.RoleTutor)

	// JSON write payloads are small; session create/update carries an image
	// URL or data URI and gets more room
	bodyLimit := middleware.BodySizeLimitMiddleware(100 * 1024)
	sessionBodyLimit := middleware.BodySizeLimitMiddleware(2 * 1024 * 1024)

	router.GET("/", healthHandler.Liveness)

	// Auth
	router.POST("/jwt", authRateLimiter.Middleware(), bodyLimit, authHandler.IssueToken)
	router.GET("/logout", generalRateLimiter.Middleware(), authHandler.Logout)

	// Users
	router.PUT("/user", writeRateLimiter.Middleware(), bodyLimit, userHandler.SaveUser)
	router.GET("/user/:email", generalRateLimiter.Middleware(), userHandler.GetUser)
	router.GET("/users", generalRateLimiter.Middleware(), userHandler.ListUsers)
	router.GET("/tutors", generalRateLimiter.Middleware(), userHandler.ListTutors)

	// Study sessions
	router.GET("/approved-sessions", generalRateLimiter.Middleware(), sessionHandler.ApprovedSessions)
	router.GET("/sessions", generalRateLimiter.Middleware(), sessionHandler.ListSessions)
	router.GET("/session/:id", generalRateLimiter.Middleware(), sessionHandler.GetSession)
	router.POST("/create-session/:email", writeRateLimiter.Middleware(), sessionBodyLimit, sessionHandler.CreateSession)
	router.GET("/view-sessions/:email", generalRateLimiter.Middleware(), sessionHandler.TutorSessions)
	router.GET("/session/:id/:sessionId", generalRateLimiter.Middleware(), sessionHandler.GetTutorSession)
	router.PUT("/session/:id/:sessionId", writeRateLimiter.Middleware(), sessionBodyLimit, sessionHandler.UpdateTutorSession)
	router.DELETE("/session/:id/:sessionId", writeRateLimiter.Middleware(), sessionHandler.DeleteTutorSession)

	// Bookings
	router.POST("/book-session", writeRateLimiter.Middleware(), bodyLimit, bookingHandler.BookSession)
	router.GET("/view-booked-session/:id", generalRateLimiter.Middleware(), bookingHandler.ViewBookedSession)
	router.GET("/booked-sessions/:email", generalRateLimiter.Middleware(), sessionGate, studentGate, bookingHandler.StudentBookings)

	// Reviews
	router.POST("/review", writeRateLimiter.Middleware(), bodyLimit, reviewHandler.SubmitReview)
	router.GET("/reviews/:sessionId", generalRateLimiter.Middleware(), reviewHandler.SessionReviews)

	// Notes
	router.POST("/create-note", writeRateLimiter.Middleware(), bodyLimit, noteHandler.CreateNote)
	router.GET("/notes/:email", generalRateLimiter.Middleware(), noteHandler.StudentNotes)
	router.GET("/note/:email/:id", generalRateLimiter.Middleware(), noteHandler.GetNote)
	router.PUT("/note/:email/:id", writeRateLimiter.Middleware(), bodyLimit, noteHandler.UpdateNote)
	router.DELETE("/note/:email/:id", writeRateLimiter.Middleware(), noteHandler.DeleteNote)

	// Profile media (session-gated, larger body cap for base64 images)
	v1 := router.Group("/api/v1")
	v1.POST("/profile/avatar", writeRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(15*1024*1024), sessionGate, tutorGate, profileHandler.UploadAvatar)

	// Operational endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
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

	logger.Info("Starting StudyMate API",
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

	// Initialize continuous profiling (no-op unless enabled)
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

	// Initialize metrics
	metrics.Init()
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.DatabaseURL(),
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// NOTE: Database migrations run separately via the migrate command.

	// Initialize object storage for avatars (optional)
	var storageClient *storage.Client
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		storageClient, err = storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize object storage client", zap.Error(err))
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)

	// Listing cache for the two hot public listings
	listingCache := cache.NewListingCache(
		func(ctx context.Context) ([]*models.StudySession, error) {
			return sessionRepo.ListApproved(ctx, services.ApprovedSessionsLimit)
		},
		userRepo.ListVerifiedTutors,
		cfg.Cache.ListingTTLSeconds,
		cfg.Cache.DisableListingCache,
	)
	if cfg.Cache.DisableListingCache {
		logger.Warn("Listing cache is DISABLED - reading from database on every request")
	}

	// Initialize services
	authService := services.NewAuthService(cfg)
	userService := services.NewUserService(userRepo, listingCache)
	sessionService := services.NewSessionService(sessionRepo, userRepo, listingCache)
	bookingService := services.NewBookingService(bookingRepo, sessionRepo)
	reviewService := services.NewReviewService(reviewRepo)
	noteService := services.NewNoteService(noteRepo)

	var imageStorage services.ImageStorage
	if storageClient != nil {
		imageStorage = storageClient
	}
	profileService := services.NewProfileService(userRepo, imageStorage, listingCache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	noteHandler := handlers.NewNoteHandler(noteService)
	profileHandler := handlers.NewProfileHandler(profileService)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the configured frontend origins, with credentials for the
	// login cookie
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://127.0.0.1:5173")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // reads
	writeRateLimiter := middleware.NewRateLimiter(20, 40)     // mutations
	authRateLimiter := middleware.NewRateLimiter(5, 10)       // token issuance

	registerRoutes(router,
		generalRateLimiter, authRateLimiter, writeRateLimiter,
		authHandler, userHandler, sessionHandler, bookingHandler,
		reviewHandler, noteHandler, profileHandler, healthHandler,
		authService, userRepo)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

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
