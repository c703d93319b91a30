package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estateportal/internal/cache"
	"estateportal/internal/config"
	"estateportal/internal/handler"
	"estateportal/internal/middleware"
	"estateportal/internal/repository"
	"estateportal/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Estate Portal API")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Listing page cache is optional; the service reads through to Postgres without it
	var listingCache service.ListingCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewListingCache(context.Background(), cfg.Redis)
		if err != nil {
			log.Printf("Warning: Redis unavailable, listing cache disabled: %v", err)
		} else {
			defer redisCache.Close()
			listingCache = redisCache
			log.Printf("✅ Connected to Redis at %s (ttl %s)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// Initialize OpenAI client
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	if openaiClient.IsEnabled() {
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
	} else {
		log.Println("⚠️  OpenAI is disabled - assistant and analysis endpoints will report a missing key")
		log.Println("   Set OPENAI_API_KEY environment variable to enable AI features")
	}

	if cfg.Auth.JWTSecret == "" {
		log.Println("⚠️  AUTH_JWT_SECRET is not set - signed-in and admin endpoints will reject every request")
	}

	// Initialize services
	gateway := service.NewCompletionGateway(openaiClient)
	listingService := service.NewListingService(repo, listingCache, cfg.Listings.PageSize, cfg.Listings.SimilarLimit)
	adminService := service.NewAdminService(repo, listingCache, openaiClient)
	accountService := service.NewAccountService(repo)
	eventService := service.NewEventService(repo)
	sessions := service.NewSessionStore()

	log.Println("✅ Services initialized")

	// Initialize handlers
	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret)
	listingHandler := handler.NewListingHandler(listingService)
	aiHandler := handler.NewAIHandler(gateway)
	assistantHandler := handler.NewAssistantHandler(sessions, listingService, gateway)
	accountHandler := handler.NewAccountHandler(accountService)
	eventHandler := handler.NewEventHandler(eventService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = cfg.Server.AllowedMethods
	corsConfig.AllowHeaders = cfg.Server.AllowedHeaders
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":          "healthy",
			"service":         "estate-portal-api",
			"version":         Version,
			"build_time":      BuildTime,
			"git_commit":      GitCommit,
			"ai_configured":   openaiClient.IsEnabled(),
			"cache_enabled":   listingCache != nil,
			"active_sessions": sessions.Len(),
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Listing endpoints
		apiV1.GET("/properties", listingHandler.List)
		apiV1.GET("/properties/:id", listingHandler.Get)
		apiV1.GET("/properties/:id/similar", listingHandler.Similar)

		// Completion gateway
		ai := apiV1.Group("/ai")
		ai.GET("/status", aiHandler.Status)
		ai.POST("/validate-key", aiHandler.ValidateKey)
		ai.POST("/complete", aiHandler.Complete)
		ai.POST("/analyze", aiHandler.Analyze)

		// Assistant chat sessions
		assistant := apiV1.Group("/assistant/sessions")
		assistant.POST("", assistantHandler.Create)
		assistant.GET("/:id", assistantHandler.Get)
		assistant.POST("/:id/messages", assistantHandler.Submit)
		assistant.DELETE("/:id", assistantHandler.Close)

		// Public forms, attributed to the user when a token is present
		apiV1.POST("/inquiries", auth.OptionalAuth(), accountHandler.SubmitInquiry)
		apiV1.POST("/events", auth.OptionalAuth(), eventHandler.Track)

		// Signed-in user dashboard
		me := apiV1.Group("/me", auth.RequireAuth())
		me.GET("/inquiries", accountHandler.MyInquiries)
		me.GET("/saved", accountHandler.ListSaved)
		me.POST("/saved", accountHandler.Save)
		me.DELETE("/saved/:propertyId", accountHandler.RemoveSaved)

		// Admin dashboard
		admin := apiV1.Group("/admin", auth.RequireAuth(), middleware.RequireRole(cfg.Auth.AdminRole))
		admin.GET("/properties", adminHandler.ListProperties)
		admin.POST("/properties", adminHandler.CreateProperty)
		admin.PUT("/properties/:id", adminHandler.UpdateProperty)
		admin.PATCH("/properties/:id/status", adminHandler.UpdatePropertyStatus)
		admin.DELETE("/properties/:id", adminHandler.DeleteProperty)
		admin.POST("/properties/:id/embedding", adminHandler.ReembedProperty)
		admin.GET("/inquiries", adminHandler.ListInquiries)
		admin.PATCH("/inquiries/:id/status", adminHandler.UpdateInquiryStatus)
	}

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Drop idle chat sessions
	pruneCtx, stopPrune := context.WithCancel(context.Background())
	defer stopPrune()
	go pruneSessions(pruneCtx, sessions, cfg.Assistant.PruneInterval, cfg.Assistant.SessionIdleTimeout)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: forced shutdown: %v", err)
	}
	log.Println("✅ Server stopped")
}

func pruneSessions(ctx context.Context, sessions *service.SessionStore, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := sessions.Prune(now, maxIdle); n > 0 {
				log.Printf("🧹 Pruned %d idle assistant sessions", n)
			}
		}
	}
}
