package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	wanderlogHTTP "wanderlog/internal/controller/http"
	"wanderlog/internal/repo/persistent"
	"wanderlog/internal/realtime"
	"wanderlog/internal/usecase"
	"wanderlog/pkg/cache"
	"wanderlog/pkg/config"
	"wanderlog/pkg/jwt"
	"wanderlog/pkg/logger"
	"wanderlog/pkg/middleware"
	"wanderlog/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "wanderlog/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, s3Client *s3.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	tokenStore := cache.NewRedisTokenStore(redisClient)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// Realtime change channel
	publisher := realtime.NewPublisher(redisClient, log)
	subscriber := realtime.NewSubscriber(redisClient, log)

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, publisher, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, tokenStore, log)

	// Initialize HTTP handlers
	postHandler := wanderlogHTTP.NewPostHandler(postUseCase, log)
	timelineHandler := wanderlogHTTP.NewTimelineHandler(postRepo, subscriber, log)
	authHandler := wanderlogHTTP.NewAuthHandler(authUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Reading the journal requires no account
	{
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.GET("/timeline", timelineHandler.GetTimeline)
		api.GET("/timeline/stream", timelineHandler.StreamTimeline)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/otp", authHandler.RequestLoginLink)
		api.POST("/auth/otp/redeem", authHandler.RedeemLoginLink)
	}

	// Writing requires a signed-in author
	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(jwtService, authUseCase))
	authorized.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		authorized.POST("/posts", postHandler.CreatePost)
		authorized.PUT("/posts/:id", postHandler.UpdatePost)
		authorized.DELETE("/posts/:id", postHandler.DeletePost)

		authorized.POST("/auth/signout", authHandler.SignOut)
		authorized.GET("/auth/me", authHandler.Me)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Wanderlog starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Wanderlog exited")
}
