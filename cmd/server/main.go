package main

import (
	"wanderlog/internal/app"
	"wanderlog/pkg/cache"
	"wanderlog/pkg/config"
	"wanderlog/pkg/database"
	"wanderlog/pkg/logger"
	"wanderlog/pkg/s3"
)

// @title           Wanderlog API
// @version         1.0
// @description     Personal travel journal: typed posts with photos on a day-by-day timeline.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// Photo storage is optional; without credentials the client runs
	// disabled and photo uploads are rejected at submit time.
	s3Client, err := s3.NewClient(cfg, log)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	app.Run(cfg, log, db, redisClient, s3Client)
}
