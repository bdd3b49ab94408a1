package main

import (
	"context"
	"fmt"

	"wanderlog/internal/model"
	"wanderlog/internal/realtime"
	"wanderlog/pkg/cache"
	"wanderlog/pkg/config"
	"wanderlog/pkg/database"
	"wanderlog/pkg/logger"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	publisher := realtime.NewPublisher(redisClient, log)

	if err := seedDatabase(db, publisher, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, publisher *realtime.Publisher, log *logger.Logger) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("wanderlog-demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	author := &model.UserModel{
		Email:    "traveler@example.com",
		Username: "traveler",
		Password: string(hashedPassword),
	}

	var existing model.UserModel
	result := db.Where("email = ?", author.Email).First(&existing)
	if result.Error == nil {
		log.Info("User %s already exists, skipping", existing.Username)
		author = &existing
	} else {
		if err := db.Create(author).Error; err != nil {
			return fmt.Errorf("failed to create author: %w", err)
		}
		log.Info("Created user: %s (%s)", author.Username, author.Email)
	}

	oaxacaLat, oaxacaLng := 17.0732, -96.7266
	samplePosts := []*model.PostModel{
		{
			UserID:    author.ID,
			Type:      "bus",
			Title:     "Night bus to Oaxaca",
			Date:      "2024-03-01",
			Country:   strPtr("Mexico"),
			Location:  strPtr("Mexico City TAPO"),
			Photos:    pq.StringArray{},
			Metadata:  map[string]interface{}{"company": "ADO", "seat": "14A"},
		},
		{
			UserID:    author.ID,
			Type:      "hostel",
			Title:     "Casa Angel",
			Date:      "2024-03-02",
			Country:   strPtr("Mexico"),
			Location:  strPtr("Oaxaca de Juarez"),
			Latitude:  &oaxacaLat,
			Longitude: &oaxacaLng,
			Photos:    pq.StringArray{},
		},
		{
			UserID:      author.ID,
			Type:        "place",
			Title:       "Monte Alban",
			Description: strPtr("Zapotec ruins on the hilltop, go early before the heat."),
			Date:        "2024-03-02",
			Country:     strPtr("Mexico"),
			Photos:      pq.StringArray{},
		},
	}

	for _, post := range samplePosts {
		var count int64
		db.Model(&model.PostModel{}).
			Where("user_id = ? AND title = ? AND date = ?", post.UserID, post.Title, post.Date).
			Count(&count)
		if count > 0 {
			log.Info("Post %q already exists, skipping", post.Title)
			continue
		}

		if err := db.Create(post).Error; err != nil {
			log.Error("Failed to create post %q: %v", post.Title, err)
			continue
		}
		log.Info("Created post: %s (%s)", post.Title, post.Date)

		if err := publisher.PostsChanged(context.Background(), realtime.Event{Kind: realtime.EventInsert, PostID: post.ID}); err != nil {
			log.Warn("Failed to publish change event: %v", err)
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
