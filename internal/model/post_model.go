package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostModel struct {
	ID          string                 `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string                 `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string                 `gorm:"type:varchar(20);not null" json:"type"`
	Title       string                 `gorm:"type:varchar(200);not null" json:"title"`
	Description *string                `gorm:"type:text" json:"description"`
	Location    *string                `gorm:"type:varchar(200)" json:"location"`
	Country     *string                `gorm:"type:varchar(100);index" json:"country"`
	Latitude    *float64               `json:"latitude"`
	Longitude   *float64               `json:"longitude"`
	Date        string                 `gorm:"type:varchar(10);not null;index" json:"date"`
	Photos      pq.StringArray         `gorm:"type:text[]" json:"photos"`
	Metadata    map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"metadata"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
