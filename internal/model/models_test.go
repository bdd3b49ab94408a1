package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostModel_BeforeCreate(t *testing.T) {
	post := &PostModel{
		UserID: "user-123",
		Type:   "place",
		Title:  "Arrived in Oaxaca",
		Date:   "2024-03-01",
	}

	// BeforeCreate should set ID if empty
	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
}

func TestPostModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-post-id"
	post := &PostModel{
		ID:     existingID,
		UserID: "user-123",
		Type:   "place",
		Title:  "Arrived in Oaxaca",
		Date:   "2024-03-01",
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, post.ID)
}

func TestUserModel_BeforeCreate(t *testing.T) {
	user := &UserModel{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUserModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &UserModel{
		ID:       existingID,
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "posts", PostModel{}.TableName())
	assert.Equal(t, "users", UserModel{}.TableName())
}
