package persistent

import (
	"wanderlog/internal/entity"
	"wanderlog/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entity.PostType(m.Type),
		Title:       m.Title,
		Description: fromNullable(m.Description),
		Location:    fromNullable(m.Location),
		Country:     fromNullable(m.Country),
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Date:        m.Date,
		Photos:      append([]string(nil), m.Photos...),
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Type:        string(e.Type),
		Title:       e.Title,
		Description: toNullable(e.Description),
		Location:    toNullable(e.Location),
		Country:     toNullable(e.Country),
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Date:        e.Date,
		Photos:      append([]string(nil), e.Photos...),
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Username:  e.Username,
		Password:  e.Password,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// Blank optional text fields are stored as NULL, not empty strings.
func toNullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
