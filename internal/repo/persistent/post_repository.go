package persistent

import (
	"context"
	"errors"
	"fmt"

	"wanderlog/internal/entity"
	"wanderlog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, filter entity.Filter) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// List returns posts matching the filter ordered by event date descending.
// Within one date the most recently written entry comes first.
func (r *postRepository) List(ctx context.Context, filter entity.Filter) ([]*entity.Post, error) {
	query := r.db.WithContext(ctx).Model(&model.PostModel{}).
		Order("date DESC").
		Order("created_at DESC")

	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}

	var postModels []model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)

	result := r.db.WithContext(ctx).Model(&model.PostModel{}).
		Where("id = ?", postModel.ID).
		Updates(map[string]interface{}{
			"type":        postModel.Type,
			"title":       postModel.Title,
			"description": postModel.Description,
			"location":    postModel.Location,
			"country":     postModel.Country,
			"date":        postModel.Date,
			"photos":      postModel.Photos,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	updated, err := r.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}
	*post = *updated
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
