package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"wanderlog/internal/entity"
	"wanderlog/internal/realtime"
	"wanderlog/internal/repo/persistent"
	"wanderlog/internal/validation"
	"wanderlog/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrNotSignedIn = errors.New("you must be logged in to post")
	ErrForbidden   = errors.New("you can only change your own posts")
)

// Uploader puts a named blob in object storage and returns its public URL.
type Uploader interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
}

// ChangePublisher broadcasts posts change notifications to live feeds.
type ChangePublisher interface {
	PostsChanged(ctx context.Context, event realtime.Event) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID string, form validation.PostForm, photos []*multipart.FileHeader) (*entity.Post, error)
	UpdatePost(ctx context.Context, postID, userID string, form validation.PostForm, keepPhotos []string, photos []*multipart.FileHeader) (*entity.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
	GetPost(ctx context.Context, postID string) (*entity.Post, error)
	ListPosts(ctx context.Context, filter entity.Filter) ([]*entity.Post, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	uploader Uploader
	changes  ChangePublisher
	logger   *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	uploader Uploader,
	changes ChangePublisher,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		uploader: uploader,
		changes:  changes,
		logger:   logger,
	}
}

// CreatePost validates the form, uploads newly attached photos one at a
// time and inserts the record carrying the author's id. Photos already
// uploaded are not rolled back when a later step fails; the record write
// either fully succeeds or nothing is considered saved.
func (uc *postUseCase) CreatePost(ctx context.Context, userID string, form validation.PostForm, photos []*multipart.FileHeader) (*entity.Post, error) {
	input, fields := validation.ValidatePostForm(form)
	if fields != nil {
		return nil, fields
	}

	if userID == "" {
		return nil, ErrNotSignedIn
	}

	photoURLs, err := uc.uploadPhotos(photos)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		UserID:      userID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Country:     input.Country,
		Date:        input.Date,
		Photos:      photoURLs,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.notifyChange(ctx, realtime.Event{Kind: realtime.EventInsert, PostID: post.ID})
	return post, nil
}

// UpdatePost re-validates and rewrites an existing record. keepPhotos is
// the subset of previously stored photo URLs the author kept, in their
// prior order; newly uploaded photos are appended after them. ID,
// created_at and user_id are never touched.
func (uc *postUseCase) UpdatePost(ctx context.Context, postID, userID string, form validation.PostForm, keepPhotos []string, photos []*multipart.FileHeader) (*entity.Post, error) {
	input, fields := validation.ValidatePostForm(form)
	if fields != nil {
		return nil, fields
	}

	if userID == "" {
		return nil, ErrNotSignedIn
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}

	newURLs, err := uc.uploadPhotos(photos)
	if err != nil {
		return nil, err
	}

	post.Type = input.Type
	post.Title = input.Title
	post.Description = input.Description
	post.Location = input.Location
	post.Country = input.Country
	post.Date = input.Date
	post.Photos = append(append([]string{}, keepPhotos...), newURLs...)

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	uc.notifyChange(ctx, realtime.Event{Kind: realtime.EventUpdate, PostID: post.ID})
	return post, nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID, userID string) error {
	if userID == "" {
		return ErrNotSignedIn
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrForbidden
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	uc.notifyChange(ctx, realtime.Event{Kind: realtime.EventDelete, PostID: postID})
	return nil
}

func (uc *postUseCase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	return uc.postRepo.GetByID(ctx, postID)
}

func (uc *postUseCase) ListPosts(ctx context.Context, filter entity.Filter) ([]*entity.Post, error) {
	return uc.postRepo.List(ctx, filter)
}

// uploadPhotos uploads strictly one file after another; the order of
// returned URLs matches the order of input files.
func (uc *postUseCase) uploadPhotos(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open photo %q: %w", file.Filename, err)
		}

		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		url, err := uc.uploader.UploadFile(photoKey(file.Filename), src, contentType)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo %q: %w", file.Filename, err)
		}

		urls = append(urls, url)
	}
	return urls, nil
}

// photoKey builds a collision-safe storage key from a high-resolution
// timestamp, a random suffix and the original filename.
func photoKey(filename string) string {
	name := strings.ReplaceAll(path.Base(filename), " ", "_")
	return fmt.Sprintf("photos/%d-%s-%s", time.Now().UnixNano(), uuid.NewString()[:8], name)
}

// A lost notification only delays subscribers until their next fetch,
// so publish failures are logged instead of failing the saved write.
func (uc *postUseCase) notifyChange(ctx context.Context, event realtime.Event) {
	if uc.changes == nil {
		return
	}
	if err := uc.changes.PostsChanged(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish change event: %v", err)
	}
}
