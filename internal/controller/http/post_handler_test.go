package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"wanderlog/internal/entity"
	"wanderlog/internal/repo/persistent"
	"wanderlog/internal/usecase"
	"wanderlog/internal/validation"
	"wanderlog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of usecase.PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, userID string, form validation.PostForm, photos []*multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(ctx, userID, form, photos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, postID, userID string, form validation.PostForm, keepPhotos []string, photos []*multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(ctx, postID, userID, form, keepPhotos, photos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(ctx context.Context, filter entity.Filter) ([]*entity.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func multipartBody(t *testing.T, fields map[string]string, photoNames ...string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for key, value := range fields {
		assert.NoError(t, w.WriteField(key, value))
	}
	for _, name := range photoNames {
		fw, err := w.CreateFormFile("photos", name)
		assert.NoError(t, err)
		_, err = fw.Write([]byte("image-bytes"))
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestListPosts_AppliesCountryFilter(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	expected := entity.Filter{Country: "Mexico"}
	mockUseCase.On("ListPosts", mock.Anything, expected).
		Return([]*entity.Post{{ID: "p1", Country: "Mexico"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?country=Mexico", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Posts []*entity.Post `json:"posts"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Posts, 1)
	mockUseCase.AssertExpectations(t)
}

func TestListPosts_DateRangeFilter(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	expected := entity.Filter{StartDate: "2024-03-01", EndDate: "2024-03-31"}
	mockUseCase.On("ListPosts", mock.Anything, expected).Return([]*entity.Post{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?start_date=2024-03-01&end_date=2024-03-31", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetPost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPost)

	mockUseCase.On("GetPost", mock.Anything, "missing").Return(nil, persistent.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.CreatePost(c)
	})

	mockUseCase.On("CreatePost", mock.Anything, "user-123", mock.MatchedBy(func(form validation.PostForm) bool {
		return form.Type == "hostel" && form.Title == "Selina Oaxaca" && form.Date == "2024-03-01"
	}), mock.MatchedBy(func(photos []*multipart.FileHeader) bool {
		return len(photos) == 2
	})).Return(&entity.Post{ID: "post-1", Title: "Selina Oaxaca"}, nil)

	body, contentType := multipartBody(t, map[string]string{
		"type":  "hostel",
		"title": "Selina Oaxaca",
		"date":  "2024-03-01",
	}, "one.jpg", "two.jpg")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_ValidationErrorsPerField(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.CreatePost(c)
	})

	mockUseCase.On("CreatePost", mock.Anything, "user-123", mock.Anything, mock.Anything).
		Return(nil, validation.Errors{"title": "Title is required"})

	body, contentType := multipartBody(t, map[string]string{
		"type": "place",
		"date": "2024-03-01",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Errors map[string]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Title is required", response.Errors["title"])
}

func TestCreatePost_NotSignedIn(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", handler.CreatePost)

	mockUseCase.On("CreatePost", mock.Anything, "", mock.Anything, mock.Anything).
		Return(nil, usecase.ErrNotSignedIn)

	body, contentType := multipartBody(t, map[string]string{
		"type":  "place",
		"title": "Hi",
		"date":  "2024-03-01",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePost_PassesKeepPhotos(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.UpdatePost(c)
	})

	keep := []string{"https://cdn.test/a"}
	mockUseCase.On("UpdatePost", mock.Anything, "post-1", "user-123", mock.Anything, keep, mock.Anything).
		Return(&entity.Post{ID: "post-1"}, nil)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	_ = w.WriteField("type", "place")
	_ = w.WriteField("title", "Updated")
	_ = w.WriteField("date", "2024-03-01")
	_ = w.WriteField("keep_photos", "https://cdn.test/a")
	_ = w.Close()

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-1", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeletePost_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", func(c *gin.Context) {
		c.Set("user_id", "intruder")
		handler.DeletePost(c)
	})

	mockUseCase.On("DeletePost", mock.Anything, "post-1", "intruder").Return(usecase.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
