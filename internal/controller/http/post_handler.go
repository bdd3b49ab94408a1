package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"wanderlog/internal/entity"
	"wanderlog/internal/repo/persistent"
	"wanderlog/internal/usecase"
	"wanderlog/internal/validation"
	"wanderlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// ListPosts godoc
// @Summary      List journal posts
// @Description  List posts filtered by country and event-date range, newest event date first.
// @Tags         posts
// @Produce      json
// @Param        country query string false "Exact country match"
// @Param        start_date query string false "Inclusive lower event-date bound (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive upper event-date bound (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var filter entity.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, err := h.postUseCase.ListPosts(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary      Create a journal post
// @Description  Create a post with optional photo attachments. Photos are uploaded to object storage one at a time before the record is written.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        type formData string true "Post type" Enums(place, hostel, people, bus, photo, other)
// @Param        title formData string true "Title"
// @Param        description formData string false "Notes"
// @Param        location formData string false "City or route"
// @Param        country formData string false "Country"
// @Param        date formData string true "Event date (YYYY-MM-DD)"
// @Param        photos formData file false "Photo files (multiple allowed)"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var form validation.PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), userID, form, formPhotos(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update a journal post
// @Description  Rewrite a post's fields and photo list. keep_photos lists the previously stored photo URLs to retain, in order; newly uploaded photos are appended.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        keep_photos formData []string false "Existing photo URLs to keep"
// @Param        photos formData file false "New photo files"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var form validation.PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(
		c.Request.Context(),
		c.Param("id"),
		userID,
		form,
		c.PostFormArray("keep_photos"),
		formPhotos(c),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a journal post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.postUseCase.DeletePost(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func formPhotos(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return form.File["photos"]
}

// Validation problems come back per field; everything else collapses to
// a single message string.
func (h *PostHandler) respondError(c *gin.Context, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
	case errors.Is(err, usecase.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, persistent.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Post operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
