package http

import (
	"io"
	"net/http"

	"wanderlog/internal/entity"
	"wanderlog/internal/feed"
	"wanderlog/internal/timeline"
	"wanderlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TimelineHandler struct {
	store    feed.Store
	notifier feed.Notifier
	logger   *logger.Logger
}

func NewTimelineHandler(store feed.Store, notifier feed.Notifier, logger *logger.Logger) *TimelineHandler {
	return &TimelineHandler{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// GetTimeline godoc
// @Summary      Get the grouped timeline
// @Description  Posts matching the filter, bucketed per calendar day, newest day first.
// @Tags         timeline
// @Produce      json
// @Param        country query string false "Exact country match"
// @Param        start_date query string false "Inclusive lower event-date bound (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive upper event-date bound (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /timeline [get]
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	var filter entity.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to load timeline: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": timeline.Group(posts)})
}

// StreamTimeline godoc
// @Summary      Stream live timeline updates
// @Description  Server-sent events. Each connection gets its own live feed for the request's filter; every posts change pushes a fresh grouped timeline until the client disconnects.
// @Tags         timeline
// @Produce      text/event-stream
// @Param        country query string false "Exact country match"
// @Param        start_date query string false "Inclusive lower event-date bound (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive upper event-date bound (YYYY-MM-DD)"
// @Success      200  {string}  string
// @Failure      500  {object}  map[string]string
// @Router       /timeline/stream [get]
func (h *TimelineHandler) StreamTimeline(c *gin.Context) {
	var filter entity.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	liveFeed, err := feed.New(c.Request.Context(), h.store, h.notifier, filter, h.logger)
	if err != nil {
		h.logger.Error("Failed to start live feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe to updates"})
		return
	}
	defer liveFeed.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-liveFeed.Updates():
			snap := liveFeed.Snapshot()
			c.SSEvent("timeline", gin.H{
				"state":    snap.State,
				"error":    snap.Err,
				"timeline": timeline.Group(snap.Posts),
			})
			return true
		}
	})
}
