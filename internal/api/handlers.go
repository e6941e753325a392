package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Taichi-iskw/vidlike/internal/model"
	videosvc "github.com/Taichi-iskw/vidlike/internal/service/video"
)

// VideoHandler serves the /video resource
type VideoHandler struct {
	svc    videosvc.Service
	logger *slog.Logger
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(svc videosvc.Service, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /video
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.svc.ListVideos(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// FindByTitle handles GET /video/search/findByTitle?title=
func (h *VideoHandler) FindByTitle(c *gin.Context) {
	title, ok := c.GetQuery("title")
	if !ok {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	videos, err := h.svc.SearchByTitle(c.Request.Context(), title)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// FindByDurationLessThan handles GET /video/search/findByDurationLessThan?duration=
func (h *VideoHandler) FindByDurationLessThan(c *gin.Context) {
	raw, ok := c.GetQuery("duration")
	if !ok {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	duration, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	videos, err := h.svc.SearchByDurationLessThan(c.Request.Context(), duration)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// Get handles GET /video/:id
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	video, err := h.svc.GetVideo(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Create handles POST /video
func (h *VideoHandler) Create(c *gin.Context) {
	var req model.Video
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	video, err := h.svc.CreateVideo(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Like handles POST /video/:id/like
func (h *VideoHandler) Like(c *gin.Context) {
	h.toggle(c, h.svc.LikeVideo)
}

// Unlike handles POST /video/:id/unlike
func (h *VideoHandler) Unlike(c *gin.Context) {
	h.toggle(c, h.svc.UnlikeVideo)
}

func (h *VideoHandler) toggle(c *gin.Context, op func(ctx context.Context, id int64, username string) error) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	if err := op(c.Request.Context(), id, c.GetString(usernameKey)); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// videoID parses the :id path parameter, answering 400 when it is not an integer
func videoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
