package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	videosvc "github.com/Taichi-iskw/vidlike/internal/service/video"
)

// NewRouter builds the HTTP API on top of the video service.
// jwtSecret verifies the bearer tokens required by like/unlike.
func NewRouter(svc videosvc.Service, jwtSecret string, logger *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), AccessLog(logger), gin.Recovery())

	h := NewVideoHandler(svc, logger)

	videoGrp := engine.Group("/video")
	// no auth
	videoGrp.GET("", h.List)
	videoGrp.GET("/search/findByTitle", h.FindByTitle)
	videoGrp.GET("/search/findByDurationLessThan", h.FindByDurationLessThan)
	videoGrp.GET("/:id", h.Get)
	videoGrp.POST("", h.Create)

	// auth
	likeGrp := videoGrp.Group("/:id", Authorization(jwtSecret))
	likeGrp.POST("/like", h.Like)
	likeGrp.POST("/unlike", h.Unlike)

	return engine
}
