package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// ReadingHistoryHandler tracks what the caller has read.
type ReadingHistoryHandler struct {
	svc service.ReadingHistoryService
}

func NewReadingHistoryHandler(svc service.ReadingHistoryService) *ReadingHistoryHandler {
	return &ReadingHistoryHandler{svc: svc}
}

func (h *ReadingHistoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reading-history", middleware.RequireAuth(), h.History)
	rg.POST("/reading-history", middleware.RequireAuth(), h.Record)
	rg.GET("/reading-history/:novelId", h.LastInNovel)
}

func (h *ReadingHistoryHandler) Record(c *gin.Context) {
	var req dto.RecordReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	entry, err := h.svc.Record(ctx, middleware.Principal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// LastInNovel returns {"lastChapter": null} when nothing was read or the caller is anonymous.
func (h *ReadingHistoryHandler) LastInNovel(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	entry, err := h.svc.LastInNovel(ctx, middleware.Principal(c), c.Param("novelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil || entry.Chapter == nil {
		c.JSON(http.StatusOK, gin.H{"lastChapter": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lastChapter": gin.H{
			"id":     entry.Chapter.ID,
			"number": entry.Chapter.Number,
			"title":  entry.Chapter.Title,
		},
		"readAt": entry.ReadAt,
	})
}

func (h *ReadingHistoryHandler) History(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	entries, err := h.svc.History(ctx, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
