package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ChapterHandler struct {
	svc service.ChapterService
}

func NewChapterHandler(svc service.ChapterService) *ChapterHandler {
	return &ChapterHandler{svc: svc}
}

func (h *ChapterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	chapters := rg.Group("/novels/:id/chapters")
	chapters.GET("", h.List)
	chapters.GET("/:chapterId", h.Read)
	chapters.POST("", middleware.RequireAuth(), h.Create)
	chapters.PATCH("/:chapterId", middleware.RequireAuth(), h.Update)
	chapters.DELETE("/:chapterId", middleware.RequireAuth(), h.Delete)
}

// List returns the published chapters of a novel ordered by number, without bodies.
func (h *ChapterHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	chapters, err := h.svc.ListPublished(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapters)
}

func (h *ChapterHandler) Read(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.svc.Read(ctx, middleware.Principal(c), c.Param("id"), c.Param("chapterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ChapterHandler) Create(c *gin.Context) {
	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	chapter, err := h.svc.Create(ctx, middleware.Principal(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func (h *ChapterHandler) Update(c *gin.Context) {
	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	chapter, err := h.svc.Update(ctx, middleware.Principal(c), c.Param("id"), c.Param("chapterId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *ChapterHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.Principal(c), c.Param("id"), c.Param("chapterId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
