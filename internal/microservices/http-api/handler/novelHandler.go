package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type NovelHandler struct {
	svc service.NovelService
}

func NewNovelHandler(svc service.NovelService) *NovelHandler {
	return &NovelHandler{svc: svc}
}

func (h *NovelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/genres", h.Genres)

	novels := rg.Group("/novels")
	novels.GET("", h.Search)
	novels.GET("/search", h.Search)
	novels.GET("/:id", h.Get)
	novels.POST("", middleware.RequireAuth(), h.Create)
	novels.PATCH("/:id", middleware.RequireAuth(), h.Update)
	novels.DELETE("/:id", middleware.RequireAuth(), h.Delete)

	dashboard := rg.Group("/dashboard", middleware.RequireAuth())
	dashboard.GET("", h.Dashboard)
	dashboard.GET("/novels/:id", h.Manage)
}

func (h *NovelHandler) Genres(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	genres, err := h.svc.ListGenres(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

// Search lists novels newest first; q, genre, tag and sort narrow or reorder it.
func (h *NovelHandler) Search(c *gin.Context) {
	var q dto.NovelSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	novels, err := h.svc.Search(ctx, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, novels)
}

func (h *NovelHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	detail, err := h.svc.Get(ctx, middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *NovelHandler) Create(c *gin.Context) {
	var req dto.CreateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	novel, err := h.svc.Create(ctx, middleware.Principal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, novel)
}

func (h *NovelHandler) Update(c *gin.Context) {
	var req dto.UpdateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	novel, err := h.svc.Update(ctx, middleware.Principal(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, novel)
}

func (h *NovelHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NovelHandler) Dashboard(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.Dashboard(ctx, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Manage is the author's view of one novel, drafts included.
func (h *NovelHandler) Manage(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	detail, err := h.svc.Manage(ctx, middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
