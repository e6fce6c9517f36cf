package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/comments", h.List)
	rg.POST("/comments", middleware.RequireAuth(), h.Create)
	rg.DELETE("/comments/:id", middleware.RequireAuth(), h.Delete)
}

// List returns a novel's comments, optionally narrowed to one chapter.
// GET /api/comments?novelId=...&chapterId=...
func (h *CommentHandler) List(c *gin.Context) {
	novelID := c.Query("novelId")
	if novelID == "" {
		badRequest(c, "novelId is required")
		return
	}
	var chapterID *string
	if v := c.Query("chapterId"); v != "" {
		chapterID = &v
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.List(ctx, middleware.Principal(c), novelID, chapterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.svc.Create(ctx, middleware.Principal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
