package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// LibraryHandler serves a reader's bookmarks.
type LibraryHandler struct {
	svc service.BookmarkService
}

func NewLibraryHandler(svc service.BookmarkService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

func (h *LibraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookmarks", middleware.RequireAuth(), h.List)
	rg.POST("/bookmarks", middleware.RequireAuth(), h.Add)
	rg.GET("/bookmarks/:novelId", h.Status)
	rg.DELETE("/bookmarks/:novelId", middleware.RequireAuth(), h.Remove)
}

func (h *LibraryHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	bookmarks, err := h.svc.List(ctx, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

func (h *LibraryHandler) Add(c *gin.Context) {
	var req dto.AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Add(ctx, middleware.Principal(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"isBookmarked": true})
}

// Status reports whether the caller bookmarked the novel; anonymous callers get false.
func (h *LibraryHandler) Status(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ok, err := h.svc.IsBookmarked(ctx, middleware.Principal(c), c.Param("novelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isBookmarked": ok})
}

func (h *LibraryHandler) Remove(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Remove(ctx, middleware.Principal(c), c.Param("novelId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isBookmarked": false})
}
