package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/storage"

	"github.com/gin-gonic/gin"
)

// UploadHandler hands out direct-to-storage upload grants for cover images.
type UploadHandler struct {
	covers storage.CoverUploader
}

func NewUploadHandler(covers storage.CoverUploader) *UploadHandler {
	return &UploadHandler{covers: covers}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/uploads/cover", middleware.RequireAuth(), h.Cover)
}

func (h *UploadHandler) Cover(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ticket, err := h.covers.PresignCover(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, ticket)
}
