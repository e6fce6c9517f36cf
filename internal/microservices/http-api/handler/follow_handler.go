package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc service.FollowService
}

func NewFollowHandler(svc service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

func (h *FollowHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/follow", middleware.RequireAuth(), h.Following)
	rg.POST("/follow", middleware.RequireAuth(), h.Follow)
	rg.GET("/follow/:authorId", h.Status)
	rg.DELETE("/follow/:authorId", middleware.RequireAuth(), h.Unfollow)
}

// Following lists the authors the caller follows with their current counts.
func (h *FollowHandler) Following(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	authors, err := h.svc.ListFollowing(ctx, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (h *FollowHandler) Follow(c *gin.Context) {
	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Follow(ctx, middleware.Principal(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"isFollowing": true})
}

func (h *FollowHandler) Status(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ok, err := h.svc.IsFollowing(ctx, middleware.Principal(c), c.Param("authorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFollowing": ok})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Unfollow(ctx, middleware.Principal(c), c.Param("authorId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFollowing": false})
}
