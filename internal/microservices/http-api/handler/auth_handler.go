package handler

import (
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the caller's own account and public author pages.
type AuthHandler struct {
	users service.UserService
}

func NewAuthHandler(users service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/sync", middleware.RequireAuth(), h.Sync)
	rg.GET("/profile", middleware.RequireAuth(), h.Me)
	rg.PATCH("/profile", middleware.RequireAuth(), h.UpdateProfile)
	rg.GET("/authors/:id", h.AuthorProfile)
}

// Sync creates or refreshes the caller's local user from the session profile.
func (h *AuthHandler) Sync(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.Sync(ctx, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.Resolve(ctx, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.UpdateProfile(ctx, middleware.Principal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) AuthorProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.users.AuthorProfile(ctx, middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
