package handler

import (
	"fmt"

	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

// Handlers groups every route owner mounted under /api.
type Handlers struct {
	Auth           *AuthHandler
	Webhook        *WebhookHandler
	Novel          *NovelHandler
	Chapter        *ChapterHandler
	Library        *LibraryHandler
	Follow         *FollowHandler
	Comment        *CommentHandler
	ReadingHistory *ReadingHistoryHandler
	Upload         *UploadHandler
	Health         *HealthHandler
}

// NewRouter builds the engine: request logging and recovery on every route, session
// verification and per-IP limiting of mutating requests under /api. Client IPs are
// taken from X-Forwarded-For only when the peer is one of trustedProxies.
func NewRouter(h *Handlers, verifier auth.TokenVerifier, limiter *middleware.IPRateLimiter, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}

	// Lifecycle notifications carry their own signature, not a session, and arrive
	// from the provider's shared egress addresses, so they are not rate limited.
	if h.Webhook != nil {
		h.Webhook.RegisterRoutes(r.Group("/api"))
	}

	api := r.Group("/api")
	if limiter != nil {
		api.Use(middleware.MutatingOnly(middleware.RateLimit(limiter)))
	}

	authed := api.Group("", middleware.Authenticate(verifier))
	h.Auth.RegisterRoutes(authed)
	h.Novel.RegisterRoutes(authed)
	h.Chapter.RegisterRoutes(authed)
	h.Library.RegisterRoutes(authed)
	h.Follow.RegisterRoutes(authed)
	h.Comment.RegisterRoutes(authed)
	h.ReadingHistory.RegisterRoutes(authed)
	if h.Upload != nil {
		h.Upload.RegisterRoutes(authed)
	}
	return r, nil
}
