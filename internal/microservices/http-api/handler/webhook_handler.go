package handler

import (
	"io"
	"net/http"

	"novelhub/internal/cache"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const maxWebhookBody = 1 << 20

// SignatureVerifier checks a signed lifecycle notification. *svix.Webhook satisfies it.
type SignatureVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

// WebhookHandler receives account-lifecycle notifications from the identity provider.
type WebhookHandler struct {
	users    service.UserService
	verifier SignatureVerifier
	replays  cache.ReplayGuard
}

func NewWebhookHandler(users service.UserService, verifier SignatureVerifier, replays cache.ReplayGuard) *WebhookHandler {
	return &WebhookHandler{users: users, verifier: verifier, replays: replays}
}

func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/identity", h.Identity)
}

func (h *WebhookHandler) Identity(c *gin.Context) {
	log := zerolog.Ctx(c.Request.Context())

	msgID := c.GetHeader("svix-id")
	if msgID == "" || c.GetHeader("svix-timestamp") == "" || c.GetHeader("svix-signature") == "" {
		badRequest(c, "missing svix headers")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}

	if err := h.verifier.Verify(payload, c.Request.Header); err != nil {
		log.Warn().Err(err).Str("svix_id", msgID).Msg("webhook verification failed")
		badRequest(c, "webhook verification failed")
		return
	}
	if !gjson.ValidBytes(payload) {
		badRequest(c, "malformed event payload")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	fresh, err := h.replays.Claim(ctx, msgID)
	if err != nil {
		// fail open
		log.Warn().Err(err).Str("svix_id", msgID).Msg("replay check unavailable")
		fresh = true
	}
	if !fresh {
		log.Info().Str("svix_id", msgID).Msg("duplicate webhook delivery acknowledged")
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	evt := parseIdentityEvent(payload)
	if err := h.users.ApplyEvent(ctx, evt); err != nil {
		if relErr := h.replays.Release(ctx, msgID); relErr != nil {
			log.Warn().Err(relErr).Str("svix_id", msgID).Msg("release webhook id")
		}
		log.Error().Err(err).Str("event", evt.Type).Str("subject", evt.Subject).Msg("identity event failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseIdentityEvent(payload []byte) service.IdentityEvent {
	res := gjson.GetManyBytes(payload,
		"type",
		"data.id",
		"data.email_addresses.0.email_address",
		"data.first_name",
		"data.last_name",
		"data.image_url",
	)
	return service.IdentityEvent{
		Type:      res[0].String(),
		Subject:   res[1].String(),
		Email:     res[2].String(),
		FirstName: res[3].String(),
		LastName:  res[4].String(),
		ImageURL:  res[5].String(),
	}
}
