package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"novelhub/internal/microservices/http-api/handler"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/middleware/auth"
	"novelhub/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const (
	testSessionSecret = "test-session-secret-0123456789abcdef"
	testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

	novelID   = "6f1c2a0e-8d3b-4c59-9a77-1e2f3a4b5c6d"
	chapterID = "0b9a8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
	authorID  = "a1b2c3d4-e5f6-4789-a0b1-c2d3e4f5a6b7"
)

var authorPrincipal = shared.Principal{
	Subject:   "user_author",
	Email:     "author@example.com",
	FirstName: "Somchai",
	LastName:  "Jaidee",
}

type testEnv struct {
	router   *gin.Engine
	signer   *auth.HMACVerifier
	webhook  *svix.Webhook
	users    *MockUserService
	novels   *MockNovelService
	chapters *MockChapterService
	library  *MockBookmarkService
	follows  *MockFollowService
	comments *MockCommentService
	history  *MockReadingHistoryService
	covers   *MockCoverUploader
	replays  *MockReplayGuard
	pinger   *stubPinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	wh, err := svix.NewWebhook(testWebhookSecret)
	require.NoError(t, err)

	env := &testEnv{
		signer:   auth.NewHMACVerifier(testSessionSecret, ""),
		webhook:  wh,
		users:    new(MockUserService),
		novels:   new(MockNovelService),
		chapters: new(MockChapterService),
		library:  new(MockBookmarkService),
		follows:  new(MockFollowService),
		comments: new(MockCommentService),
		history:  new(MockReadingHistoryService),
		covers:   new(MockCoverUploader),
		replays:  new(MockReplayGuard),
		pinger:   &stubPinger{},
	}

	env.router = env.newRouter(t, middleware.NewIPRateLimiter(1000, 1000), nil)
	return env
}

// newRouter mounts every handler of the env behind the given limiter.
func (e *testEnv) newRouter(t *testing.T, limiter *middleware.IPRateLimiter, trustedProxies []string) *gin.Engine {
	t.Helper()
	h := &handler.Handlers{
		Auth:           handler.NewAuthHandler(e.users),
		Webhook:        handler.NewWebhookHandler(e.users, e.webhook, e.replays),
		Novel:          handler.NewNovelHandler(e.novels),
		Chapter:        handler.NewChapterHandler(e.chapters),
		Library:        handler.NewLibraryHandler(e.library),
		Follow:         handler.NewFollowHandler(e.follows),
		Comment:        handler.NewCommentHandler(e.comments),
		ReadingHistory: handler.NewReadingHistoryHandler(e.history),
		Upload:         handler.NewUploadHandler(e.covers),
		Health:         handler.NewHealthHandler(e.pinger),
	}
	r, err := handler.NewRouter(h, e.signer, limiter, trustedProxies)
	require.NoError(t, err)
	return r
}

func (e *testEnv) token(t *testing.T, p shared.Principal) string {
	t.Helper()
	tok, err := e.signer.Sign(p, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a request; a non-empty token is sent as a bearer credential.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func isCaller(subject string) any {
	return mock.MatchedBy(func(p *shared.Principal) bool {
		return p != nil && p.Subject == subject
	})
}

func isAnonymous() any {
	return mock.MatchedBy(func(p *shared.Principal) bool { return p == nil })
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
