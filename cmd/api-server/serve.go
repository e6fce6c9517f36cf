package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novelhub/database"
	"novelhub/internal/cache"
	"novelhub/internal/config"
	"novelhub/internal/microservices/http-api/handler"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/microservices/http-api/service"
	"novelhub/internal/middleware/auth"
	"novelhub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	svix "github.com/svix/svix-webhooks/go"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.SetRequestTimeout(cfg.RequestTimeout)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	novelRepo := repository.NewNovelRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	historyRepo := repository.NewReadingHistoryRepository(db)

	// Services
	userSvc := service.NewUserService(userRepo, novelRepo, followRepo)
	novelSvc := service.NewNovelService(userSvc, novelRepo, chapterRepo, genreRepo)
	chapterSvc := service.NewChapterService(userSvc, novelRepo, chapterRepo)
	bookmarkSvc := service.NewBookmarkService(userSvc, novelRepo, bookmarkRepo)
	followSvc := service.NewFollowService(userSvc, userRepo, followRepo)
	commentSvc := service.NewCommentService(userSvc, novelRepo, chapterRepo, commentRepo)
	historySvc := service.NewReadingHistoryService(userSvc, chapterRepo, historyRepo)

	handlers := &handler.Handlers{
		Auth:           handler.NewAuthHandler(userSvc),
		Novel:          handler.NewNovelHandler(novelSvc),
		Chapter:        handler.NewChapterHandler(chapterSvc),
		Library:        handler.NewLibraryHandler(bookmarkSvc),
		Follow:         handler.NewFollowHandler(followSvc),
		Comment:        handler.NewCommentHandler(commentSvc),
		ReadingHistory: handler.NewReadingHistoryHandler(historySvc),
		Health:         handler.NewHealthHandler(sqlDB),
	}

	if cfg.WebhooksEnabled() {
		wh, err := svix.NewWebhook(cfg.WebhookSecret)
		if err != nil {
			return fmt.Errorf("webhook secret: %w", err)
		}
		rdb := connectRedis(ctx, cfg)
		if rdb != nil {
			defer rdb.Close()
		}
		handlers.Webhook = handler.NewWebhookHandler(userSvc, wh, cache.NewReplayGuard(rdb, cfg.WebhookReplayTTL))
	} else {
		log.Warn().Msg("WEBHOOK_SECRET not set, identity webhooks disabled")
	}

	if cfg.StorageEnabled() {
		covers, err := storage.NewMinIOStorage(storage.Config{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		}, cfg.UploadURLTTL)
		if err != nil {
			return err
		}
		if err := covers.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Str("bucket", cfg.MinIOBucket).Msg("cover bucket check failed")
		}
		handlers.Upload = handler.NewUploadHandler(covers)
	} else {
		log.Warn().Msg("MINIO credentials not set, cover uploads disabled")
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	engine, err := handler.NewRouter(handlers, verifier, limiter, cfg.TrustedProxies)
	if err != nil {
		return err
	}

	return run(ctx, &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	})
}

func run(ctx context.Context, srv *http.Server) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		log.Info().Msg("server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// newVerifier accepts HMAC session tokens, OIDC ID tokens, or both when both are configured.
func newVerifier(ctx context.Context, cfg *config.Config) (auth.TokenVerifier, error) {
	var chain auth.Chain
	if cfg.OIDCIssuerURL != "" {
		v, err := auth.NewOIDCVerifier(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, v)
	}
	if cfg.SessionJWTSecret != "" {
		chain = append(chain, auth.NewHMACVerifier(cfg.SessionJWTSecret, cfg.SessionJWTIssuer))
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}

// connectRedis returns nil when Redis is not configured or unreachable; replay
// protection is then skipped.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		log.Warn().Msg("REDIS_URL is empty, webhook replay protection disabled")
		return nil
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, webhook replay protection disabled")
		return nil
	}
	return rdb
}
