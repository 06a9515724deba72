package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"YSFinancials/pkg/config"
	"YSFinancials/pkg/logger"
	"YSFinancials/pkg/ratelimit"
	"YSFinancials/pkg/services"
	"YSFinancials/pkg/store"
	"YSFinancials/routes"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := openStore(ctx, cfg, log)
	defer st.Close()

	limiter := openLimiter(ctx, cfg, log)
	defer limiter.Close()

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := routes.NewRouter(routes.Deps{
		Config:    cfg,
		Submitter: services.NewInquiryService(st, cfg.StoreTimeout, log),
		Limiter:   limiter,
		Log:       log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore connects the inquiry store. A missing or unreachable store is
// logged and replaced by one that fails every write, so the server still starts.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) store.InquiryStore {
	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	st, err := store.Open(ctx, cfg.StoreURI)
	if err != nil {
		log.Error("inquiry store unavailable, submissions will fail",
			zap.String("uri", store.Redact(cfg.StoreURI)), zap.Error(err))
		return store.Unavailable(err)
	}
	log.Info("inquiry store connected", zap.String("uri", store.Redact(cfg.StoreURI)))
	return st
}

// openLimiter uses Redis when REDIS_URL is set and reachable, otherwise process memory.
func openLimiter(ctx context.Context, cfg *config.Config, log *zap.Logger) ratelimit.Limiter {
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		defer cancel()
		l, err := ratelimit.OpenRedis(ctx, cfg.RedisURL, cfg.RateLimitWindow, cfg.RateLimitMax)
		if err == nil {
			log.Info("rate limiter using redis")
			return l
		}
		log.Warn("redis unavailable, rate limiting in memory", zap.Error(err))
	}
	return ratelimit.NewMemory(cfg.RateLimitWindow, cfg.RateLimitMax)
}
