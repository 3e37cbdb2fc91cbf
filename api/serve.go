package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/config"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront/internal/http/router"
	"github.com/rogerio-castellano/storefront/internal/metrics"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/shop"
	"github.com/rogerio-castellano/storefront/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the shop and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a.cfg, a.logger)
		},
	}
}

func newShop(cfg *config.Config, store repo.SnapshotStore, recorder shop.Recorder, logger *zap.Logger) *shop.Shop {
	return shop.New(shop.Options{
		Store:             store,
		Source:            source.New(cfg.Catalog.Source, cfg.Catalog.FetchTimeout),
		KeyPrefix:         cfg.Storage.KeyPrefix,
		Logger:            logger,
		Recorder:          recorder,
		LowStockThreshold: cfg.Catalog.LowStockThreshold,
	})
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, closeStore, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New()
	s := newShop(cfg, store, m, logger)
	if err := s.Load(ctx); err != nil {
		logger.Error("storefront not started", zap.Error(err))
		return err
	}

	var tokens *auth.Tokens
	var admin *auth.Admin
	if cfg.AdminEnabled() {
		tokens = auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		admin = auth.NewAdmin(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)
	} else {
		logger.Warn("admin routes disabled: auth.admin_password_hash is not set")
	}

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx)

	r := router.NewRouter(router.Options{
		Handlers: handlers.New(s, tokens, admin, logger),
		Tokens:   tokens,
		Limiter:  limiter,
		Metrics:  m.Handler(),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
