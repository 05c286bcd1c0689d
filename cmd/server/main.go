// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jason-s-yu/pushups/internal/auth"
	"github.com/jason-s-yu/pushups/internal/cache"
	"github.com/jason-s-yu/pushups/internal/config"
	"github.com/jason-s-yu/pushups/internal/database"
	"github.com/jason-s-yu/pushups/internal/handlers"
	"github.com/jason-s-yu/pushups/internal/middleware"
	"github.com/jason-s-yu/pushups/internal/realtime"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	store, err := database.Connect(ctx, cfg.PostgresURL())
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	var signer *auth.Signer
	if cfg.JWTPrivateKeyPath != "" {
		signer, err = auth.NewSignerFromFile(cfg.JWTPrivateKeyPath, cfg.TokenExpireTime)
	} else {
		logger.Warn("JWT_PRIVATE_KEY_PATH not set; sessions will not survive a restart")
		signer, err = auth.NewSigner(cfg.TokenExpireTime)
	}
	if err != nil {
		return err
	}

	api := handlers.NewAPIServer(store, signer, logger)
	api.Revoker = cache.NewTokenStore(rdb)
	api.Events = cache.NewEventQueue(rdb, cfg.HistorianQueueName)
	api.Hub = realtime.NewHub(logger)
	api.StaticDir = cfg.StaticDir
	api.SecureCookies = cfg.Production()
	api.OriginPatterns = cfg.AllowedOrigins

	var h http.Handler = api.Routes()
	h = middleware.CORS(cfg.AllowedOrigins, cfg.Production())(h)
	h = middleware.LogMiddleware(logger)(h)
	h = chimw.Recoverer(h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Running on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
