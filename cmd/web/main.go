package main

import (
	"context"
	"crypto/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/revquotes/console/internal/adapters/backendhttp"
	memsessionrepo "github.com/revquotes/console/internal/adapters/memory/sessionrepo"
	"github.com/revquotes/console/internal/adapters/postgres"
	pgsessionrepo "github.com/revquotes/console/internal/adapters/postgres/sessionrepo"
	redissessionrepo "github.com/revquotes/console/internal/adapters/redis/sessionrepo"
	"github.com/revquotes/console/internal/adapters/webui"
	"github.com/revquotes/console/internal/app/quoteflow"
	"github.com/revquotes/console/internal/app/session"
	platformclock "github.com/revquotes/console/internal/platform/clock"
	"github.com/revquotes/console/internal/platform/config"
	"github.com/revquotes/console/internal/platform/logging"
	sessionrepoport "github.com/revquotes/console/internal/ports/out/sessionrepo"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logging.Configure(logging.Config{})
		l := logging.WithComponent("main")
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Configure(logging.Config{Level: cfg.LogLevel})
	logger := logging.WithComponent("main")

	clk := platformclock.NewSystemClock()

	var (
		repo    sessionrepoport.Repository
		cleanup func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connect failed")
		}
		cleanup = pool.Close
		repo = pgsessionrepo.NewRepo(pool)
	case "redis":
		r, err := redissessionrepo.New(redissessionrepo.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.SessionTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		cleanup = func() { _ = r.Close() }
		repo = r
	default:
		repo = memsessionrepo.NewRepo()
	}
	if cleanup != nil {
		defer cleanup()
	}

	hashKey := cfg.SessionHashKey
	if len(hashKey) == 0 {
		// Ephemeral key: fine for a single instance, but every restart
		// logs all visitors out. Set SESSION_HASH_KEY in production.
		hashKey = make([]byte, 32)
		if _, err := rand.Read(hashKey); err != nil {
			logger.Fatal().Err(err).Msg("session key generation failed")
		}
		logger.Warn().Msg("SESSION_HASH_KEY not set; using an ephemeral key")
	}

	api := backendhttp.New(cfg.BackendBaseURL, cfg.BackendTimeout)
	sessions := session.NewService(repo, api, clk, logging.WithComponent("session"))
	flow := quoteflow.NewService(api, logging.WithComponent("quoteflow"))
	cookies := webui.NewCookieManager(hashKey, cfg.SessionTTL, true)

	ui := webui.NewServer(sessions, flow, cookies, logging.WithComponent("webui"))
	ui.AuthRateLimit = cfg.AuthRateLimit
	ui.AuthRateWindow = cfg.AuthRateWindow

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           ui.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("port", cfg.Port).Str("storage", cfg.StorageBackend).Msg("console listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
