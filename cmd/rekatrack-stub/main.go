// Command rekatrack-stub runs the in-memory stand-in for the RekaTrack
// backend, preloaded with fixture data. Intended for local development of
// the tracker CLI and for manual testing against a real HTTP boundary.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rekaindo/rekatrack/internal/pkg/config"
	"github.com/rekaindo/rekatrack/internal/stubserver"
	"github.com/rekaindo/rekatrack/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":8089"
	}

	srv := stubserver.New(stubserver.Config{
		JWTSecret: os.Getenv("STUB_JWT_SECRET"),
		PhotoDir:  os.Getenv("STUB_PHOTO_DIR"),
	}, log)
	if err := srv.SeedDefaults(); err != nil {
		log.Fatal().Err(err).Msg("seed fixtures")
	}

	go func() {
		log.Info().Str("addr", addr).Msg("stub backend listening")
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
