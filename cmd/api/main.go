package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud-savings/internal/bootstrap"
	"cloud-savings/internal/shared/config"
	"cloud-savings/internal/shared/server"
	"cloud-savings/internal/shared/telemetry"
)

const (
	shutdownTimeout = 15 * time.Second
	janitorInterval = time.Minute
	rateBucketIdle  = 30 * time.Minute
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	go app.Sessions.RunJanitor(ctx, janitorInterval)
	go app.Limiter.RunJanitor(ctx, janitorInterval, rateBucketIdle)

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// Notify blocks on the SMTP relay for up to SMTP_TIMEOUT.
		WriteTimeout: cfg.Mail.Timeout + 30*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}

	telemetry.Info("server.shutdown", map[string]any{"timeout": shutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Error("server.shutdown_failed", map[string]any{"error": err.Error()})
	}
}
