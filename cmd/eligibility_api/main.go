package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hetulpatel/MantleCoop/internal/app"
	"github.com/hetulpatel/MantleCoop/internal/config"
	"github.com/hetulpatel/MantleCoop/internal/httpapi"
	"github.com/hetulpatel/MantleCoop/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("[eligibility-api] config: %v", err)
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)
	defer logging.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, err := app.NewService(ctx, cfg, reg, logging.L())
	if err != nil {
		logging.Fatalf("[eligibility-api] service init: %v", err)
	}
	defer svc.Close()

	handler := httpapi.NewHandler(svc, cfg.Network, logging.L())
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpapi.NewRouter(handler, reg, logging.L()),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("[eligibility-api] listening on %s (backend=%s)", cfg.HTTP.Addr, svc.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatalf("[eligibility-api] serve: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("[eligibility-api] shutdown: %v", err)
	}
	logging.Infof("[eligibility-api] stopped")
}
