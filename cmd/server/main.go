package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "rental-frontend/internal/api/http"
	"rental-frontend/internal/config"
	"rental-frontend/internal/domain"
	"rental-frontend/internal/logger"
	"rental-frontend/internal/security"
	"rental-frontend/internal/service"
	"rental-frontend/internal/upstream"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental frontend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Upstream configuration",
		"contracts_api", cfg.ContractsAPI.BaseURL,
		"catalogs_api", cfg.CatalogsAPI.BaseURL,
		"timeout", cfg.ClientTimeout(),
		"refresh_margin", cfg.RefreshMargin(),
	)

	upstreams := make(map[domain.APIIdentity]security.Upstream)
	baseURLs := make(map[domain.APIIdentity]string)
	for api, u := range cfg.Upstreams() {
		upstreams[api] = security.Upstream{BaseURL: u.BaseURL, AuthCode: u.AuthCode}
		baseURLs[api] = u.BaseURL
	}

	httpClient := &http.Client{Timeout: cfg.ClientTimeout()}
	tokens := security.NewTokenCache(upstreams,
		security.WithHTTPClient(httpClient),
		security.WithRefreshMargin(cfg.RefreshMargin()),
	)
	client := upstream.NewClient(baseURLs, tokens, upstream.WithHTTPClient(httpClient))

	contractSvc := service.NewContractService(client)
	catalogSvc := service.NewCatalogService(client)

	router := httpapi.NewRouter(
		httpapi.NewContractHandler(contractSvc),
		httpapi.NewCatalogHandler(catalogSvc),
		httpapi.NewStatusHandler(tokens),
	)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
