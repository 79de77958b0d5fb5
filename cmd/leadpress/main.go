// Package main is the entry point for the leadpress marketing API server.
// It loads configuration, selects the content and CRM backends (live or
// fixture), sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadpress/internal/cache"
	"leadpress/internal/config"
	"leadpress/internal/crm"
	"leadpress/internal/database"
	"leadpress/internal/forms"
	"leadpress/internal/handlers"
	"leadpress/internal/rag"
	"leadpress/internal/router"
	"leadpress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"mocks", cfg.EnableMocks,
	)

	// Select the content backend: Postgres, or the static fixture set when
	// mock mode is on. Everything downstream depends on the interfaces only.
	var (
		provider  store.ContentProvider
		publisher store.SectionPublisher
	)
	if cfg.EnableMocks {
		fixtures := store.NewFixtureStore()
		provider, publisher = fixtures, fixtures
		slog.Info("mock mode enabled, serving fixture content")
	} else {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		// Run pending migrations.
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// Seed development data (no-op if data already exists).
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}

		contentStore := store.NewContentStore(db)
		provider, publisher = contentStore, contentStore
	}

	// Select the CRM backend the same way.
	var sender crm.LeadSender
	if cfg.EnableMocks {
		sender = crm.MockSender{}
	} else {
		sender = crm.NewZoho(crm.Config{
			ClientID:     cfg.ZohoClientID,
			ClientSecret: cfg.ZohoClientSecret,
			RefreshToken: cfg.ZohoRefreshToken,
			BaseURL:      cfg.ZohoBaseURL(),
		})
	}

	// Connect to Valkey when configured; the payload cache degrades to a
	// no-op when nil.
	var payloadCache *cache.PayloadCache
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		payloadCache = cache.NewPayloadCache(valkeyClient, cache.DefaultPageTTL)
	} else {
		slog.Warn("valkey not configured, page payload caching disabled")
	}

	pipeline := forms.NewPipeline(cfg.ZohoLeadOwnerID)
	ragService := rag.NewService(provider, publisher, cfg.RAGModelName, cfg.RAGProvider)

	// Create handler groups with their dependencies.
	contentHandlers := handlers.NewContent(provider, payloadCache)
	formHandlers := handlers.NewForms(pipeline, sender)
	ragHandlers := handlers.NewRag(ragService, payloadCache)

	// Set up the chi router with all middleware and routes.
	r := router.New(contentHandlers, formHandlers, ragHandlers, cfg.CORSAllowedOrigins)

	// WriteTimeout must cover the CRM round trips behind the form
	// endpoints (token exchange plus lead creation, 10s each).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
