package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog"
	"github.com/jcmexdev/digital-storefront/internal/coordinator/checkoutlog/sqlite"
	"github.com/jcmexdev/digital-storefront/internal/pkg/cache"
	"github.com/jcmexdev/digital-storefront/internal/pkg/clock"
	"github.com/jcmexdev/digital-storefront/internal/pkg/config"
	"github.com/jcmexdev/digital-storefront/internal/pkg/interceptors"
	"github.com/jcmexdev/digital-storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/digital-storefront/internal/storefront/app"
	"github.com/jcmexdev/digital-storefront/internal/storefront/infra/adapters/api"
	"github.com/jcmexdev/digital-storefront/internal/storefront/infra/adapters/guard"
	"github.com/jcmexdev/digital-storefront/internal/storefront/infra/adapters/widget"
	"github.com/jcmexdev/digital-storefront/internal/storefront/infra/httpx"
)

func main() {
	configPath := flag.String("config", os.Getenv("STOREFRONT_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		telemetry.InitLogger("info")
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
		ServiceName: cfg.OTelServiceName,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	clk := clock.NewSystem()

	var guardCache cache.Cache
	if cfg.RedisAddr != "" {
		guardCache = cache.NewRedisCache(cfg.RedisAddr, "storefront")
		slog.Info("processing guard backed by redis", "addr", cfg.RedisAddr)
	} else {
		guardCache = cache.NewMemoryCache(clk, "storefront")
	}

	var logRepo checkoutlog.Repository = checkoutlog.NewMemoryRepository()
	if cfg.CheckoutLogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.CheckoutLogPath), 0o755); err != nil {
			slog.Error("failed to create checkout log directory", "path", cfg.CheckoutLogPath, "error", err)
			os.Exit(1)
		}
		repo, err := sqlite.Open(cfg.CheckoutLogPath)
		if err != nil {
			slog.Error("failed to open checkout log", "path", cfg.CheckoutLogPath, "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		logRepo = repo
	}

	apiClient := api.NewClient(cfg.StoreAPIBaseURL, &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: interceptors.Chain(http.DefaultTransport),
	})
	bridge := widget.NewBridge(cfg.CheckoutScriptURL)

	store := app.NewStorefront(
		app.Config{
			MerchantKey:  cfg.RazorpayKeyID,
			StoreName:    cfg.StoreName,
			Currency:     cfg.Currency,
			ThemeColor:   cfg.ThemeColor,
			NoticeTTL:    cfg.NoticeTTL,
			AbandonAfter: guard.DefaultTTL,
		},
		apiClient,
		bridge,
		guard.New(guardCache, guard.DefaultTTL),
		logRepo,
		clk,
	)
	defer store.Close()

	go store.RunSweeper(ctx, cfg.VisitorMaxIdle/4, cfg.VisitorMaxIdle)

	handler := httpx.NewHandler(store, bridge, httpx.PageConfig{
		StoreName:  cfg.StoreName,
		ThemeColor: cfg.ThemeColor,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown error", "error", err)
		}
	}()

	slog.Info("storefront running", "addr", cfg.HTTPAddr, "store_api", cfg.StoreAPIBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}
