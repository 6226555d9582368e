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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rema-viva-landing/pkg/api"
	"rema-viva-landing/pkg/clients/appscript"
	"rema-viva-landing/pkg/config"
	"rema-viva-landing/pkg/countdown"
	"rema-viva-landing/pkg/dedupe"
	"rema-viva-landing/pkg/logger"
	"rema-viva-landing/pkg/middleware"
	"rema-viva-landing/pkg/services"
	"rema-viva-landing/pkg/web"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file loaded")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	zl, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	site, err := config.LoadSite(cfg.SiteConfigPath)
	if err != nil {
		zl.Fatal("Error loading site config", zap.Error(err))
	}
	site.ApplyEnv(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize API clients
	sheetClient := appscript.NewClient(site.Submission.Endpoint, cfg.RelayTimeout, zl)
	guard := newGuard(ctx, cfg, zl)

	// Initialize services
	submissionService := services.NewLeadSubmissionService(site, sheetClient, guard, cfg.RelayTimeout, zl)

	renderer, err := web.NewRenderer(site, cfg.IsProduction())
	if err != nil {
		zl.Fatal("Error preparing page templates", zap.Error(err))
	}

	timer := countdown.New(site.CountdownTimerConfig())
	timer.Start(ctx)
	defer timer.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(zl),
		middleware.RequestID(),
		middleware.Logger(zl),
		middleware.CORS(cfg.AllowedOrigins...),
	)
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		router.Static("/static", cfg.StaticDir)
	} else {
		zl.Warn("Static directory missing, page script disabled", zap.String("dir", cfg.StaticDir))
	}

	// Initialize handlers
	handlers := api.NewHandlers(submissionService, renderer, site, timer, zl)
	handlers.Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Error during shutdown", zap.Error(err))
	}
}

// newGuard uses redis when configured and reachable, memory otherwise.
func newGuard(ctx context.Context, cfg *config.Config, zl *zap.Logger) dedupe.Guard {
	if cfg.RedisURL == "" {
		return dedupe.NewMemoryGuard(cfg.DedupeTTL)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := dedupe.Connect(pingCtx, cfg.RedisURL)
	if err != nil {
		zl.Warn("Redis unavailable, deduplicating in memory", zap.Error(err))
		return dedupe.NewMemoryGuard(cfg.DedupeTTL)
	}
	return dedupe.NewRedisGuard(client, cfg.DedupeTTL)
}
