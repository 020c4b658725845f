package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estimator/internal/handler"
	"estimator/internal/scoring"
	"estimator/internal/service"
)

const shutdownTimeout = 10 * time.Second

// createServeCmd creates the HTTP server command
func createServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg, logger := a.cfg, a.logger

	logger.Info("Starting price estimator",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit))

	bundle, err := loadBundle(cfg.Model.BundlePath, logger)
	if err != nil {
		return fmt.Errorf("failed to load model bundle: %w", err)
	}
	scorer := scoring.NewScorer(bundle)
	logger.Info("Model bundle loaded",
		zap.String("path", cfg.Model.BundlePath),
		zap.Int("features", len(scorer.FeatureNames())))

	// Initialize services
	estimator := service.NewEstimatorService(a.repo, a.dataset, scorer, cfg.History.MaxLimit, logger)

	// Initialize handlers
	estimateHandler := handler.NewEstimateHandler(estimator, cfg.History.DefaultLimit, logger)
	datasetHandler := handler.NewDatasetHandler(a.dataset, logger)

	// Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = cfg.Server.AllowedMethods
	corsConfig.AllowHeaders = cfg.Server.AllowedHeaders
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if err := a.repo.Ping(c.Request.Context()); err != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    "price-estimator",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	handler.Register(apiV1, estimateHandler, datasetHandler)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
