package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"feedback-hub/internal/config"
	"feedback-hub/internal/database"
	"feedback-hub/internal/handlers"
	customMiddleware "feedback-hub/internal/middleware"
	"feedback-hub/internal/notify"
	"feedback-hub/internal/repository"
	"feedback-hub/internal/sentiment"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	// Connect to MongoDB
	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	logger.Infow("connected to MongoDB", "database", cfg.DBName)

	feedbackRepo := repository.NewFeedbackRepo(logger)

	// Ensure indexes. Index failures are logged but not fatal: queries
	// still work without them, just slower.
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := feedbackRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warnf("failed to create feedback indexes: %v", err)
	}
	cancelIndex()

	classifier := sentiment.NewClient(cfg.SentimentURL, logger)

	var notifier notify.Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.WebhookURL)
		logger.Infow("webhook notifications enabled")
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo, classifier, notifier, logger)
	healthHandler := handlers.NewHealthHandler(database.Ping, logger)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(logger))
	r.Use(customMiddleware.Metrics)
	r.Use(customMiddleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/stats", feedbackHandler.Stats)
	r.Get("/api/users/{username}/feedback", feedbackHandler.ListByUser)

	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", feedbackHandler.List)
		r.Post("/", feedbackHandler.Create)
		r.Get("/{id}", feedbackHandler.GetByID)
		r.Put("/{id}", feedbackHandler.Update)
		r.Delete("/{id}", feedbackHandler.Delete)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infow("feedback hub starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests before
	// dropping the database connection.
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	logger.Info("shutting down")

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelDrain()
	if err := srv.Shutdown(drainCtx); err != nil {
		logger.Errorf("server shutdown failed: %v", err)
	}
	if err := database.Disconnect(drainCtx); err != nil {
		logger.Errorf("MongoDB disconnect failed: %v", err)
	}
	logger.Info("stopped")
}
