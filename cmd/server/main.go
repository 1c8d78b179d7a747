// Package main provides the chatbot API server entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tumchatbot/tum-chatbot-go/internal/analytics"
	"github.com/tumchatbot/tum-chatbot-go/internal/chat"
	"github.com/tumchatbot/tum-chatbot-go/internal/clarify"
	"github.com/tumchatbot/tum-chatbot-go/internal/compose"
	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	"github.com/tumchatbot/tum-chatbot-go/internal/corpus"
	"github.com/tumchatbot/tum-chatbot-go/internal/extract"
	"github.com/tumchatbot/tum-chatbot-go/internal/genai"
	"github.com/tumchatbot/tum-chatbot-go/internal/logger"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
	"github.com/tumchatbot/tum-chatbot-go/internal/ratelimit"
	"github.com/tumchatbot/tum-chatbot-go/internal/search"
	"github.com/tumchatbot/tum-chatbot-go/internal/security"
	"github.com/tumchatbot/tum-chatbot-go/internal/sentry"
	"github.com/tumchatbot/tum-chatbot-go/internal/session"
	"github.com/tumchatbot/tum-chatbot-go/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log.Logger)
	log.Info("Starting TUM Chatbot Server")

	// Initialize Sentry error tracking (no-op without a DSN)
	if err := sentry.Initialize(sentry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.SentryEnvironment,
		TracesSampleRate: cfg.SentryTracesSampleRate,
		Debug:            cfg.LogLevel == "debug",
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry initialized")
	}

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Register Go and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Load the knowledge base
	kb, err := corpus.Load(cfg.KnowledgeBasePath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load knowledge base")
	}
	log.WithField("documents", kb.Len()).
		WithField("path", cfg.KnowledgeBasePath).
		Info("Knowledge base loaded")
	ranker := search.NewRanker(kb)

	// Open the analytics database
	analyticsDB, err := storage.Open(cfg.AnalyticsDBPath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open analytics database")
	}
	defer func() { _ = analyticsDB.Close() }()

	analyticsStore, err := analytics.NewStore(analyticsDB)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize analytics store")
	}
	recorder := analytics.NewRecorder(analyticsStore, m, 0)
	log.WithField("path", cfg.AnalyticsDBPath()).Info("Analytics store ready")

	// Create the oracle provider chain (optional: the chatbot degrades
	// to clarification-free keyword behavior without one)
	var oracle genai.Generator
	if gen, err := genai.NewFromConfig(context.Background(), cfg, m); err != nil {
		log.WithError(err).Warn("No oracle providers available, responses will degrade")
	} else {
		oracle = gen
		log.WithField("provider", string(gen.Provider())).Info("Oracle providers initialized")
	}

	// Create the security guard (optional)
	var guard *security.Guard
	if cfg.SecurityEnabled {
		securityDB, err := storage.Open(cfg.SecurityDBPath())
		if err != nil {
			log.WithError(err).Fatal("Failed to open security database")
		}
		defer func() { _ = securityDB.Close() }()

		blacklist, err := security.NewBlacklist(securityDB, cfg.BlacklistThreshold)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize security blacklist")
		}
		guard = security.NewGuard(oracle, blacklist, m)
		log.WithField("threshold", cfg.BlacklistThreshold).Info("Security screening enabled")
	} else {
		log.Warn("Security screening disabled")
	}

	// Chat session logging is a development aid: it writes raw user
	// messages to disk, so it stays off in production no matter what
	// the environment says
	var chatLog *logger.ChatSessionLogger
	if cfg.ChatLogPath != "" {
		if cfg.Environment == "production" {
			log.Warn("Chat session logging requested but disabled in production")
		} else {
			chatLog = logger.NewChatSessionLogger(logger.ChatLogConfig{
				Path:       cfg.ChatLogPath,
				MaxSizeMB:  cfg.ChatLogMaxSizeMB,
				MaxBackups: cfg.ChatLogMaxBackups,
			})
			log.WithField("path", cfg.ChatLogPath).Info("Chat session logging enabled")
		}
	}

	// Create the session store and chat engine
	sessions := session.NewStore(session.StoreConfig{
		MaxHistory:  cfg.MaxHistoryEntries,
		IdleTimeout: cfg.SessionTimeout,
	})

	var classifier clarify.Classifier
	if oracle != nil {
		classifier = clarify.NewOracleClassifier(oracle)
	}
	engine := chat.New(chat.Deps{
		Ranker:    ranker,
		Sessions:  sessions,
		Extractor: extract.New(oracle, m),
		Clarifier: clarify.New(classifier),
		Composer:  compose.New(oracle),
		Recorder:  recorder,
		Analytics: analyticsStore,
		Metrics:   m,
		ChatLog:   chatLog,
		TopK:      cfg.TopK,
	})
	log.Info("Chat engine created")

	// Per-IP rate limiter for the chat endpoint
	limiter := ratelimit.NewUserRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, m)

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestContextMiddleware())
	router.Use(corsMiddleware(cfg.CORSOrigins))
	router.Use(loggingMiddleware(log))

	// Setup routes
	setupRoutes(router, &api{
		engine:    engine,
		guard:     guard,
		analytics: analyticsStore,
		corpus:    kb,
		metrics:   m,
		cfg:       cfg,
	}, registry, limiter)

	// Create HTTP server with timeouts sized for oracle-backed chat turns
	// See internal/config/timeouts.go for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.HTTPRead,
		WriteTimeout: config.HTTPWrite,
		IdleTimeout:  config.HTTPIdle,
	}

	// Start background maintenance jobs
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	jobs := startBackgroundJobs(jobsCtx, sessions, engine, m, log)

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop background jobs
	cancelJobs()
	jobsDone := make(chan struct{})
	go func() {
		_ = jobs.Wait()
		close(jobsDone)
	}()
	select {
	case <-jobsDone:
		log.Info("All background jobs stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for background jobs to stop")
	}

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Stop the rate limiter cleanup goroutine
	limiter.Stop()

	// Drain buffered analytics records
	recorder.Close()

	// Flush the chat session log
	if err := chatLog.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to close chat session log")
	}

	// Flush pending Sentry events
	if sentry.IsEnabled() {
		sentry.Flush(2 * time.Second)
	}

	log.Info("Server stopped")
}
