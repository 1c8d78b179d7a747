// Package main provides the chatbot API server entry point.
package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tumchatbot/tum-chatbot-go/internal/analytics"
	"github.com/tumchatbot/tum-chatbot-go/internal/chat"
	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	"github.com/tumchatbot/tum-chatbot-go/internal/corpus"
	"github.com/tumchatbot/tum-chatbot-go/internal/ctxutil"
	apperrors "github.com/tumchatbot/tum-chatbot-go/internal/errors"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
	"github.com/tumchatbot/tum-chatbot-go/internal/ratelimit"
	"github.com/tumchatbot/tum-chatbot-go/internal/security"
)

const maxMessageLength = 1000

// api bundles the dependencies the HTTP handlers need.
type api struct {
	engine    *chat.Engine
	guard     *security.Guard // nil when security screening is disabled
	analytics *analytics.Store
	corpus    *corpus.Corpus
	metrics   *metrics.Metrics
	cfg       *config.Config
}

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, a *api, registry *prometheus.Registry, limiter *ratelimit.UserRateLimiter) {
	// Root endpoint - redirect to project page
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/tumchatbot/tum-chatbot-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	router.GET("/ready", a.handleReady)
	router.HEAD("/ready", a.handleReady)

	// Chat API
	v2 := router.Group("/api/v2")
	v2.POST("/chat", rateLimitMiddleware(limiter, a.metrics), a.handleChat)
	v2.POST("/session/start", a.handleSessionStart)
	v2.GET("/session/:id", a.handleSessionInfo)
	v2.DELETE("/session/:id", a.handleSessionEnd)
	v2.GET("/statistics", a.handleStatistics)
	v2.GET("/statistics/performance", a.handlePerformance)
	v2.GET("/security/stats", a.handleSecurityStats)

	// Prometheus metrics endpoint (Basic Auth when a password is configured)
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if a.cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			a.cfg.MetricsUsername: a.cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}

// handleReady reports whether the server can serve chat traffic:
// the knowledge base is loaded and the analytics database answers.
func (a *api) handleReady(c *gin.Context) {
	if err := a.analytics.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}
	if a.corpus.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "knowledge base is empty",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "ready",
		"database":         "connected",
		"knowledge_base":   a.corpus.Len(),
		"active_sessions":  a.engine.SessionCount(),
		"security_enabled": a.guard != nil,
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// handleChat runs one conversation turn.
func (a *api) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.clientError(c, http.StatusBadRequest, "invalid_json", "Request must be JSON")
		return
	}
	if req.Message == "" {
		a.clientError(c, http.StatusBadRequest, "empty_message", "Message cannot be empty")
		return
	}
	if len(req.Message) > maxMessageLength {
		a.clientError(c, http.StatusBadRequest, "message_too_long", "Message too long (max 1000 characters)")
		return
	}

	ctx := c.Request.Context()
	userID := req.UserID
	if userID == "" {
		userID = ctxutil.GetUserID(ctx)
	}
	if req.SessionID != "" {
		ctx = ctxutil.WithSessionID(ctx, req.SessionID)
	}

	if a.guard != nil {
		verdict := a.guard.Analyze(ctx, req.Message, c.ClientIP(), userID, req.SessionID)
		if verdict.Blocked {
			if a.metrics != nil {
				a.metrics.RecordHTTPError("security_blocked", c.FullPath())
			}
			c.JSON(http.StatusForbidden, gin.H{"error": verdict.Message})
			return
		}
		if verdict.Message != "" {
			// Warned but not blocked: the warning replaces the answer.
			c.JSON(http.StatusOK, a.respond(ctx, verdict.Message, req.SessionID))
			return
		}
	}

	reply := a.engine.GenerateResponse(ctx, req.Message, req.SessionID, userID)
	c.JSON(http.StatusOK, a.respond(ctx, reply.Text, reply.SessionID))
}

func (a *api) respond(ctx context.Context, text, sessionID string) chatResponse {
	requestID, _ := ctxutil.GetRequestID(ctx)
	return chatResponse{
		Response:  text,
		SessionID: sessionID,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// handleSessionStart creates a session explicitly.
func (a *api) handleSessionStart(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	_ = c.ShouldBindJSON(&req) // body is optional

	userID := req.UserID
	if userID == "" {
		userID = ctxutil.GetUserID(c.Request.Context())
	}

	sessionID := a.engine.StartSession(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSessionInfo returns a snapshot of one session.
func (a *api) handleSessionInfo(c *gin.Context) {
	info, err := a.engine.GetSessionInfo(c.Param("id"))
	if errors.Is(err, apperrors.ErrSessionNotFound) {
		a.clientError(c, http.StatusNotFound, "session_not_found", "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":     info.SessionID,
		"user_id":        info.UserID,
		"user_role":      info.Role,
		"user_campus":    info.Campus,
		"exchange_count": info.HistoryCount / 2,
		"created_at":     info.CreatedAt.UTC().Format(time.RFC3339),
		"last_active":    info.LastActive.UTC().Format(time.RFC3339),
	})
}

// handleSessionEnd removes a session.
func (a *api) handleSessionEnd(c *gin.Context) {
	err := a.engine.EndSession(c.Request.Context(), c.Param("id"))
	if errors.Is(err, apperrors.ErrSessionNotFound) {
		a.clientError(c, http.StatusNotFound, "session_not_found", "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

// handleStatistics returns aggregated usage statistics.
func (a *api) handleStatistics(c *gin.Context) {
	days := queryDays(c, 30)
	stats, err := a.analytics.GetStatistics(c.Request.Context(), days)
	if err != nil {
		a.serverError(c, "statistics_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handlePerformance returns response time percentiles.
func (a *api) handlePerformance(c *gin.Context) {
	days := queryDays(c, 7)
	perf, err := a.analytics.GetPerformanceMetrics(c.Request.Context(), days)
	if err != nil {
		a.serverError(c, "performance_failed", err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// handleSecurityStats returns blacklist and attack statistics.
func (a *api) handleSecurityStats(c *gin.Context) {
	if a.guard == nil {
		a.clientError(c, http.StatusBadRequest, "security_disabled", "Security screening is disabled")
		return
	}

	stats, err := a.guard.GetStats(c.Request.Context())
	if err != nil {
		a.serverError(c, "security_stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *api) clientError(c *gin.Context, status int, errorType, message string) {
	if a.metrics != nil {
		a.metrics.RecordHTTPError(errorType, c.FullPath())
	}
	c.JSON(status, gin.H{"error": message})
}

func (a *api) serverError(c *gin.Context, errorType string, err error) {
	if a.metrics != nil {
		a.metrics.RecordHTTPError(errorType, c.FullPath())
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// queryDays parses the optional "days" query parameter.
func queryDays(c *gin.Context, fallback int) int {
	raw := c.Query("days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}
