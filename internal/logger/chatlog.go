// Package logger provides structured logging utilities for the application.
// This file contains the opt-in chat session logger used for development
// debugging. It writes full conversations to a rotating file and must stay
// disabled in production: the log contains raw user messages.
package logger

import (
	"context"
	"log/slog"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ChatSessionLogger records full query/response pairs to a rotating file.
// Writes go through an async handler so file IO never blocks a chat turn.
// The zero value is disabled; use NewChatSessionLogger to enable.
type ChatSessionLogger struct {
	log    *slog.Logger
	async  *AsyncHandler
	writer *lumberjack.Logger
}

// ChatLogConfig configures the chat session log file.
type ChatLogConfig struct {
	Path       string // Log file path
	MaxSizeMB  int    // Rotate after this many megabytes (default 10)
	MaxBackups int    // Rotated files to keep (default 5)
}

// NewChatSessionLogger creates a chat session logger writing JSON lines to a
// size-rotated file. Returns nil when path is empty (logging disabled).
func NewChatSessionLogger(cfg ChatLogConfig) *ChatSessionLogger {
	if cfg.Path == "" {
		return nil
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 5
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	async := NewAsyncHandler(
		slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelInfo}),
		AsyncOptions{},
	)
	return &ChatSessionLogger{
		log:    slog.New(async),
		async:  async,
		writer: writer,
	}
}

// Enabled reports whether chat session logging is active.
// Safe to call on nil receiver.
func (c *ChatSessionLogger) Enabled() bool {
	return c != nil
}

// LogExchange records one query/response exchange with session context.
// Safe to call on nil receiver (no-op when disabled).
func (c *ChatSessionLogger) LogExchange(userID, sessionID, query, response, role, campus string) {
	if c == nil {
		return
	}
	c.log.Info("chat exchange",
		"timestamp", time.Now().UTC().Format(time.RFC3339),
		"user_id", userID,
		"session_id", sessionID,
		"query", query,
		"response", response,
		"user_role", role,
		"user_campus", campus,
	)
}

// Close flushes pending records and closes the underlying log file.
// Safe to call on nil receiver.
func (c *ChatSessionLogger) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.async.Shutdown(ctx); err != nil {
		return err
	}
	return c.writer.Close()
}
