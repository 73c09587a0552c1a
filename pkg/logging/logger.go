// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for benchgate components.
//
// benchgate is a CI gate: stdout belongs to the comparison report and is
// consumed by humans and scripts, so every diagnostic this package emits
// goes to stderr (or to an explicit writer). The default level is Warn,
// which keeps a clean run byte-identical with logging enabled or not.
//
// # Architecture
//
// The package is a thin layer over the standard library slog package,
// with fan-out to multiple destinations and an export hook for tests:
//
//	┌───────────────────────────────────────────────────────────┐
//	│                        Logger                             │
//	│  ┌────────────┐  ┌─────────────┐  ┌────────────────────┐  │
//	│  │   stderr   │  │  log file   │  │   LogExporter      │  │
//	│  │ (default)  │  │ (optional)  │  │ (tests, custom)    │  │
//	│  └────────────┘  └─────────────┘  └────────────────────┘  │
//	└───────────────────────────────────────────────────────────┘
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelDebug,
//	    Service: "cli",
//	})
//	defer logger.Close()
//	logger.Info("comparison complete", "regressions", 2, "missing", 0)
//
// The command layer installs one logger per process via SetDefault; code
// that has no logger in hand calls Default().
//
// # Thread Safety
//
// Logger is safe for concurrent use. The underlying slog.Logger is
// thread-safe and mutable state is mutex-protected.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity, ordered Debug < Info < Warn < Error.
// Setting a minimum level filters out all records below it.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	// Example: "decoded estimates document", "row classified"
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	// Example: "estimates loaded", "comparison complete"
	LevelInfo

	// LevelWarn is for unexpected but survivable situations.
	// Example: "config file unreadable, using defaults"
	LevelWarn

	// LevelError is for failed operations.
	// Example: "estimates file unparsable"
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// toSlogLevel bridges Level to the standard library's slog.Level.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel converts a user-supplied string ("debug", "info", "warn",
// "error", case-insensitive) to a Level. Unknown strings fall back to
// LevelInfo so a typo in a flag or config file never disables logging.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures Logger behavior. The zero value produces an Info-level
// text logger on stderr, which is safe for any caller.
type Config struct {
	// Level sets the minimum log level. Records below it are discarded.
	// Default: LevelInfo.
	Level Level

	// LogDir enables file logging to the given directory in addition to
	// the console stream. Files are named "{Service}_{YYYY-MM-DD}.log"
	// and always JSON. Supports ~ expansion. Default: "" (disabled).
	LogDir string

	// Service identifies the component and is attached to every record
	// as the "service" attribute. Default: "" (no attribute).
	Service string

	// JSON switches the console stream from human-readable text to JSON.
	// File logs are always JSON regardless. Default: false.
	JSON bool

	// Quiet disables the console stream entirely; records still reach
	// the file and the Exporter. Default: false.
	Quiet bool

	// Output overrides the console destination. Nil means os.Stderr.
	// stdout is reserved for report output and must not be used here.
	Output io.Writer

	// Exporter, when set, receives every accepted record as a LogEntry.
	// Export failures are dropped; logging never disrupts the run.
	// Default: nil.
	Exporter LogExporter
}

// =============================================================================
// Exporter Interface
// =============================================================================

// LogExporter receives structured log entries alongside the console and
// file streams. The package uses it for test instrumentation; callers can
// implement it to forward records anywhere else.
//
// Export is called asynchronously per record and should not block. Flush
// must deliver anything buffered; Close releases resources. Both are
// invoked by Logger.Close during shutdown.
type LogExporter interface {
	Export(ctx context.Context, entry LogEntry) error
	Flush(ctx context.Context) error
	Close() error
}

// LogEntry is the exporter-facing form of one log record.
type LogEntry struct {
	// Timestamp when the record was produced (local time).
	Timestamp time.Time

	// Level of the record.
	Level Level

	// Message is the primary log message.
	Message string

	// Service comes from Config.Service.
	Service string

	// Attrs holds the record's key-value attributes.
	Attrs map[string]any
}

// =============================================================================
// Logger
// =============================================================================

// Logger wraps slog.Logger with multi-destination output and an export
// hook. Create one with New, propagate context with With, and release
// file/exporter resources with Close.
type Logger struct {
	// slog is the underlying structured logger.
	slog *slog.Logger

	// config stores the configuration for reference.
	config Config

	// file is the optional log file handle (nil when disabled).
	file *os.File

	// exporter is the optional log exporter.
	exporter LogExporter

	// mu protects file and exporter during Close.
	mu sync.Mutex
}

// New creates a Logger from config: a console handler on Output/stderr
// (unless Quiet), a JSON file handler (if LogDir is set), and the
// Exporter hook. Close the returned Logger to flush and release
// resources.
func New(config Config) *Logger {
	var handlers []slog.Handler

	opts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
	}

	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	if !config.Quiet {
		var consoleHandler slog.Handler
		if config.JSON {
			consoleHandler = slog.NewJSONHandler(out, opts)
		} else {
			consoleHandler = slog.NewTextHandler(out, opts)
		}
		handlers = append(handlers, consoleHandler)
	}

	logger := &Logger{
		config:   config,
		exporter: config.Exporter,
	}

	if config.LogDir != "" {
		logDir := expandPath(config.LogDir)
		if err := os.MkdirAll(logDir, 0750); err == nil {
			serviceName := config.Service
			if serviceName == "" {
				serviceName = "benchgate"
			}
			filename := fmt.Sprintf("%s_%s.log", serviceName, time.Now().Format("2006-01-02"))
			logPath := filepath.Join(logDir, filename)

			file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
			if err == nil {
				logger.file = file
				// File logs are for machines, always JSON.
				handlers = append(handlers, slog.NewJSONHandler(file, opts))
			}
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		// Quiet with no file: accept records, write nothing.
		handler = slog.NewTextHandler(io.Discard, opts)
	case 1:
		handler = handlers[0]
	default:
		handler = &multiHandler{handlers: handlers}
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", config.Service),
		})
	}

	logger.slog = slog.New(handler)
	return logger
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// SetDefault installs l as the process-wide logger returned by Default.
// The command layer calls this once, after flags and config resolve.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the process-wide logger. Before SetDefault runs it
// lazily installs an Info-level stderr logger, so Default is always safe
// to call.
func Default() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(Config{
			Level:   LevelInfo,
			Service: "benchgate",
		})
	}
	return defaultLogger
}

// Debug logs a message at Debug level.
//
// Example:
//
//	logger.Debug("estimates loaded", "path", path, "count", len(set))
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs a message at Info level.
//
// Example:
//
//	logger.Info("comparison complete",
//	    "run_id", runID,
//	    "rows", len(report.Rows),
//	)
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a message at Warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

// Error logs a message at Error level. The operation failed; whether the
// process continues is the caller's decision, not this package's.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

// With returns a new Logger carrying additional attributes on every
// subsequent record. The parent logger is not modified.
//
// Example:
//
//	runLogger := logger.With("run_id", runID)
//	runLogger.Info("loading estimates")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:     l.slog.With(args...),
		config:   l.config,
		file:     l.file,     // Share file handle
		exporter: l.exporter, // Share exporter
	}
}

// Slog exposes the underlying slog.Logger for features this wrapper does
// not surface (LogAttrs, custom records).
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close flushes the exporter, closes it, then syncs and closes the log
// file. Returns the first error encountered.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error

	if l.exporter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.exporter.Flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush exporter: %w", err))
		}
		if err := l.exporter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close exporter: %w", err))
		}
	}

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("sync log file: %w", err))
		}
		if err := l.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// log writes to slog and mirrors accepted records to the exporter.
func (l *Logger) log(level Level, msg string, args ...any) {
	switch level {
	case LevelDebug:
		l.slog.Debug(msg, args...)
	case LevelInfo:
		l.slog.Info(msg, args...)
	case LevelWarn:
		l.slog.Warn(msg, args...)
	case LevelError:
		l.slog.Error(msg, args...)
	}

	if l.exporter != nil && level >= l.config.Level {
		entry := LogEntry{
			Timestamp: time.Now(),
			Level:     level,
			Message:   msg,
			Service:   l.config.Service,
			Attrs:     argsToMap(args),
		}
		// Async so a slow exporter never stalls the gate.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = l.exporter.Export(ctx, entry)
		}()
	}
}

// =============================================================================
// Multi-Handler (Internal)
// =============================================================================

// multiHandler fans one record out to several slog handlers, letting the
// console stay text while the file stays JSON.
type multiHandler struct {
	handlers []slog.Handler
}

// Enabled returns true if any handler accepts the level.
func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle sends the record to every enabled handler.
func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WithAttrs returns a new handler with additional attributes.
func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

// WithGroup returns a new handler with a group name.
func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// =============================================================================
// Helper Functions
// =============================================================================

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// argsToMap converts slog-style key-value args to a map for LogEntry.
func argsToMap(args []any) map[string]any {
	result := make(map[string]any)
	for i := 0; i < len(args)-1; i += 2 {
		if key, ok := args[i].(string); ok {
			result[key] = args[i+1]
		}
	}
	return result
}

// =============================================================================
// Built-in Exporters
// =============================================================================

// NopExporter discards every entry. Useful when an exporter is required
// structurally but export is disabled.
type NopExporter struct{}

// Export discards the entry.
func (e *NopExporter) Export(ctx context.Context, entry LogEntry) error { return nil }

// Flush is a no-op.
func (e *NopExporter) Flush(ctx context.Context) error { return nil }

// Close is a no-op.
func (e *NopExporter) Close() error { return nil }

// Ensure NopExporter implements LogExporter
var _ LogExporter = (*NopExporter)(nil)

// BufferedExporter collects entries in memory so tests can assert on
// what was logged:
//
//	exporter := logging.NewBufferedExporter()
//	logger := logging.New(logging.Config{Exporter: exporter, Quiet: true})
//
//	logger.Info("comparison complete", "rows", 3)
//
//	entries := exporter.Entries()
type BufferedExporter struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewBufferedExporter creates an empty BufferedExporter.
func NewBufferedExporter() *BufferedExporter {
	return &BufferedExporter{
		entries: make([]LogEntry, 0, 100),
	}
}

// Export appends the entry to the buffer.
func (e *BufferedExporter) Export(ctx context.Context, entry LogEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append(e.entries, entry)
	return nil
}

// Flush is a no-op; entries are already in memory.
func (e *BufferedExporter) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (e *BufferedExporter) Close() error {
	return nil
}

// Entries returns a copy of all collected entries.
func (e *BufferedExporter) Entries() []LogEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := make([]LogEntry, len(e.entries))
	copy(result, e.entries)
	return result
}

// WriterExporter writes entries to an io.Writer, one line each.
type WriterExporter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWriterExporter creates a WriterExporter over w.
func NewWriterExporter(w io.Writer) *WriterExporter {
	return &WriterExporter{w: w}
}

// Export writes the entry to the writer.
func (e *WriterExporter) Export(ctx context.Context, entry LogEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := fmt.Fprintf(e.w, "[%s] %s: %s %v\n",
		entry.Timestamp.Format(time.RFC3339),
		entry.Level,
		entry.Message,
		entry.Attrs,
	)
	return err
}

// Flush is a no-op; writes are immediate.
func (e *WriterExporter) Flush(ctx context.Context) error { return nil }

// Close is a no-op; the exporter does not own the writer.
func (e *WriterExporter) Close() error { return nil }
