// Package log provides the default slog-backed logger provider.
//
// This file wires the Logger interface to Go's standard log/slog package so
// that library components can obtain loggers without depending on a concrete
// backend. Tests can swap the provider with SetProvider to capture output.

package log

import (
	"context"
	"log/slog"
	"sync"
)

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

// normalizeFields converts bare error values into ErrAttr attributes so the
// ErrFmtHandler can extract stack traces from them.
func normalizeFields(fields []any) []any {
	normalized := make([]any, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.(error); ok {
			normalized = append(normalized, ErrAttr(err))
			continue
		}
		normalized = append(normalized, f)
	}
	return normalized
}

// Debug implements Logger.Debug.
func (l *slogLogger) Debug(msg string, fields ...any) {
	l.logger.Debug(msg, normalizeFields(fields)...)
}

// Info implements Logger.Info.
func (l *slogLogger) Info(msg string, fields ...any) {
	l.logger.Info(msg, normalizeFields(fields)...)
}

// Warn implements Logger.Warn.
func (l *slogLogger) Warn(msg string, fields ...any) {
	l.logger.Warn(msg, normalizeFields(fields)...)
}

// Error implements Logger.Error.
func (l *slogLogger) Error(msg string, fields ...any) {
	l.logger.Error(msg, normalizeFields(fields)...)
}

// With implements Logger.With.
func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: l.logger.With(normalizeFields(fields)...)}
}

// Enabled implements Logger.Enabled.
func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return l.logger.Enabled(ctx, slog.Level(level))
}

// SlogProvider is the default LoggerProvider backed by log/slog.
type SlogProvider struct {
	level *slog.LevelVar
}

// NewSlogProvider creates a provider that hands out loggers backed by the
// process-wide slog default logger.
func NewSlogProvider() *SlogProvider {
	return &SlogProvider{level: new(slog.LevelVar)}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *SlogProvider) GetLogger() Logger {
	return &slogLogger{logger: slog.Default()}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return &slogLogger{logger: slog.Default().With(ComponentKey, name)}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *SlogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewSlogProvider()
)

// SetProvider replaces the package-level logger provider.
// Intended for tests and applications that bring their own backend.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger from the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a named logger from the current provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}
