package core

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger provides feature-scoped structured logging on top of slog
type Logger struct {
	*slog.Logger
	mu       *sync.Mutex
	features map[string]*slog.Logger
}

// NewLoggerWithWriter creates a logger writing to w at the given level
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return &Logger{
		Logger:   slog.New(handler),
		mu:       &sync.Mutex{},
		features: make(map[string]*slog.Logger),
	}
}

// ForFeature returns a logger specific to a feature
func (l *Logger) ForFeature(featureName string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	featureLogger, exists := l.features[featureName]
	if !exists {
		featureLogger = l.Logger.With("feature", featureName)
		l.features[featureName] = featureLogger
	}

	return &Logger{
		Logger:   featureLogger,
		mu:       l.mu,
		features: l.features,
	}
}

// WithContext returns a logger carrying the request id set by chi's RequestID middleware
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID := middleware.GetReqID(ctx); requestID != "" {
		return &Logger{
			Logger:   l.Logger.With("request_id", requestID),
			mu:       l.mu,
			features: l.features,
		}
	}

	return l
}

// LogFeatureError logs a feature-specific error
func (l *Logger) LogFeatureError(featureName, message string, err error, attrs ...any) {
	featureLogger := l.ForFeature(featureName)
	allAttrs := append([]any{"error", err}, attrs...)
	featureLogger.Error(message, allAttrs...)
}
