// Package observability provides structured stage-boundary event emission for
// the generation pipeline. The pipeline emits one event per stage; sinks
// forward them to whatever telemetry the host application uses.
package observability

import (
	"time"

	"go.uber.org/zap"
)

// Outcome classifies how a stage finished.
type Outcome string

// Stage outcomes
const (
	OutcomeOK       Outcome = "ok"
	OutcomeFallback Outcome = "fallback"
	OutcomeFailed   Outcome = "failed"
	OutcomeRejected Outcome = "rejected"
	OutcomeCached   Outcome = "cached"
)

// StageEvent describes one pipeline stage boundary.
type StageEvent struct {
	RequestID string        `json:"request_id,omitempty"`
	Stage     string        `json:"stage"`
	Duration  time.Duration `json:"duration"`
	Outcome   Outcome       `json:"outcome"`
	Detail    string        `json:"detail,omitempty"`
}

// EventSink consumes stage events. Implementations must be safe for
// sequential reuse across requests.
type EventSink interface {
	Emit(event StageEvent)
}

// NopSink discards all events.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(StageEvent) {}

// ZapSink logs stage events through a zap logger.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink on an existing logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Emit logs the event; failures and rejections log at warn level.
func (s *ZapSink) Emit(event StageEvent) {
	fields := []zap.Field{
		zap.String("request_id", event.RequestID),
		zap.String("stage", event.Stage),
		zap.Duration("duration", event.Duration),
		zap.String("outcome", string(event.Outcome)),
	}
	if event.Detail != "" {
		fields = append(fields, zap.String("detail", event.Detail))
	}
	switch event.Outcome {
	case OutcomeFailed, OutcomeRejected:
		s.logger.Warn("pipeline stage", fields...)
	default:
		s.logger.Info("pipeline stage", fields...)
	}
}

// NewLogger builds a zap logger at the given level and format, matching the
// host application's conventions. Format "json" selects production encoding.
func NewLogger(level, format string) *zap.Logger {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, _ := cfg.Build()
	return logger
}
