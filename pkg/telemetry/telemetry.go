// Package telemetry provides a zap-backed implementation of the component
// telemetry interfaces.
package telemetry

import (
	"context"

	"go.uber.org/zap"
)

// Recorder logs structured component events.
type Recorder struct {
	logger *zap.Logger
}

// New wraps a zap logger. A nil logger falls back to zap.NewNop.
func New(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{logger: logger}
}

// NewProduction builds a recorder with zap's production config.
func NewProduction() (*Recorder, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(logger), nil
}

// Record satisfies the Telemetry interfaces used across components.
func (r *Recorder) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload))
	for k, v := range payload {
		fields = append(fields, zap.Any(k, v))
	}
	r.logger.Info(event, fields...)
}

// Sync flushes buffered log entries.
func (r *Recorder) Sync() error {
	return r.logger.Sync()
}
