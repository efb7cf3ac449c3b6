package controller

import (
	"context"
	"time"

	"github.com/slotware/espeed/telemetry"
)

type telemetryClient interface {
	CreateSession(ctx context.Context, name string, probes telemetry.Probes) (string, error)
	SetStartTime(ctx context.Context, startTime time.Time) error
	AddEvent(ctx context.Context, note string, now time.Time) error
	AddStage(ctx context.Context, name string, now time.Time) error
	Done(ctx context.Context) error
}

type noopTelemetryClient struct{}

var _ telemetryClient = noopTelemetryClient{}

// AddEvent implements telemetryClient.
func (n noopTelemetryClient) AddEvent(ctx context.Context, note string, now time.Time) error {
	return nil
}

// AddStage implements telemetryClient.
func (n noopTelemetryClient) AddStage(ctx context.Context, name string, now time.Time) error {
	return nil
}

// CreateSession implements telemetryClient.
func (n noopTelemetryClient) CreateSession(ctx context.Context, name string, probes telemetry.Probes) (string, error) {
	return "", nil
}

// Done implements telemetryClient.
func (n noopTelemetryClient) Done(ctx context.Context) error {
	return nil
}

// SetStartTime implements telemetryClient.
func (n noopTelemetryClient) SetStartTime(ctx context.Context, startTime time.Time) error {
	return nil
}
