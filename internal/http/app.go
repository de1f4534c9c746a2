// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/metrics"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP settings only).
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health lists the dependencies pinged by the readiness endpoint.
	Health []HealthChecker
	// Metrics records request and checkout metrics; nil disables /metrics.
	Metrics *metrics.Metrics
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
