package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/metrics"

	"github.com/gin-gonic/gin"
)

type httpConfig struct {
	origins []string
	rate    int
}

func (c httpConfig) GetHTTPAddr() string           { return ":0" }
func (c httpConfig) GetCORSAllowAll() bool         { return false }
func (c httpConfig) GetCORSOrigins() []string      { return c.origins }
func (c httpConfig) GetCORSAllowCreds() bool       { return false }
func (c httpConfig) GetCheckoutRatePerMinute() int { return c.rate }

type checker struct {
	name string
	err  error
}

func (c checker) Name() string {
	return c.name
}

func (c checker) Ping(context.Context) error {
	return c.err
}

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/ping", ctx.CheckoutLimiter.RateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, true)
	})
}

func newApp(health []apphttp.HealthChecker, rate int) *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config:  httpConfig{origins: []string{"http://localhost:3000"}, rate: rate},
		Logger:  logger.NewWithWriter("production", io.Discard),
		Health:  health,
		Metrics: metrics.New(),
		Modules: []apphttp.Module{pingModule{}},
	}
}

func do(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	engine := New(newApp([]apphttp.HealthChecker{checker{name: "postgres"}}, 0))

	if rec := do(engine, http.MethodGet, "/api/health"); rec.Code != http.StatusOK {
		t.Fatalf("expected liveness 200, got %d", rec.Code)
	}
	rec := do(engine, http.MethodGet, "/api/health/ready")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"postgres":"ok"`) {
		t.Fatalf("expected ready 200 with postgres ok, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestReadinessFailsWhenDependencyDown(t *testing.T) {
	engine := New(newApp([]apphttp.HealthChecker{
		checker{name: "postgres"},
		checker{name: "redis", err: errors.New("connection refused")},
	}, 0))

	rec := do(engine, http.MethodGet, "/api/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestModulesMountedWithLimiterAndRequestID(t *testing.T) {
	engine := New(newApp(nil, 1))

	first := do(engine, http.MethodPost, "/ping")
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	if first.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if second := do(engine, http.MethodPost, "/ping"); second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", second.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	engine := New(newApp(nil, 0))
	do(engine, http.MethodGet, "/api/health")

	rec := do(engine, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `storefront_http_requests_total{route="/api/health",status="200"} 1`) {
		t.Fatalf("expected request counter in output, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCORSConfigAllowsAllWhenNoOrigins(t *testing.T) {
	cfg := corsConfig(httpConfig{})
	if !cfg.AllowAllOrigins || cfg.AllowCredentials {
		t.Fatalf("expected allow-all without credentials, got %+v", cfg)
	}

	cfg = corsConfig(httpConfig{origins: []string{"https://shop.example.com"}})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 {
		t.Fatalf("expected explicit origins, got %+v", cfg)
	}
}
