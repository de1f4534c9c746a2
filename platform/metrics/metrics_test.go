package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCheckoutCountsByOutcome(t *testing.T) {
	m := New()

	m.ObserveCheckout(OutcomeAccepted)
	m.ObserveCheckout(OutcomeAccepted)
	m.ObserveCheckout(OutcomeConflict)

	if got := testutil.ToFloat64(m.CheckoutTotal.WithLabelValues(OutcomeAccepted)); got != 2 {
		t.Fatalf("expected 2 accepted checkouts, got %v", got)
	}
	if got := testutil.ToFloat64(m.CheckoutTotal.WithLabelValues(OutcomeConflict)); got != 1 {
		t.Fatalf("expected 1 conflict checkout, got %v", got)
	}
}

func TestMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	engine := gin.New()
	engine.Use(m.Middleware())
	engine.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("/products", "200")); got != 1 {
		t.Fatalf("expected 1 request recorded, got %v", got)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "storefront_http_requests_total") {
		t.Fatal("expected metrics output to include request counter")
	}
}
