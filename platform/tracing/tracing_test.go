package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init("storefront", false)
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}
}

func TestInitExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := initWithWriter("storefront", &buf)
	if err != nil {
		t.Fatalf("initWithWriter returned error: %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "checkout.process")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "checkout.process") {
		t.Fatalf("expected exported span in output, got %q", buf.String())
	}
}
