// Package client provides the HTTP client for the medication interaction-check service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// HeaderAPIKey carries the gateway API key on every request.
const HeaderAPIKey = "X-Gravitee-Api-Key"

const maxResponseBytes = 1 << 20

// ErrUnavailable marks failures to reach the service or get a usable reply
// from it, as opposed to a reply that could not be understood.
var ErrUnavailable = errors.New("interaction service unavailable")

var errMissingMessage = errors.New("missing message")

// Config configures the client. A zero Timeout means requests never time out.
type Config struct {
	URL     string        `validate:"required,url"`
	APIKey  string        `validate:"required"`
	Timeout time.Duration `validate:"min=0"`
}

// CheckRequest is the payload sent to the service.
type CheckRequest struct {
	Medications []string `json:"medications"`
}

// CheckResponse is the service's verdict. A non-nil Interactions (including
// an empty list) means the combination must not be ordered.
type CheckResponse struct {
	Message      string     `json:"message"`
	Interactions [][]string `json:"interactions"`
}

// HasInteractions reports whether the service flagged a conflict.
func (r CheckResponse) HasInteractions() bool {
	return r.Interactions != nil
}

type wireResponse struct {
	Message      *string    `json:"message"`
	Interactions [][]string `json:"interactions"`
}

// decodeResponse requires a message; bodies like {} or null are rejected.
func decodeResponse(r io.Reader) (CheckResponse, error) {
	var wire wireResponse
	if err := json.NewDecoder(io.LimitReader(r, maxResponseBytes)).Decode(&wire); err != nil {
		return CheckResponse{}, err
	}
	if wire.Message == nil {
		return CheckResponse{}, errMissingMessage
	}
	return CheckResponse{Message: *wire.Message, Interactions: wire.Interactions}, nil
}

// Client is the HTTP client for the interaction-check service.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	log        *logger.Logger
	tracer     trace.Tracer
}

// New creates a new interaction-check client.
func New(cfg Config, val *validator.Validator, log *logger.Logger) (*Client, error) {
	if err := val.Struct(cfg); err != nil {
		return nil, fmt.Errorf("interactions client config: %w", err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		log:        log,
		tracer:     otel.Tracer("interactions-client"),
	}, nil
}

// Check submits medications and returns the service's verdict. A non-2xx
// reply is never treated as clean: it is a conflict if it reports
// interactions and an ErrUnavailable failure otherwise.
func (c *Client) Check(ctx context.Context, medications []string) (CheckResponse, error) {
	ctx, span := c.tracer.Start(ctx, "interactions.Check")
	defer span.End()
	span.SetAttributes(attribute.Int("medications.count", len(medications)))

	if medications == nil {
		medications = []string{}
	}
	body, err := json.Marshal(CheckRequest{Medications: medications})
	if err != nil {
		return CheckResponse{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return CheckResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	log := c.log.WithContext(ctx)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		log.Error("interaction check request failed", "error", err)
		return CheckResponse{}, fmt.Errorf("http request: %w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	result, decodeErr := decodeResponse(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A conflict verdict is honoured whatever the status; anything else
		// from a failed call must not let the checkout through.
		if decodeErr == nil && result.HasInteractions() {
			return result, nil
		}
		span.SetStatus(codes.Error, "upstream error")
		log.Error("interaction check upstream error", "status", resp.StatusCode)
		return CheckResponse{}, fmt.Errorf("upstream error: status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	if decodeErr != nil {
		span.RecordError(decodeErr)
		span.SetStatus(codes.Error, "decode failed")
		log.Error("interaction check decode failed", "error", decodeErr)
		return CheckResponse{}, fmt.Errorf("decode response: %w", decodeErr)
	}

	span.SetAttributes(attribute.Bool("interactions.found", result.HasInteractions()))
	return result, nil
}
