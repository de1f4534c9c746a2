package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"storefront_backend/internal/checkout/ports"
	"storefront_backend/internal/checkout/service"
	"storefront_backend/internal/orders/commands"
	"storefront_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type mapResolver map[int32]string

func (m mapResolver) ResolveProductNames(_ context.Context, ids []int32) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := m[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

type stubChecker struct {
	verdict ports.InteractionVerdict
	err     error
}

func (s stubChecker) CheckInteractions(context.Context, []string) (ports.InteractionVerdict, error) {
	return s.verdict, s.err
}

func newEngine(checker ports.InteractionChecker, queue commands.Queue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	names := mapResolver{1: "Aspirin", 2: "Warfarin", 3: "Ibuprofen"}
	svc := service.New(names, checker, queue, nil, logger.NewWithWriter("production", io.Discard))

	engine := gin.New()
	engine.POST("/products", New(svc).Checkout)
	return engine
}

func post(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutConflictReturnsPayload(t *testing.T) {
	queue := commands.NewChannelQueue(4)
	engine := newEngine(stubChecker{verdict: ports.InteractionVerdict{
		Message:      "conflict",
		Interactions: [][]string{{"Aspirin", "Warfarin"}},
		Blocked:      true,
	}}, queue)

	rec := post(engine, `[1,2]`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message      string     `json:"message"`
		Interactions [][]string `json:"interactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "conflict" || !reflect.DeepEqual(body.Interactions, [][]string{{"Aspirin", "Warfarin"}}) {
		t.Fatalf("unexpected body %+v", body)
	}

	_ = queue.Close()
	if _, ok := <-queue.Commands(); ok {
		t.Fatal("expected no command to be enqueued")
	}
}

func TestCheckoutCleanReturnsTrue(t *testing.T) {
	queue := commands.NewChannelQueue(4)
	engine := newEngine(stubChecker{verdict: ports.InteractionVerdict{Message: "ok"}}, queue)

	rec := post(engine, `[3]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != "true" {
		t.Fatalf("expected body true, got %q", rec.Body.String())
	}

	_ = queue.Close()
	var got []commands.Command
	for cmd := range queue.Commands() {
		got = append(got, cmd)
	}
	want := []commands.Command{commands.InsertOrder{ProductNames: []string{"Ibuprofen"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCheckoutMalformedBodyIsBadRequest(t *testing.T) {
	engine := newEngine(stubChecker{}, commands.NewChannelQueue(1))

	for _, body := range []string{`{"ids":[1]}`, `["a"]`, `[1,`} {
		rec := post(engine, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"error":"invalid request"`) {
			t.Fatalf("body %s: unexpected response %s", body, rec.Body.String())
		}
	}
}

func TestCheckoutUpstreamFailureIsOpaque(t *testing.T) {
	engine := newEngine(stubChecker{err: errors.New("dial tcp: connection refused")}, commands.NewChannelQueue(1))

	rec := post(engine, `[3]`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("expected opaque error, got %s", rec.Body.String())
	}
}
