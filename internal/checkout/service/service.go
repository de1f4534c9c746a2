// Package service implements the checkout workflow: resolve product names,
// run the interaction check, and enqueue the order write on a clean result.
package service

import (
	"context"
	"fmt"

	"storefront_backend/internal/checkout/ports"
	"storefront_backend/internal/orders/commands"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InteractionError reports that the interaction service blocked the checkout.
type InteractionError struct {
	Message      string
	Interactions [][]string
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("interaction conflict: %s", e.Message)
}

// Service processes checkouts.
type Service struct {
	names   ports.NameResolver
	checker ports.InteractionChecker
	queue   commands.Queue
	metrics *metrics.Metrics
	log     *logger.Logger
	tracer  trace.Tracer
}

// New creates a new checkout service. m may be nil.
func New(names ports.NameResolver, checker ports.InteractionChecker, queue commands.Queue, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		names:   names,
		checker: checker,
		queue:   queue,
		metrics: m,
		log:     log,
		tracer:  otel.Tracer("checkout"),
	}
}

// Process runs a checkout for ids. It enqueues exactly one InsertOrder when
// the interaction check comes back clean and nothing otherwise. A blocked
// check is returned as *InteractionError.
func (s *Service) Process(ctx context.Context, ids []int32) (err error) {
	ctx, span := s.tracer.Start(ctx, "checkout.Process")
	defer span.End()
	span.SetAttributes(attribute.Int("checkout.ids", len(ids)))

	outcome := metrics.OutcomeFailed
	defer func() {
		s.metrics.ObserveCheckout(outcome)
		if err != nil && outcome == metrics.OutcomeFailed {
			span.RecordError(err)
			span.SetStatus(codes.Error, "checkout failed")
		}
	}()

	log := s.log.WithContext(ctx)

	names, err := s.names.ResolveProductNames(ctx, ids)
	if err != nil {
		return err
	}

	verdict, err := s.checker.CheckInteractions(ctx, names)
	if err != nil {
		kind := apperr.GetKind(err)
		if kind == apperr.KindUnknown {
			kind = apperr.KindInternal
		}
		return apperr.Wrap(kind, "interaction check failed", err).WithOp("checkout.Process")
	}

	if verdict.Blocked {
		outcome = metrics.OutcomeConflict
		log.InteractionConflict(verdict.Message, names, verdict.Interactions)
		return &InteractionError{Message: verdict.Message, Interactions: verdict.Interactions}
	}

	cmd := commands.InsertOrder{ProductNames: names}
	if err := s.queue.Enqueue(ctx, cmd); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to enqueue order", err).WithOp("checkout.Process")
	}

	outcome = metrics.OutcomeAccepted
	log.CommandEnqueued(cmd.CommandName(), len(names))
	return nil
}
