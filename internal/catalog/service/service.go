package service

import (
	"context"
	"errors"
	"net"

	"storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/catalog/transport"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgconn"
)

const pricePlaces = 2

// Service provides business logic for catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListProducts retrieves all products. An empty catalog yields an empty list.
func (s *Service) ListProducts(ctx context.Context) ([]transport.ProductResponse, error) {
	items, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("list_products", err)
		return nil, apperr.Wrap(storeErrorKind(err), "failed to list products", err).WithOp("catalog.ListProducts")
	}

	s.log.WithContext(ctx).Debug("products listed", "count", len(items))
	return toProductResponses(items), nil
}

// ResolveProductNames returns the names of the products matching ids.
func (s *Service) ResolveProductNames(ctx context.Context, ids []int32) ([]string, error) {
	names, err := s.repo.GetProductNamesByIDs(ctx, ids)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("resolve_product_names", err)
		return nil, apperr.Wrap(storeErrorKind(err), "failed to resolve products", err).WithOp("catalog.ResolveProductNames")
	}
	return names, nil
}

// storeErrorKind separates an unreachable store from a failing query.
func storeErrorKind(err error) apperr.Kind {
	var connectErr *pgconn.ConnectError
	var netErr *net.OpError
	if errors.As(err, &connectErr) || errors.As(err, &netErr) ||
		pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.KindUnavailable
	}
	return apperr.KindInternal
}

func toProductResponses(items []repository.Product) []transport.ProductResponse {
	resp := make([]transport.ProductResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, transport.ProductResponse{
			ID:          item.ID,
			Name:        item.Name,
			Href:        item.Href,
			Price:       item.Price.StringFixed(pricePlaces),
			Description: item.Description,
			ImageSrc:    item.ImageSrc,
			ImageAlt:    item.ImageAlt,
		})
	}
	return resp
}
