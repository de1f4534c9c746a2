// Package orders executes database commands that record orders.
package orders

import (
	"context"
	"fmt"

	"storefront_backend/internal/orders/commands"
	"storefront_backend/internal/orders/repository"
	"storefront_backend/platform/logger"

	"github.com/google/uuid"
)

// Executor applies order commands to the store.
type Executor struct {
	repo  repository.Writer
	log   *logger.Logger
	newID func() uuid.UUID
}

// NewExecutor creates an executor writing through repo.
func NewExecutor(repo repository.Writer, log *logger.Logger) *Executor {
	return &Executor{repo: repo, log: log, newID: uuid.New}
}

// Execute implements commands.Executor.
func (e *Executor) Execute(ctx context.Context, cmd commands.Command) error {
	switch c := cmd.(type) {
	case commands.InsertOrder:
		order, err := e.repo.InsertOrder(ctx, e.newID(), c.ProductNames)
		if err != nil {
			e.log.WithContext(ctx).DatabaseError("insert_order", err)
			return err
		}
		e.log.WithContext(ctx).Info("order recorded", "order_id", order.ID, "items", len(order.ProductNames))
		return nil
	default:
		return fmt.Errorf("unsupported command %q", cmd.CommandName())
	}
}

// Compile-time check that Executor implements commands.Executor.
var _ commands.Executor = (*Executor)(nil)
