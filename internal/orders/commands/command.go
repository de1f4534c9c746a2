// Package commands defines the database write commands produced by request
// handlers and the ordered queue that carries them to a consumer.
package commands

import (
	"context"
	"errors"
)

// ErrQueueClosed is returned by Enqueue once the queue has been shut down.
var ErrQueueClosed = errors.New("command queue closed")

// Command is a write instruction executed asynchronously against the store.
type Command interface {
	// CommandName returns a stable identifier for the command variant.
	CommandName() string
}

// InsertOrder records an order naming the given products.
type InsertOrder struct {
	ProductNames []string `json:"productNames"`
}

// CommandInsertOrder identifies InsertOrder commands.
const CommandInsertOrder = "orders.insert"

// CommandName implements Command.
func (InsertOrder) CommandName() string { return CommandInsertOrder }

// Queue is a single ordered outbound queue for database write commands,
// safe for concurrent use by request handlers.
type Queue interface {
	Enqueue(ctx context.Context, cmd Command) error
	Close() error
}

// Executor applies a command to the store.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}
