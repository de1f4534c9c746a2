package commands

import (
	"context"

	"storefront_backend/platform/logger"
)

// Dispatcher drains a ChannelQueue and executes each command in order.
type Dispatcher struct {
	queue *ChannelQueue
	exec  Executor
	log   *logger.Logger
}

// NewDispatcher creates a consumer for queue.
func NewDispatcher(queue *ChannelQueue, exec Executor, log *logger.Logger) *Dispatcher {
	return &Dispatcher{queue: queue, exec: exec, log: log}
}

// Run executes commands until the queue is closed and drained. Failed
// commands are logged and dropped; there is no retry.
func (d *Dispatcher) Run(ctx context.Context) error {
	execCtx := context.WithoutCancel(ctx)
	for cmd := range d.queue.Commands() {
		if err := d.exec.Execute(execCtx, cmd); err != nil {
			d.log.Error("command failed", "command", cmd.CommandName(), "error", err)
			continue
		}
		d.log.Debug("command executed", "command", cmd.CommandName())
	}
	d.log.Info("command dispatcher stopped")
	return nil
}
