package scheduler

import (
	"context"
	"fmt"

	"storefront_backend/internal/orders/commands"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	exec   commands.Executor
	log    *logger.Logger
}

func NewWorker(cfg config.QueueConfig, exec commands.Executor, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	// A single goroutine applies commands in queue order; raising concurrency
	// trades ordering for throughput.
	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 1
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		StrictPriority: true,
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		exec:   exec,
		log:    log,
	}

	mux.HandleFunc(TaskOrderInsert, w.handleOrderInsert)

	return w, nil
}

func (w *Worker) handleOrderInsert(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseOrderInsertPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	return w.exec.Execute(ctx, commands.InsertOrder{ProductNames: payload.ProductNames})
}

// Run processes tasks until ctx is cancelled, then waits for in-flight tasks.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Start(w.mux); err != nil {
		w.log.Error("order worker failed to start", "error", err)
		return err
	}
	w.log.Info("order worker started")

	<-ctx.Done()
	w.server.Shutdown()
	w.log.Info("order worker stopped")
	return nil
}
