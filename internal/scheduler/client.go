package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	"storefront_backend/internal/orders/commands"
	"storefront_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Queue is a commands.Queue that persists commands as asynq tasks in Redis.
// Tasks land in a single queue and are consumed by the worker binary.
type Queue struct {
	mu     sync.Mutex
	client *asynq.Client
	queue  string
	closed bool
}

func NewQueue(cfg config.QueueConfig) (*Queue, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Queue{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

// Enqueue implements commands.Queue.
func (q *Queue) Enqueue(ctx context.Context, cmd commands.Command) error {
	task, err := newCommandTask(cmd)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return commands.ErrQueueClosed
	}

	_, err = q.client.EnqueueContext(ctx, task, asynq.Queue(q.queue), asynq.MaxRetry(0))
	return err
}

func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	return q.client.Close()
}

// Compile-time check that Queue implements commands.Queue.
var _ commands.Queue = (*Queue)(nil)

func queueName(cfg config.QueueConfig) string {
	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}
	return queue
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
