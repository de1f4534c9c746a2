package commands

import (
	"context"
	"sync"
)

const defaultBuffer = 64

// ChannelQueue is an in-process Queue backed by a buffered channel.
// The sending side is guarded by a mutex so that senders are serialised and
// Close can never race a send on the channel.
type ChannelQueue struct {
	mu     sync.Mutex
	ch     chan Command
	closed bool
}

// NewChannelQueue creates a queue holding up to buffer pending commands.
func NewChannelQueue(buffer int) *ChannelQueue {
	if buffer < 1 {
		buffer = defaultBuffer
	}
	return &ChannelQueue{ch: make(chan Command, buffer)}
}

// Enqueue hands cmd to the consumer. It blocks while the buffer is full and
// gives up when ctx is done.
func (q *ChannelQueue) Enqueue(ctx context.Context, cmd Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Commands returns the receiving side for a consumer.
func (q *ChannelQueue) Commands() <-chan Command {
	return q.ch
}

// Close stops accepting commands. Commands already queued stay readable
// until the consumer drains them.
func (q *ChannelQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.ch)
	return nil
}

// Compile-time check that ChannelQueue implements Queue.
var _ Queue = (*ChannelQueue)(nil)
