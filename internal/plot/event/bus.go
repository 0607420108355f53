package event

import (
	"context"
	"errors"
	"sync"

	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is a bounded in-process channel of render audit events. Publishing
// blocks when the buffer is full until a consumer drains it or the caller's
// context expires.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.RenderEvent
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.RenderEvent, buffer),
	}
}

func (b *Bus) Publish(ctx context.Context, event entity.RenderEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}

	select {
	case b.ch <- event:
		b.mu.RUnlock()
		return nil
	case <-ctx.Done():
		b.mu.RUnlock()
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.RenderEvent {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
