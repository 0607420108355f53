package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgroutine"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

type handlerFunc func(ctx context.Context, event entity.RenderEvent) error

func (h handlerFunc) Handle(ctx context.Context, event entity.RenderEvent) error {
	return h(ctx, event)
}

func TestAuditConsumerRetriesAndIdempotent(t *testing.T) {
	bus := NewBus(10)

	var attempts int32
	done := make(chan struct{})
	handler := handlerFunc(func(ctx context.Context, event entity.RenderEvent) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.New("temporary failure")
		}
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	runner := pkgroutine.NewManager(4)
	consumer := NewAuditConsumer(bus, handler, runner, ConsumerConfig{
		Workers:     1,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start(context.Background())

	event := entity.RenderEvent{EventID: "evt-1", PlotType: "line", Format: "png"}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish duplicate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("runner wait: %v", err)
	}
}

func TestAuditConsumerWorkersDrainThroughRunner(t *testing.T) {
	bus := NewBus(10)
	runner := pkgroutine.NewManager(4)

	var handled int32
	handler := handlerFunc(func(ctx context.Context, event entity.RenderEvent) error {
		atomic.AddInt32(&handled, 1)
		return nil
	})

	consumer := NewAuditConsumer(bus, handler, runner, ConsumerConfig{Workers: 2})
	consumer.Start(context.Background())

	if err := bus.Publish(context.Background(), entity.RenderEvent{EventID: "evt-1"}); err != nil {
		t.Fatalf("publish event: %v", err)
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	// With the bus closed every worker has exited, so the runner must not
	// be holding any goroutines.
	if err := runner.Wait(); err != nil {
		t.Fatalf("runner wait: %v", err)
	}
	if got := atomic.LoadInt32(&handled); got != 1 {
		t.Fatalf("handled %d events, want 1", got)
	}
}

func TestAuditConsumerExitsOnContextCancel(t *testing.T) {
	bus := NewBus(10)
	runner := pkgroutine.NewManager(4)

	consumer := NewAuditConsumer(bus, handlerFunc(func(ctx context.Context, event entity.RenderEvent) error {
		return nil
	}), runner, ConsumerConfig{Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx)
	cancel()

	// Workers must exit on cancellation without the bus ever closing.
	if err := runner.Wait(); err != nil {
		t.Fatalf("runner wait: %v", err)
	}
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := NewBus(1)
	bus.Close()

	err := bus.Publish(context.Background(), entity.RenderEvent{EventID: "evt-1"})
	if !errors.Is(err, ErrBusClosed) {
		t.Fatalf("Publish() error = %v, want ErrBusClosed", err)
	}
}

func TestStatsRecorderRequiresEventID(t *testing.T) {
	recorder := NewStatsRecorder(recorderStore{})

	if err := recorder.Handle(context.Background(), entity.RenderEvent{}); err == nil {
		t.Fatal("Handle() expected error for missing event id")
	}

	if err := recorder.Handle(context.Background(), entity.RenderEvent{EventID: "evt-1"}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
}

type recorderStore struct{}

func (recorderStore) RecordRender(ctx context.Context, event entity.RenderEvent) error {
	return nil
}
