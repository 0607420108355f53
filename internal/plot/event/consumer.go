package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.RenderEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// Runner schedules long-lived goroutines so the application can bound and
// drain them on shutdown.
type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

// AuditConsumer drains the bus with a worker pool and hands each render
// event to its handler, retrying with exponential backoff. Events are
// deduplicated by EventID so a redelivered event is counted once. Workers
// run through the runner and exit when the bus closes or the start context
// is canceled.
type AuditConsumer struct {
	bus         *Bus
	handler     Handler
	runner      Runner
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewAuditConsumer(bus *Bus, handler Handler, runner Runner, cfg ConsumerConfig) *AuditConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &AuditConsumer{
		bus:         bus,
		handler:     handler,
		runner:      runner,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *AuditConsumer) Start(ctx context.Context) {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		run := func(ctx context.Context) error {
			defer c.wg.Done()
			c.worker(ctx)
			return nil
		}

		if c.runner != nil {
			c.runner.Go(ctx, run)
			continue
		}
		go func() { _ = run(ctx) }()
	}
}

func (c *AuditConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AuditConsumer) worker(ctx context.Context) {
	for {
		select {
		case event, ok := <-c.bus.Subscribe():
			if !ok {
				return
			}
			c.processEvent(event)
		case <-ctx.Done():
			return
		}
	}
}

func (c *AuditConsumer) processEvent(event entity.RenderEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate render event", "event_id", event.EventID, "plot_type", event.PlotType)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to record render event after retries", "event_id", event.EventID, "plot_type", event.PlotType, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

// Store receives the deduplicated render events for aggregation.
type Store interface {
	RecordRender(ctx context.Context, event entity.RenderEvent) error
}

// StatsRecorder folds render events into the stats store.
type StatsRecorder struct {
	store Store
}

func NewStatsRecorder(store Store) *StatsRecorder {
	return &StatsRecorder{store: store}
}

func (r *StatsRecorder) Handle(ctx context.Context, event entity.RenderEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}
	if r.store == nil {
		return errors.New("missing stats store")
	}

	if err := r.store.RecordRender(ctx, event); err != nil {
		return err
	}

	slog.Info("recorded render event", "event_id", event.EventID, "plot_type", event.PlotType, "format", event.Format, "duration_ms", event.DurationMS)
	return nil
}
