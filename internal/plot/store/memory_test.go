package store

import (
	"context"
	"sync"
	"testing"

	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

func TestInMemoryStatsRecordAndSnapshot(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStats()
	ctx := context.Background()

	events := []entity.RenderEvent{
		{EventID: "1", PlotType: "line", Format: "png"},
		{EventID: "2", PlotType: "line", Format: "svg"},
		{EventID: "3", PlotType: "pie", Format: "png", Err: "boom"},
	}
	for _, event := range events {
		if err := s.RecordRender(ctx, event); err != nil {
			t.Fatalf("RecordRender() error = %v", err)
		}
	}

	stats, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if stats.Total != 3 {
		t.Fatalf("Snapshot() total = %d, want 3", stats.Total)
	}
	if stats.Failed != 1 {
		t.Fatalf("Snapshot() failed = %d, want 1", stats.Failed)
	}
	if stats.ByPlotType["line"] != 2 || stats.ByPlotType["pie"] != 1 {
		t.Fatalf("Snapshot() by plot type = %v", stats.ByPlotType)
	}
	if stats.ByFormat["png"] != 2 || stats.ByFormat["svg"] != 1 {
		t.Fatalf("Snapshot() by format = %v", stats.ByFormat)
	}
}

func TestInMemoryStatsSnapshotIsolation(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStats()
	ctx := context.Background()

	_ = s.RecordRender(ctx, entity.RenderEvent{EventID: "1", PlotType: "bar", Format: "png"})

	stats, _ := s.Snapshot(ctx)
	stats.ByPlotType["bar"] = 99

	again, _ := s.Snapshot(ctx)
	if again.ByPlotType["bar"] != 1 {
		t.Fatalf("Snapshot() mutated shared state: %v", again.ByPlotType)
	}
}

func TestInMemoryStatsConcurrentRecords(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStats()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RecordRender(ctx, entity.RenderEvent{PlotType: "line", Format: "png"})
		}()
	}
	wg.Wait()

	stats, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if stats.Total != 50 {
		t.Fatalf("Snapshot() total = %d, want 50", stats.Total)
	}
}
