package store

import (
	"context"
	"sync"

	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

// InMemoryStats accumulates render counters for the lifetime of the
// process. Plots themselves are never persisted; only the aggregate
// counts survive a request.
type InMemoryStats struct {
	mu         sync.RWMutex
	total      int64
	failed     int64
	byPlotType map[string]int64
	byFormat   map[string]int64
}

func NewInMemoryStats() *InMemoryStats {
	return &InMemoryStats{
		byPlotType: make(map[string]int64),
		byFormat:   make(map[string]int64),
	}
}

func (s *InMemoryStats) RecordRender(ctx context.Context, event entity.RenderEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	if event.Err != "" {
		s.failed++
	}
	s.byPlotType[event.PlotType]++
	s.byFormat[event.Format]++

	return nil
}

func (s *InMemoryStats) Snapshot(ctx context.Context) (entity.RenderStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byPlotType := make(map[string]int64, len(s.byPlotType))
	for k, v := range s.byPlotType {
		byPlotType[k] = v
	}
	byFormat := make(map[string]int64, len(s.byFormat))
	for k, v := range s.byFormat {
		byFormat[k] = v
	}

	return entity.RenderStats{
		Total:      s.total,
		Failed:     s.failed,
		ByPlotType: byPlotType,
		ByFormat:   byFormat,
	}, nil
}
