package plot

import (
	"context"
	"time"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgconfig"
	"github.com/MangalamGSinha/goplot/internal/pkg/pkgrouter"
	"github.com/MangalamGSinha/goplot/internal/pkg/pkgroutine"
	"github.com/MangalamGSinha/goplot/internal/pkg/pkguid"
	"github.com/MangalamGSinha/goplot/internal/plot/event"
	"github.com/MangalamGSinha/goplot/internal/plot/inbound"
	"github.com/MangalamGSinha/goplot/internal/plot/store"
	"github.com/MangalamGSinha/goplot/internal/plot/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	stats := store.NewInMemoryStats()
	bus := event.NewBus(512)

	var runner event.Runner
	if dep.Goroutine != nil {
		runner = dep.Goroutine
	}
	consumer := event.NewAuditConsumer(bus, event.NewStatsRecorder(stats), runner, event.ConsumerConfig{
		Workers:     4,
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start(dep.Context)

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	uc := usecase.New(usecase.Dependency{
		Stats:  stats,
		Events: bus,
		ID:     dep.ID,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetInt("modules.plot.max_upload_bytes"))

	return consumer.Stop, nil
}
