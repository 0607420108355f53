package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/MangalamGSinha/goplot/internal/plot"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.plot.enabled") {
		closer, err := plot.New(plot.Dependency{
			Config:    a.config,
			Goroutine: a.goroutine,
			Router:    a.router,
			Context:   a.ctx,
			ID:        a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module plot", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Plot"] = closer
		}
	}
}
