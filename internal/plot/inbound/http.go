package inbound

import (
	"context"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgrouter"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/MangalamGSinha/goplot/internal/plot/usecase"
)

type uc interface {
	Plot(ctx context.Context, in usecase.PlotInput) (entity.Artifact, error)
	Metadata(ctx context.Context) usecase.MetadataResult
	Stats(ctx context.Context) (entity.RenderStats, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, maxUploadBytes int64) {
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: maxUploadBytes}

	r.POST("/plot", end.Plot)

	r.GET("/", end.Metadata)
	r.GET("/plots/stats", end.Stats)
}
