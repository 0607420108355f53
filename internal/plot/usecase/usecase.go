package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/pkg/pkguid"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/MangalamGSinha/goplot/internal/plot/render"
)

const (
	ServiceName    = "goplot"
	ServiceVersion = "1.5.0"
)

// StatsStore exposes the aggregate render counters.
type StatsStore interface {
	Snapshot(ctx context.Context) (entity.RenderStats, error)
}

// EventPublisher receives one audit event per plot request.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.RenderEvent) error
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Stats  StatsStore
	Events EventPublisher
	Clock  Clock
	ID     pkguid.StringID
}

type Usecase struct {
	stats  StatsStore
	events EventPublisher
	clock  Clock
	id     pkguid.StringID
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		stats:  dep.Stats,
		events: dep.Events,
		clock:  clock,
		id:     dep.ID,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Plot runs the full pipeline for one request: load the dataset, resolve
// the requested columns, validate the rendering parameters, render the
// figure, and encode it into the requested format. Every stage fails fast;
// nothing is retried and no partial image is ever returned.
func (u *Usecase) Plot(ctx context.Context, in PlotInput) (entity.Artifact, error) {
	if u.id == nil {
		return entity.Artifact{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	started := u.clock.Now()
	artifact, err := u.runPipeline(ctx, in)
	u.publishEvent(ctx, in.Params, artifact, started, err)

	if err != nil {
		return entity.Artifact{}, normalizeErr(err)
	}

	return artifact, nil
}

func (u *Usecase) runPipeline(ctx context.Context, in PlotInput) (entity.Artifact, error) {
	table, err := loadTable(ctx, in.Data)
	if err != nil {
		return entity.Artifact{}, err
	}

	plotType, err := parsePlotType(in.Params.PlotType)
	if err != nil {
		return entity.Artifact{}, err
	}

	cols, err := resolveColumns(table, plotType, in.Params.XColumn, in.Params.YColumn)
	if err != nil {
		return entity.Artifact{}, err
	}

	spec, err := buildSpec(in.Params, plotType)
	if err != nil {
		return entity.Artifact{}, err
	}

	figure, err := render.Build(spec, cols)
	if err != nil {
		return entity.Artifact{}, err
	}

	return render.Encode(figure, spec)
}

// Metadata returns the static service description. It has no failure modes
// and no side effects.
func (u *Usecase) Metadata(_ context.Context) MetadataResult {
	types := entity.PlotTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}

	formats := entity.OutputFormats()
	fnames := make([]string, 0, len(formats))
	for _, f := range formats {
		fnames = append(fnames, string(f))
	}

	return MetadataResult{
		Name:      ServiceName,
		Version:   ServiceVersion,
		PlotTypes: names,
		Formats:   fnames,
		Usage:     "POST /plot with a CSV file and plot parameters",
	}
}

// Stats returns the aggregate render counters.
func (u *Usecase) Stats(ctx context.Context) (entity.RenderStats, error) {
	if u.stats == nil {
		return entity.RenderStats{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	stats, err := u.stats.Snapshot(ctx)
	if err != nil {
		return entity.RenderStats{}, normalizeErr(err)
	}

	return stats, nil
}

func (u *Usecase) publishEvent(ctx context.Context, params PlotParams, artifact entity.Artifact, started time.Time, err error) {
	if u.events == nil {
		return
	}

	plotType := params.PlotType
	if plotType == "" {
		plotType = string(entity.PlotTypeLine)
	}
	format := params.OutputFormat
	if format == "" {
		format = string(entity.FormatPNG)
	}

	event := entity.RenderEvent{
		EventID:    u.id.Generate(),
		PlotType:   plotType,
		Format:     format,
		Bytes:      len(artifact.Bytes),
		DurationMS: u.clock.Now().Sub(started).Milliseconds(),
	}
	if err != nil {
		event.Err = err.Error()
	}

	if pubErr := u.events.Publish(ctx, event); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish render event", "event_id", event.EventID, "error", pubErr)
	}
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
