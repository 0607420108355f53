package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

const (
	defaultWidth  = 10.0
	defaultHeight = 6.0
	defaultBins   = 10

	// Caps keep a single request from asking for an absurd raster.
	maxDimension = 50.0
	maxDPI       = 600
	maxBins      = 1000
)

// buildSpec normalizes the optional parameters to their defaults and
// validates every rendering parameter, producing the immutable PlotSpec.
func buildSpec(params PlotParams, plotType entity.PlotType) (entity.PlotSpec, error) {
	format, err := parseOutputFormat(params.OutputFormat)
	if err != nil {
		return entity.PlotSpec{}, err
	}

	width, err := parseDimension(params.Width, defaultWidth, "width")
	if err != nil {
		return entity.PlotSpec{}, err
	}

	height, err := parseDimension(params.Height, defaultHeight, "height")
	if err != nil {
		return entity.PlotSpec{}, err
	}

	dpi, err := parsePositiveInt(params.DPI, 0, maxDPI, "dpi")
	if err != nil {
		return entity.PlotSpec{}, err
	}

	bins, err := parsePositiveInt(params.Bins, defaultBins, maxBins, "bins")
	if err != nil {
		return entity.PlotSpec{}, err
	}

	spec := entity.PlotSpec{
		Type:    plotType,
		XColumn: params.XColumn,
		YColumn: params.YColumn,
		Title:   strings.TrimSpace(params.Title),
		XLabel:  strings.TrimSpace(params.XLabel),
		YLabel:  strings.TrimSpace(params.YLabel),
		Width:   width,
		Height:  height,
		DPI:     dpi,
		Bins:    bins,
		Format:  format,
	}

	if spec.XLabel == "" {
		spec.XLabel = spec.XColumn
	}
	if spec.YLabel == "" {
		spec.YLabel = spec.YColumn
	}
	if spec.Title == "" {
		spec.Title = defaultTitle(spec)
	}

	return spec, nil
}

func defaultTitle(spec entity.PlotSpec) string {
	switch {
	case spec.Type == entity.PlotTypeHeatmap:
		return "Correlation Heatmap"
	case spec.Type == entity.PlotTypeHistogram:
		return fmt.Sprintf("Distribution of %s", spec.XColumn)
	case spec.YColumn != "":
		return fmt.Sprintf("%s vs %s", spec.YColumn, spec.XColumn)
	default:
		return spec.XColumn
	}
}

func parseOutputFormat(value string) (entity.OutputFormat, error) {
	if value == "" {
		return entity.FormatPNG, nil
	}

	candidate := entity.OutputFormat(strings.ToLower(strings.TrimSpace(value)))
	for _, f := range entity.OutputFormats() {
		if candidate == f {
			return f, nil
		}
	}

	return "", pkgerror.NewUnsupportedFormat(fmt.Sprintf("unsupported output format: %s", value))
}

func parseDimension(raw string, def float64, name string) (float64, error) {
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, pkgerror.NewInvalidInput(fmt.Errorf("%s must be a positive number", name))
	}
	if v > maxDimension {
		return 0, pkgerror.NewInvalidInput(fmt.Errorf("%s must be at most %g inches", name, maxDimension))
	}

	return v, nil
}

func parsePositiveInt(raw string, def, maximum int, name string) (int, error) {
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, pkgerror.NewInvalidInput(fmt.Errorf("%s must be a positive integer", name))
	}
	if v > maximum {
		return 0, pkgerror.NewInvalidInput(fmt.Errorf("%s must be at most %d", name, maximum))
	}

	return v, nil
}
