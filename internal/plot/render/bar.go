package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/aclements/go-moremath/stats"
	"github.com/wcharczuk/go-chart/v2"
)

// buildBar aggregates y by x category and draws one bar per category at the
// mean of its values. Categories keep their first-appearance order.
func buildBar(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	labels, groups := groupValues(cols.X, cols.Y)
	if len(labels) == 0 {
		return nil, pkgerror.NewRenderFailed(string(spec.Type), cols.Y.Name, errors.New("no plottable rows"))
	}

	width, height := pixelSize(spec)
	bars := make([]chart.Value, 0, len(labels))
	for _, label := range labels {
		bars = append(bars, chart.Value{
			Label: label,
			Value: stats.Mean(groups[label]),
			Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue},
		})
	}

	return chart.BarChart{
		Title:    spec.Title,
		Width:    width,
		Height:   height,
		DPI:      effectiveDPI(spec),
		BarWidth: barWidth(width, len(bars)),
		XAxis:    chart.Style{FontSize: 10},
		YAxis:    chart.YAxis{Name: spec.YLabel},
		Bars:     bars,
	}, nil
}

// buildHistogram bins the x values into equal-width intervals and draws the
// counts as bars. A constant column collapses into a single bin.
func buildHistogram(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	values := dropNaN(cols.X.Floats)
	if len(values) == 0 {
		return nil, pkgerror.NewRenderFailed(string(spec.Type), cols.X.Name, errors.New("no numeric values"))
	}

	lo, hi := stats.Bounds(values)
	bins := spec.Bins
	if lo == hi {
		bins = 1
	}

	counts := make([]int, bins)
	binWidth := (hi - lo) / float64(bins)
	for _, v := range values {
		idx := 0
		if binWidth > 0 {
			idx = int((v - lo) / binWidth)
			if idx >= bins {
				idx = bins - 1
			}
		}
		counts[idx]++
	}

	width, height := pixelSize(spec)
	bars := make([]chart.Value, bins)
	for i, count := range counts {
		edge := lo + binWidth*float64(i)
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%s-%s", formatValue(edge), formatValue(edge+binWidth)),
			Value: float64(count),
			Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorWhite},
		}
	}

	return chart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		DPI:        effectiveDPI(spec),
		BarWidth:   barWidth(width, bins),
		BarSpacing: 2,
		XAxis:      chart.Style{FontSize: 8},
		YAxis:      chart.YAxis{Name: "count"},
		Bars:       bars,
	}, nil
}

// groupValues collects the non-missing y values per x category, preserving
// the order categories first appear in the data.
func groupValues(x, y *entity.Column) ([]string, map[string][]float64) {
	var labels []string
	groups := make(map[string][]float64)
	for i, cell := range x.Cells {
		yv := y.Floats[i]
		if cell == "" || math.IsNaN(yv) {
			continue
		}
		if _, ok := groups[cell]; !ok {
			labels = append(labels, cell)
		}
		groups[cell] = append(groups[cell], yv)
	}
	return labels, groups
}

func barWidth(surfaceWidth, bars int) int {
	if bars < 1 {
		bars = 1
	}
	w := (surfaceWidth - 100) * 2 / (bars * 3)
	if w < 8 {
		return 8
	}
	if w > 100 {
		return 100
	}
	return w
}
