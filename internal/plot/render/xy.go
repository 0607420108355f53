package render

import (
	"errors"
	"math"
	"time"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var gridStyle = chart.Style{
	StrokeColor: drawing.Color{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	StrokeWidth: 1.0,
}

// buildXY covers the three x/y series variants: line, scatter, and area.
// They share pairing and axis handling and differ only in series style.
func buildXY(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	style := xySeriesStyle(spec.Type)
	width, height := pixelSize(spec)

	var series chart.Series
	xaxis := chart.XAxis{Name: spec.XLabel, GridMajorStyle: gridStyle}

	if cols.X.Type == entity.ColumnDatetime {
		times, ys := timePairs(cols.X, cols.Y)
		if len(times) == 0 {
			return nil, pkgerror.NewRenderFailed(string(spec.Type), cols.Y.Name, errors.New("no plottable rows"))
		}
		if len(times) == 1 {
			// go-chart cannot establish a range from a single point.
			times = append(times, times[0].Add(time.Second))
			ys = append(ys, ys[0])
		}
		series = chart.TimeSeries{XValues: times, YValues: ys, Style: style}
		xaxis.ValueFormatter = chart.TimeValueFormatter
	} else {
		xs, ys := numericPairs(cols.X, cols.Y)
		if len(xs) == 0 {
			return nil, pkgerror.NewRenderFailed(string(spec.Type), cols.Y.Name, errors.New("no plottable rows"))
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = chart.ContinuousSeries{XValues: xs, YValues: ys, Style: style}
	}

	return chart.Chart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		DPI:    effectiveDPI(spec),
		XAxis:  xaxis,
		YAxis:  chart.YAxis{Name: spec.YLabel, GridMajorStyle: gridStyle},
		Series: []chart.Series{series},
	}, nil
}

func xySeriesStyle(plotType entity.PlotType) chart.Style {
	switch plotType {
	case entity.PlotTypeScatter:
		return chart.Style{
			StrokeWidth: 0,
			DotWidth:    4,
			DotColor:    chart.ColorBlue,
		}
	case entity.PlotTypeArea:
		return chart.Style{
			StrokeColor: chart.ColorBlue,
			StrokeWidth: 2,
			FillColor:   chart.ColorBlue.WithAlpha(64),
		}
	default:
		return chart.Style{
			StrokeColor: chart.ColorBlue,
			StrokeWidth: 2,
		}
	}
}

// numericPairs keeps the rows where both x and y carry a value.
func numericPairs(x, y *entity.Column) ([]float64, []float64) {
	xs := make([]float64, 0, len(x.Floats))
	ys := make([]float64, 0, len(x.Floats))
	for i, xv := range x.Floats {
		yv := y.Floats[i]
		if math.IsNaN(xv) || math.IsNaN(yv) {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	return xs, ys
}

func timePairs(x, y *entity.Column) ([]time.Time, []float64) {
	times := make([]time.Time, 0, len(x.Times))
	ys := make([]float64, 0, len(x.Times))
	for i, t := range x.Times {
		yv := y.Floats[i]
		if t.IsZero() || math.IsNaN(yv) {
			continue
		}
		times = append(times, t)
		ys = append(ys, yv)
	}
	return times, ys
}
