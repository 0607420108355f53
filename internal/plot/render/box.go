package render

import (
	"errors"
	"io"
	"math"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/aclements/go-moremath/stats"
	"github.com/wcharczuk/go-chart/v2"
)

// distGroup is one labeled distribution drawn by the box and violin figures.
type distGroup struct {
	label  string
	values []float64
}

// distributionGroups shapes the resolved columns for the two distribution
// plots. With a y column the x categories each become a group over their y
// values; without one the whole numeric x column is a single group.
func distributionGroups(spec entity.PlotSpec, cols entity.ColumnSet) ([]distGroup, error) {
	if cols.Y != nil {
		labels, byLabel := groupValues(cols.X, cols.Y)
		groups := make([]distGroup, 0, len(labels))
		for _, label := range labels {
			groups = append(groups, distGroup{label: label, values: byLabel[label]})
		}
		if len(groups) == 0 {
			return nil, pkgerror.NewRenderFailed(string(spec.Type), cols.Y.Name, errors.New("no plottable rows"))
		}
		return groups, nil
	}

	values := dropNaN(cols.X.Floats)
	if len(values) == 0 {
		return nil, pkgerror.NewRenderFailed(string(spec.Type), cols.X.Name, errors.New("no numeric values"))
	}
	return []distGroup{{label: cols.X.Name, values: values}}, nil
}

func buildBox(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	groups, err := distributionGroups(spec, cols)
	if err != nil {
		return nil, err
	}

	width, height := pixelSize(spec)
	return boxFigure{
		title:  spec.Title,
		yLabel: spec.YLabel,
		width:  width,
		height: height,
		dpi:    effectiveDPI(spec),
		groups: groups,
	}, nil
}

// boxFigure draws one Tukey box-and-whisker per group: the box spans the
// quartiles, the whiskers reach the most extreme values within 1.5 IQR of
// the box, and a line marks the median.
type boxFigure struct {
	title  string
	yLabel string
	width  int
	height int
	dpi    float64
	groups []distGroup
}

type boxStats struct {
	lo, q1, med, q3, hi float64
}

func computeBox(values []float64) boxStats {
	sample := stats.Sample{Xs: values}
	q1 := sample.Quantile(0.25)
	med := sample.Quantile(0.5)
	q3 := sample.Quantile(0.75)

	iqr := q3 - q1
	loFence := q1 - 1.5*iqr
	hiFence := q3 + 1.5*iqr

	lo, hi := q1, q3
	first := true
	for _, v := range values {
		if v < loFence || v > hiFence {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return boxStats{lo: lo, q1: q1, med: med, q3: q3, hi: hi}
}

func (f boxFigure) Render(rp chart.RendererProvider, w io.Writer) error {
	r, err := rp(f.width, f.height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)
	r.SetDPI(f.dpi)

	boxes := make([]boxStats, len(f.groups))
	min, max := math.Inf(1), math.Inf(-1)
	for i, g := range f.groups {
		boxes[i] = computeBox(g.values)
		min = math.Min(min, boxes[i].lo)
		max = math.Max(max, boxes[i].hi)
	}
	min, max = paddedRange(min, max)

	layout := frame{width: f.width, height: f.height, left: 70, right: 20, top: 40, bottom: 40}
	scale := yScale{min: min, max: max, top: layout.top, bottom: f.height - layout.bottom}
	drawFrame(r, layout, scale, f.title, f.yLabel)

	slot := layout.plotWidth() / len(f.groups)
	boxW := slot * 6 / 10
	if boxW > 120 {
		boxW = 120
	}

	fill := chart.ColorBlue.WithAlpha(80)
	stroke := chart.ColorBlue
	median := chart.ColorRed

	r.SetFontSize(10)
	for i, g := range f.groups {
		b := boxes[i]
		cx := layout.left + slot*i + slot/2

		strokeLine(r, cx, scale.y(b.lo), cx, scale.y(b.q1), stroke, 1)
		strokeLine(r, cx, scale.y(b.q3), cx, scale.y(b.hi), stroke, 1)
		strokeLine(r, cx-boxW/4, scale.y(b.lo), cx+boxW/4, scale.y(b.lo), stroke, 1)
		strokeLine(r, cx-boxW/4, scale.y(b.hi), cx+boxW/4, scale.y(b.hi), stroke, 1)

		top := scale.y(b.q3)
		fillStrokeRect(r, cx-boxW/2, top, boxW, scale.y(b.q1)-top, fill, stroke, 1)
		strokeLine(r, cx-boxW/2, scale.y(b.med), cx+boxW/2, scale.y(b.med), median, 2)

		r.SetFontColor(chart.ColorBlack)
		textCentered(r, g.label, cx, f.height-layout.bottom+18)
	}

	return r.Save(w)
}
