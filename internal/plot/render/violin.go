package render

import (
	"io"
	"math"

	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/wcharczuk/go-chart/v2"
)

const violinGridPoints = 80

func buildViolin(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	groups, err := distributionGroups(spec, cols)
	if err != nil {
		return nil, err
	}

	width, height := pixelSize(spec)
	return violinFigure{
		title:  spec.Title,
		yLabel: spec.YLabel,
		width:  width,
		height: height,
		dpi:    effectiveDPI(spec),
		groups: groups,
	}, nil
}

// violinFigure draws a kernel density estimate per group, mirrored around
// the group's center line, with a tick at the median.
type violinFigure struct {
	title  string
	yLabel string
	width  int
	height int
	dpi    float64
	groups []distGroup
}

// violinShape is the sampled density of one group over its value grid.
type violinShape struct {
	grid    []float64
	density []float64
	median  float64
}

func computeViolin(values []float64) violinShape {
	sample := stats.Sample{Xs: values}
	bw := stats.BandwidthScott(sample)
	if bw <= 0 || math.IsNaN(bw) {
		// A constant group has no spread; give the kernel a nominal width
		// so the shape degenerates to a narrow bump instead of a spike.
		bw = 1
	}

	kde := &stats.KDE{Sample: sample, Kernel: stats.GaussianKernel, Bandwidth: bw}
	lo, hi := sample.Bounds()
	grid := vec.Linspace(lo-3*bw, hi+3*bw, violinGridPoints)

	return violinShape{
		grid:    grid,
		density: vec.Map(kde.PDF, grid),
		median:  sample.Quantile(0.5),
	}
}

func (f violinFigure) Render(rp chart.RendererProvider, w io.Writer) error {
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

	shapes := make([]violinShape, len(f.groups))
	min, max := math.Inf(1), math.Inf(-1)
	for i, g := range f.groups {
		shapes[i] = computeViolin(g.values)
		min = math.Min(min, shapes[i].grid[0])
		max = math.Max(max, shapes[i].grid[len(shapes[i].grid)-1])
	}
	min, max = paddedRange(min, max)

	layout := frame{width: f.width, height: f.height, left: 70, right: 20, top: 40, bottom: 40}
	scale := yScale{min: min, max: max, top: layout.top, bottom: f.height - layout.bottom}
	drawFrame(r, layout, scale, f.title, f.yLabel)

	slot := layout.plotWidth() / len(f.groups)
	halfMax := float64(slot) * 0.4
	if halfMax > 100 {
		halfMax = 100
	}

	fill := chart.ColorBlue.WithAlpha(96)
	stroke := chart.ColorBlue

	r.SetFontSize(10)
	for i, g := range f.groups {
		s := shapes[i]
		cx := layout.left + slot*i + slot/2

		peak := 0.0
		for _, d := range s.density {
			peak = math.Max(peak, d)
		}
		if peak == 0 {
			peak = 1
		}

		half := make([]int, len(s.grid))
		for j, d := range s.density {
			half[j] = int(d / peak * halfMax)
		}

		r.SetFillColor(fill)
		r.SetStrokeColor(stroke)
		r.SetStrokeWidth(1)
		r.MoveTo(cx-half[0], scale.y(s.grid[0]))
		for j := 1; j < len(s.grid); j++ {
			r.LineTo(cx-half[j], scale.y(s.grid[j]))
		}
		for j := len(s.grid) - 1; j >= 0; j-- {
			r.LineTo(cx+half[j], scale.y(s.grid[j]))
		}
		r.Close()
		r.FillStroke()

		my := scale.y(s.median)
		strokeLine(r, cx-int(halfMax/3), my, cx+int(halfMax/3), my, chart.ColorWhite, 2)

		r.SetFontColor(chart.ColorBlack)
		textCentered(r, g.label, cx, f.height-layout.bottom+18)
	}

	return r.Save(w)
}
