package render

import (
	"fmt"
	"io"
	"math"

	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/aclements/go-moremath/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func buildHeatmap(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	n := len(cols.Numeric)
	names := make([]string, n)
	matrix := make([][]float64, n)
	for i, col := range cols.Numeric {
		names[i] = col.Name
		matrix[i] = make([]float64, n)
		for j, other := range cols.Numeric {
			if i == j {
				matrix[i][j] = 1
				continue
			}
			matrix[i][j] = pearson(col.Floats, other.Floats)
		}
	}

	width, height := pixelSize(spec)
	return heatmapFigure{
		title:  spec.Title,
		width:  width,
		height: height,
		dpi:    effectiveDPI(spec),
		names:  names,
		matrix: matrix,
	}, nil
}

// pearson computes the correlation over the rows where both columns carry a
// value. It returns NaN when fewer than two such rows exist or when either
// column is constant over them.
func pearson(a, b []float64) float64 {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(a))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}

	mx := stats.Mean(xs)
	my := stats.Mean(ys)
	var num, dx, dy float64
	for i := range xs {
		num += (xs[i] - mx) * (ys[i] - my)
		dx += (xs[i] - mx) * (xs[i] - mx)
		dy += (ys[i] - my) * (ys[i] - my)
	}
	if dx == 0 || dy == 0 {
		return math.NaN()
	}
	return num / math.Sqrt(dx*dy)
}

// heatmapFigure draws the correlation matrix as a colored grid, red for
// positive, blue for negative, gray for undefined, with the coefficient
// annotated in each cell.
type heatmapFigure struct {
	title  string
	width  int
	height int
	dpi    float64
	names  []string
	matrix [][]float64
}

func (f heatmapFigure) Render(rp chart.RendererProvider, w io.Writer) error {
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

	fillRect(r, 0, 0, f.width, f.height, chart.ColorWhite)

	r.SetFontSize(10)
	maxLabel := 0
	for _, name := range f.names {
		if w := r.MeasureText(name).Width(); w > maxLabel {
			maxLabel = w
		}
	}

	layout := frame{width: f.width, height: f.height, left: maxLabel + 16, right: 20, top: 40, bottom: 30}
	n := len(f.names)
	cellW := layout.plotWidth() / n
	cellH := layout.plotHeight() / n

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := f.matrix[i][j]
			x := layout.left + cellW*j
			y := layout.top + cellH*i
			fillStrokeRect(r, x, y, cellW, cellH, corrColor(v), chart.ColorWhite, 1)

			label := "n/a"
			if !math.IsNaN(v) {
				label = fmt.Sprintf("%.2f", v)
			}
			r.SetFontColor(chart.ColorBlack)
			if !math.IsNaN(v) && math.Abs(v) > 0.6 {
				r.SetFontColor(chart.ColorWhite)
			}
			textCentered(r, label, x+cellW/2, y+cellH/2+4)
		}
	}

	r.SetFontColor(chart.ColorBlack)
	for i, name := range f.names {
		textRightAligned(r, name, layout.left-6, layout.top+cellH*i+cellH/2+4)
		textCentered(r, name, layout.left+cellW*i+cellW/2, f.height-layout.bottom+16)
	}

	if f.title != "" {
		r.SetFontSize(14)
		textCentered(r, f.title, f.width/2, layout.top-12)
	}

	return r.Save(w)
}

var (
	corrPositive = drawing.Color{R: 0xb2, G: 0x18, B: 0x2b, A: 0xff}
	corrNegative = drawing.Color{R: 0x21, G: 0x66, B: 0xac, A: 0xff}
	corrMissing  = drawing.Color{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// corrColor maps a coefficient onto a diverging white-to-red scale for
// positive values and white-to-blue for negative ones.
func corrColor(v float64) drawing.Color {
	if math.IsNaN(v) {
		return corrMissing
	}
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	if v >= 0 {
		return blendColor(chart.ColorWhite, corrPositive, v)
	}
	return blendColor(chart.ColorWhite, corrNegative, -v)
}

func blendColor(from, to drawing.Color, t float64) drawing.Color {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return drawing.Color{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: 0xff,
	}
}
