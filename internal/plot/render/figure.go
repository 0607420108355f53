package render

import (
	"io"
	"math"
	"strconv"

	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Figure is a fully shaped chart that can draw itself onto a rendering
// surface. The surface is created by the provider at encode time and
// serialized straight into w, so no drawing state outlives the call.
type Figure interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// rasterDPI mirrors go-chart's raster default, used when the request does
// not pin a dpi.
const rasterDPI = 92.0

func effectiveDPI(spec entity.PlotSpec) float64 {
	if spec.DPI > 0 {
		return float64(spec.DPI)
	}
	return rasterDPI
}

// pixelSize converts the spec's inch dimensions into surface pixels.
func pixelSize(spec entity.PlotSpec) (int, int) {
	dpi := effectiveDPI(spec)
	return int(spec.Width * dpi), int(spec.Height * dpi)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// frame is the shared layout of the hand-drawn figures (box, violin,
// heatmap): outer surface size plus plot-area margins.
type frame struct {
	width, height            int
	left, right, top, bottom int
}

func (f frame) plotWidth() int  { return f.width - f.left - f.right }
func (f frame) plotHeight() int { return f.height - f.top - f.bottom }

// yScale maps data values onto plot-area pixels, larger values up.
type yScale struct {
	min, max    float64
	top, bottom int
}

func (s yScale) y(v float64) int {
	span := s.max - s.min
	if span == 0 {
		return (s.top + s.bottom) / 2
	}
	return s.bottom - int((v-s.min)/span*float64(s.bottom-s.top))
}

func paddedRange(lo, hi float64) (float64, float64) {
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

func axisTicks(min, max float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	ticks := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range ticks {
		ticks[i] = min + step*float64(i)
	}
	return ticks
}

func fillRect(r chart.Renderer, x, y, w, h int, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.Close()
	r.Fill()
}

func fillStrokeRect(r chart.Renderer, x, y, w, h int, fill, stroke drawing.Color, strokeWidth float64) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(strokeWidth)
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.Close()
	r.FillStroke()
}

func strokeLine(r chart.Renderer, x1, y1, x2, y2 int, c drawing.Color, width float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(x1, y1)
	r.LineTo(x2, y2)
	r.Stroke()
}

func textCentered(r chart.Renderer, s string, cx, baseline int) {
	tb := r.MeasureText(s)
	r.Text(s, cx-tb.Width()/2, baseline)
}

func textRightAligned(r chart.Renderer, s string, right, baseline int) {
	tb := r.MeasureText(s)
	r.Text(s, right-tb.Width(), baseline)
}

// drawFrame paints the background, axis lines, evenly spaced y ticks with
// labels, the title, and a rotated y-axis name. Callers draw their marks
// inside the plot area afterwards.
func drawFrame(r chart.Renderer, f frame, scale yScale, title, yLabel string) {
	fillRect(r, 0, 0, f.width, f.height, chart.ColorWhite)

	axisColor := drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	gridColor := drawing.Color{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}

	r.SetFontSize(10)
	r.SetFontColor(axisColor)
	for _, tick := range axisTicks(scale.min, scale.max, 5) {
		y := scale.y(tick)
		strokeLine(r, f.left, y, f.width-f.right, y, gridColor, 1)
		strokeLine(r, f.left-4, y, f.left, y, axisColor, 1)
		textRightAligned(r, formatValue(tick), f.left-8, y+4)
	}

	strokeLine(r, f.left, f.top, f.left, f.height-f.bottom, axisColor, 1)
	strokeLine(r, f.left, f.height-f.bottom, f.width-f.right, f.height-f.bottom, axisColor, 1)

	if title != "" {
		r.SetFontSize(14)
		r.SetFontColor(chart.ColorBlack)
		textCentered(r, title, f.width/2, f.top-12)
	}

	if yLabel != "" {
		r.SetFontSize(11)
		r.SetFontColor(axisColor)
		tb := r.MeasureText(yLabel)
		r.SetTextRotation(-math.Pi / 2)
		r.Text(yLabel, 14, (f.top+f.height-f.bottom)/2+tb.Width()/2)
		r.ClearTextRotation()
	}
}
