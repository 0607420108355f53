package render

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/wcharczuk/go-chart/v2"
)

func numericColumn(name string, values ...float64) *entity.Column {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return &entity.Column{Name: name, Type: entity.ColumnNumeric, Cells: cells, Floats: values}
}

func categoricalColumn(name string, cells ...string) *entity.Column {
	return &entity.Column{Name: name, Type: entity.ColumnCategorical, Cells: cells}
}

func testSpec(plotType entity.PlotType) entity.PlotSpec {
	return entity.PlotSpec{
		Type:   plotType,
		Title:  "test figure",
		XLabel: "x",
		YLabel: "y",
		Width:  4,
		Height: 3,
		Bins:   5,
		Format: entity.FormatPNG,
	}
}

func TestBuildAndEncodeEveryPlotType(t *testing.T) {
	t.Parallel()

	xs := numericColumn("x", 1, 2, 3, 4, 5, 6)
	ys := numericColumn("y", 2, 4, 3, 8, 6, 7)
	cats := categoricalColumn("group", "a", "a", "b", "b", "c", "c")

	tests := []struct {
		plotType entity.PlotType
		cols     entity.ColumnSet
	}{
		{entity.PlotTypeLine, entity.ColumnSet{X: xs, Y: ys}},
		{entity.PlotTypeScatter, entity.ColumnSet{X: xs, Y: ys}},
		{entity.PlotTypeArea, entity.ColumnSet{X: xs, Y: ys}},
		{entity.PlotTypeBar, entity.ColumnSet{X: cats, Y: ys}},
		{entity.PlotTypeHistogram, entity.ColumnSet{X: xs}},
		{entity.PlotTypePie, entity.ColumnSet{X: cats, Y: ys}},
		{entity.PlotTypeBox, entity.ColumnSet{X: cats, Y: ys}},
		{entity.PlotTypeViolin, entity.ColumnSet{X: cats, Y: ys}},
		{entity.PlotTypeHeatmap, entity.ColumnSet{Numeric: []*entity.Column{xs, ys}}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.plotType), func(t *testing.T) {
			t.Parallel()

			fig, err := Build(testSpec(tc.plotType), tc.cols)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			artifact, err := Encode(fig, testSpec(tc.plotType))
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if len(artifact.Bytes) == 0 {
				t.Fatal("Encode() produced no bytes")
			}
			if artifact.MIME != "image/png" {
				t.Fatalf("Encode() mime = %s, want image/png", artifact.MIME)
			}
		})
	}
}

func TestEncodeFormats(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{
		X: numericColumn("x", 1, 2, 3),
		Y: numericColumn("y", 3, 1, 2),
	}

	tests := []struct {
		format entity.OutputFormat
		mime   string
		magic  []byte
	}{
		{entity.FormatPNG, "image/png", []byte("\x89PNG")},
		{entity.FormatJPG, "image/jpeg", []byte{0xff, 0xd8}},
		{entity.FormatSVG, "image/svg+xml", []byte("<svg")},
		{entity.FormatPDF, "application/pdf", []byte("%PDF")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.format), func(t *testing.T) {
			t.Parallel()

			spec := testSpec(entity.PlotTypeLine)
			spec.Format = tc.format

			fig, err := Build(spec, cols)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			artifact, err := Encode(fig, spec)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if artifact.MIME != tc.mime {
				t.Fatalf("Encode() mime = %s, want %s", artifact.MIME, tc.mime)
			}
			if !bytes.HasPrefix(artifact.Bytes, tc.magic) {
				t.Fatalf("Encode() bytes do not start with %q", tc.magic)
			}
		})
	}
}

func TestBuildBarAveragesGroups(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{
		X: categoricalColumn("month", "Jan", "Feb", "Jan", "Feb"),
		Y: numericColumn("sales", 10, 30, 20, 50),
	}

	fig, err := Build(testSpec(entity.PlotTypeBar), cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	bc, ok := fig.(chart.BarChart)
	if !ok {
		t.Fatalf("Build() returned %T, want chart.BarChart", fig)
	}
	if len(bc.Bars) != 2 {
		t.Fatalf("Build() bars = %d, want 2", len(bc.Bars))
	}
	if bc.Bars[0].Label != "Jan" || bc.Bars[0].Value != 15 {
		t.Fatalf("Build() first bar = %s/%v, want Jan/15", bc.Bars[0].Label, bc.Bars[0].Value)
	}
	if bc.Bars[1].Label != "Feb" || bc.Bars[1].Value != 40 {
		t.Fatalf("Build() second bar = %s/%v, want Feb/40", bc.Bars[1].Label, bc.Bars[1].Value)
	}
}

func TestBuildHistogramBinsCounts(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{X: numericColumn("v", 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)}

	fig, err := Build(testSpec(entity.PlotTypeHistogram), cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	bc, ok := fig.(chart.BarChart)
	if !ok {
		t.Fatalf("Build() returned %T, want chart.BarChart", fig)
	}
	if len(bc.Bars) != 5 {
		t.Fatalf("Build() bins = %d, want 5", len(bc.Bars))
	}

	total := 0.0
	for _, bar := range bc.Bars {
		total += bar.Value
	}
	if total != 10 {
		t.Fatalf("Build() total count = %v, want 10", total)
	}
}

func TestBuildPieRejectsNegativeValues(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{
		X: categoricalColumn("k", "a", "b"),
		Y: numericColumn("v", 3, -1),
	}

	_, err := Build(testSpec(entity.PlotTypePie), cols)

	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeInvalidValue {
		t.Fatalf("Build() error = %v, want CodeInvalidValue", err)
	}
}

func TestBuildPieRejectsZeroTotal(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{
		X: categoricalColumn("k", "a", "b"),
		Y: numericColumn("v", 0, 0),
	}

	_, err := Build(testSpec(entity.PlotTypePie), cols)

	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeInvalidValue {
		t.Fatalf("Build() error = %v, want CodeInvalidValue", err)
	}
}

func TestBuildXYNoPlottableRows(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{
		X: numericColumn("x", math.NaN(), math.NaN()),
		Y: numericColumn("y", 1, 2),
	}

	_, err := Build(testSpec(entity.PlotTypeLine), cols)

	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeRenderFailed {
		t.Fatalf("Build() error = %v, want CodeRenderFailed", err)
	}
}

func TestBuildBoxSingleColumn(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{X: numericColumn("v", 1, 2, 3, 4, 5, 6, 7, 8)}

	fig, err := Build(testSpec(entity.PlotTypeBox), cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	artifact, err := Encode(fig, testSpec(entity.PlotTypeBox))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.HasPrefix(artifact.Bytes, []byte("\x89PNG")) {
		t.Fatal("Encode() did not produce a png")
	}
}

func TestBuildViolinConstantValues(t *testing.T) {
	t.Parallel()

	cols := entity.ColumnSet{
		X: categoricalColumn("group", "a", "a", "b", "b"),
		Y: numericColumn("v", 5, 5, 5, 5),
	}

	fig, err := Build(testSpec(entity.PlotTypeViolin), cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	vf, ok := fig.(violinFigure)
	if !ok {
		t.Fatalf("Build() returned %T, want violinFigure", fig)
	}
	for _, g := range vf.groups {
		shape := computeViolin(g.values)
		if shape.median != 5 {
			t.Fatalf("computeViolin() median = %v, want 5", shape.median)
		}
	}

	artifact, err := Encode(fig, testSpec(entity.PlotTypeViolin))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(artifact.Bytes) == 0 {
		t.Fatal("Encode() produced no bytes")
	}
}

func TestComputeBoxQuartiles(t *testing.T) {
	t.Parallel()

	b := computeBox([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})

	if b.med != 5 {
		t.Fatalf("computeBox() median = %v, want 5", b.med)
	}
	if b.q1 >= b.med || b.q3 <= b.med {
		t.Fatalf("computeBox() quartiles out of order: %+v", b)
	}
	if b.lo != 1 || b.hi != 9 {
		t.Fatalf("computeBox() whiskers = %v/%v, want 1/9", b.lo, b.hi)
	}
}

func TestComputeBoxClampsOutliers(t *testing.T) {
	t.Parallel()

	b := computeBox([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})

	if b.hi == 100 {
		t.Fatal("computeBox() whisker reached an outlier")
	}
}

func TestPearson(t *testing.T) {
	t.Parallel()

	if got := pearson([]float64{1, 2, 3}, []float64{2, 4, 6}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("pearson() = %v, want 1", got)
	}
	if got := pearson([]float64{1, 2, 3}, []float64{6, 4, 2}); math.Abs(got+1) > 1e-9 {
		t.Fatalf("pearson() = %v, want -1", got)
	}
	if got := pearson([]float64{1, 1, 1}, []float64{2, 4, 6}); !math.IsNaN(got) {
		t.Fatalf("pearson() on constant column = %v, want NaN", got)
	}
	if got := pearson([]float64{1, math.NaN()}, []float64{2, 3}); !math.IsNaN(got) {
		t.Fatalf("pearson() with one complete pair = %v, want NaN", got)
	}
}

func TestBuildHeatmapMatrix(t *testing.T) {
	t.Parallel()

	a := numericColumn("a", 1, 2, 3, 4)
	b := numericColumn("b", 2, 4, 6, 8)
	cols := entity.ColumnSet{Numeric: []*entity.Column{a, b}}

	fig, err := Build(testSpec(entity.PlotTypeHeatmap), cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	hm, ok := fig.(heatmapFigure)
	if !ok {
		t.Fatalf("Build() returned %T, want heatmapFigure", fig)
	}
	if hm.matrix[0][0] != 1 || hm.matrix[1][1] != 1 {
		t.Fatalf("Build() diagonal = %v/%v, want 1/1", hm.matrix[0][0], hm.matrix[1][1])
	}
	if math.Abs(hm.matrix[0][1]-1) > 1e-9 {
		t.Fatalf("Build() off-diagonal = %v, want 1", hm.matrix[0][1])
	}
	if hm.matrix[0][1] != hm.matrix[1][0] {
		t.Fatal("Build() matrix is not symmetric")
	}
}
