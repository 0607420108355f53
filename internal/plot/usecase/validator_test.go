package usecase

import (
	"errors"
	"testing"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

func TestBuildSpecDefaults(t *testing.T) {
	t.Parallel()

	spec, err := buildSpec(PlotParams{XColumn: "x", YColumn: "y"}, entity.PlotTypeLine)
	if err != nil {
		t.Fatalf("buildSpec() error = %v", err)
	}

	if spec.Width != 10 || spec.Height != 6 {
		t.Fatalf("buildSpec() size = %gx%g, want 10x6", spec.Width, spec.Height)
	}
	if spec.Bins != 10 {
		t.Fatalf("buildSpec() bins = %d, want 10", spec.Bins)
	}
	if spec.Format != entity.FormatPNG {
		t.Fatalf("buildSpec() format = %s, want png", spec.Format)
	}
	if spec.DPI != 0 {
		t.Fatalf("buildSpec() dpi = %d, want 0", spec.DPI)
	}
	if spec.XLabel != "x" || spec.YLabel != "y" {
		t.Fatalf("buildSpec() labels = %s/%s, want column names", spec.XLabel, spec.YLabel)
	}
}

func TestBuildSpecDefaultTitles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   PlotParams
		plotType entity.PlotType
		want     string
	}{
		{"heatmap", PlotParams{}, entity.PlotTypeHeatmap, "Correlation Heatmap"},
		{"histogram", PlotParams{XColumn: "age"}, entity.PlotTypeHistogram, "Distribution of age"},
		{"xy", PlotParams{XColumn: "x", YColumn: "y"}, entity.PlotTypeLine, "y vs x"},
		{"single column", PlotParams{XColumn: "v"}, entity.PlotTypeBox, "v"},
		{"explicit wins", PlotParams{XColumn: "x", Title: "My Plot"}, entity.PlotTypeBox, "My Plot"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			spec, err := buildSpec(tc.params, tc.plotType)
			if err != nil {
				t.Fatalf("buildSpec() error = %v", err)
			}
			if spec.Title != tc.want {
				t.Fatalf("buildSpec() title = %q, want %q", spec.Title, tc.want)
			}
		})
	}
}

func TestBuildSpecRejectsBadParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params PlotParams
		code   pkgerror.Code
	}{
		{"unsupported format", PlotParams{OutputFormat: "bmp"}, pkgerror.CodeUnsupportedFormat},
		{"negative width", PlotParams{Width: "-3"}, pkgerror.CodeInvalidInput},
		{"non-numeric height", PlotParams{Height: "tall"}, pkgerror.CodeInvalidInput},
		{"oversized width", PlotParams{Width: "500"}, pkgerror.CodeInvalidInput},
		{"zero bins", PlotParams{Bins: "0"}, pkgerror.CodeInvalidInput},
		{"excessive dpi", PlotParams{DPI: "10000"}, pkgerror.CodeInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := buildSpec(tc.params, entity.PlotTypeLine)

			var perr *pkgerror.Error
			if !errors.As(err, &perr) || perr.Code() != tc.code {
				t.Fatalf("buildSpec() error = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestBuildSpecNormalizesFormat(t *testing.T) {
	t.Parallel()

	spec, err := buildSpec(PlotParams{OutputFormat: " SVG "}, entity.PlotTypeLine)
	if err != nil {
		t.Fatalf("buildSpec() error = %v", err)
	}
	if spec.Format != entity.FormatSVG {
		t.Fatalf("buildSpec() format = %s, want svg", spec.Format)
	}
}
