package render

import (
	"errors"
	"fmt"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/wcharczuk/go-chart/v2"
)

// buildPie sums y per x category and draws one slice per category. Slice
// values must be non-negative and must not all be zero; a pie cannot
// represent either.
func buildPie(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	labels, groups := groupValues(cols.X, cols.Y)
	if len(labels) == 0 {
		return nil, pkgerror.NewRenderFailed(string(spec.Type), cols.Y.Name, errors.New("no plottable rows"))
	}

	total := 0.0
	values := make([]chart.Value, 0, len(labels))
	for _, label := range labels {
		sum := 0.0
		for _, v := range groups[label] {
			if v < 0 {
				return nil, pkgerror.NewInvalidValue(fmt.Sprintf("pie values must be non-negative, got %s for %s", formatValue(v), label))
			}
			sum += v
		}
		total += sum
		values = append(values, chart.Value{Label: label, Value: sum})
	}
	if total == 0 {
		return nil, pkgerror.NewInvalidValue("pie values sum to zero")
	}

	width, height := pixelSize(spec)

	return chart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		DPI:    effectiveDPI(spec),
		Values: values,
	}, nil
}
