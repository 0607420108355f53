package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

func parsePlotType(value string) (entity.PlotType, error) {
	if value == "" {
		return entity.PlotTypeLine, nil
	}

	candidate := entity.PlotType(strings.ToLower(strings.TrimSpace(value)))
	for _, t := range entity.PlotTypes() {
		if candidate == t {
			return t, nil
		}
	}

	return "", pkgerror.NewUnsupportedFormat(fmt.Sprintf("unsupported plot type: %s", value))
}

// resolveColumns maps the requested column names onto the table and checks
// the per-plot-type arity and type requirements. The heatmap ignores the
// requested columns entirely and operates on every numeric column.
func resolveColumns(table *entity.Table, plotType entity.PlotType, xName, yName string) (entity.ColumnSet, error) {
	if plotType == entity.PlotTypeHeatmap {
		numeric := table.NumericColumns()
		if len(numeric) < 2 {
			return entity.ColumnSet{}, pkgerror.NewInsufficientData("heatmap requires at least 2 numeric columns")
		}
		return entity.ColumnSet{Numeric: numeric}, nil
	}

	if xName == "" {
		return entity.ColumnSet{}, pkgerror.NewInvalidInput(errors.New("x_column is required"))
	}

	x := table.Column(xName)
	if x == nil {
		return entity.ColumnSet{}, pkgerror.NewUnknownColumn(xName)
	}

	var y *entity.Column
	if yName != "" {
		if y = table.Column(yName); y == nil {
			return entity.ColumnSet{}, pkgerror.NewUnknownColumn(yName)
		}
	}

	if plotType.NeedsY() && y == nil {
		return entity.ColumnSet{}, pkgerror.NewInvalidInput(fmt.Errorf("y_column is required for %s plots", plotType))
	}

	switch plotType {
	case entity.PlotTypeLine, entity.PlotTypeScatter, entity.PlotTypeArea:
		if x.Type == entity.ColumnCategorical {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(xName, "numeric or datetime")
		}
		if y.Type != entity.ColumnNumeric {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(yName, "numeric")
		}

	case entity.PlotTypeBar:
		if x.Type == entity.ColumnDatetime {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(xName, "categorical or numeric")
		}
		if y.Type != entity.ColumnNumeric {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(yName, "numeric")
		}

	case entity.PlotTypeHistogram:
		if x.Type != entity.ColumnNumeric {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(xName, "numeric")
		}
		// A y column, if supplied, plays no role in a histogram.
		y = nil

	case entity.PlotTypeBox, entity.PlotTypeViolin:
		if y != nil {
			if x.Type != entity.ColumnCategorical {
				return entity.ColumnSet{}, pkgerror.NewTypeMismatch(xName, "categorical")
			}
			if y.Type != entity.ColumnNumeric {
				return entity.ColumnSet{}, pkgerror.NewTypeMismatch(yName, "numeric")
			}
		} else if x.Type != entity.ColumnNumeric {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(xName, "numeric")
		}

	case entity.PlotTypePie:
		if x.Type != entity.ColumnCategorical {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(xName, "categorical")
		}
		if y.Type != entity.ColumnNumeric {
			return entity.ColumnSet{}, pkgerror.NewTypeMismatch(yName, "numeric")
		}

	default:
		return entity.ColumnSet{}, pkgerror.NewUnsupportedFormat(fmt.Sprintf("unsupported plot type: %s", plotType))
	}

	return entity.ColumnSet{X: x, Y: y}, nil
}
