package render

import (
	"fmt"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

// Build shapes the resolved columns into a figure for the requested plot
// type. It never touches a rendering surface; all drawing happens later in
// Encode, so a Build failure can never leave a partial image behind.
func Build(spec entity.PlotSpec, cols entity.ColumnSet) (Figure, error) {
	switch spec.Type {
	case entity.PlotTypeLine, entity.PlotTypeScatter, entity.PlotTypeArea:
		return buildXY(spec, cols)
	case entity.PlotTypeBar:
		return buildBar(spec, cols)
	case entity.PlotTypeHistogram:
		return buildHistogram(spec, cols)
	case entity.PlotTypePie:
		return buildPie(spec, cols)
	case entity.PlotTypeBox:
		return buildBox(spec, cols)
	case entity.PlotTypeViolin:
		return buildViolin(spec, cols)
	case entity.PlotTypeHeatmap:
		return buildHeatmap(spec, cols)
	default:
		return nil, pkgerror.NewUnsupportedFormat(fmt.Sprintf("unsupported plot type: %s", spec.Type))
	}
}
