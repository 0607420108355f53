package entity

// PlotType is the closed set of supported chart variants. Rendering
// dispatches over these values exhaustively; there is no runtime extension.
type PlotType string

const (
	PlotTypeLine      PlotType = "line"
	PlotTypeScatter   PlotType = "scatter"
	PlotTypeBar       PlotType = "bar"
	PlotTypeHistogram PlotType = "histogram"
	PlotTypeBox       PlotType = "box"
	PlotTypeViolin    PlotType = "violin"
	PlotTypeHeatmap   PlotType = "heatmap"
	PlotTypeArea      PlotType = "area"
	PlotTypePie       PlotType = "pie"
)

// PlotTypes returns all supported plot types in their documented order.
func PlotTypes() []PlotType {
	return []PlotType{
		PlotTypeLine,
		PlotTypeScatter,
		PlotTypeBar,
		PlotTypeHistogram,
		PlotTypeBox,
		PlotTypeViolin,
		PlotTypeHeatmap,
		PlotTypeArea,
		PlotTypePie,
	}
}

// NeedsY reports whether the plot type requires a y column.
func (t PlotType) NeedsY() bool {
	switch t {
	case PlotTypeLine, PlotTypeScatter, PlotTypeBar, PlotTypeArea, PlotTypePie:
		return true
	default:
		return false
	}
}

// OutputFormat is the encoded image format of a rendered artifact.
type OutputFormat string

const (
	FormatPNG OutputFormat = "png"
	FormatJPG OutputFormat = "jpg"
	FormatSVG OutputFormat = "svg"
	FormatPDF OutputFormat = "pdf"
)

// OutputFormats returns all supported output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatPNG, FormatJPG, FormatSVG, FormatPDF}
}

// MIME returns the media type matching the format.
func (f OutputFormat) MIME() string {
	switch f {
	case FormatJPG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// ColumnType is the inferred semantic type of a dataset column.
type ColumnType string

const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnDatetime    ColumnType = "datetime"
	ColumnCategorical ColumnType = "categorical"
)
