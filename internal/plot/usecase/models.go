package usecase

import "io"

// PlotParams are the raw, untyped request parameters of one plot request.
// Values come straight from form or query fields; empty strings mean the
// parameter was not supplied. The validator turns them into an
// entity.PlotSpec.
type PlotParams struct {
	XColumn      string
	YColumn      string
	PlotType     string
	Title        string
	XLabel       string
	YLabel       string
	Width        string
	Height       string
	DPI          string
	Bins         string
	OutputFormat string
}

// PlotInput is the full input of one plot request: the raw tabular payload
// plus its parameters.
type PlotInput struct {
	Data   io.Reader
	Params PlotParams
}

// MetadataResult is the static service description returned by the
// metadata operation.
type MetadataResult struct {
	Name      string
	Version   string
	PlotTypes []string
	Formats   []string
	Usage     string
}
