package entity

// PlotSpec is the resolved, validated configuration of one render.
// It is built once by the validator and not mutated afterwards.
type PlotSpec struct {
	Type    PlotType
	XColumn string
	YColumn string
	Title   string
	XLabel  string
	YLabel  string
	Width   float64 // figure width in inches
	Height  float64 // figure height in inches
	DPI     int     // 0 means the rendering library default
	Bins    int     // histogram bin count
	Format  OutputFormat
}

// Artifact is the final encoded image returned to the caller. It is
// produced once and never mutated.
type Artifact struct {
	Bytes []byte
	MIME  string
}
