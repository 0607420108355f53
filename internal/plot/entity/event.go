package entity

// RenderEvent is published after every plot request, successful or not.
// PlotType and Format are raw request values so that requests rejected by
// validation still show up in the audit trail.
type RenderEvent struct {
	EventID    string
	PlotType   string
	Format     string
	Bytes      int
	DurationMS int64
	Err        string
}

// RenderStats are aggregate render counters kept by the stats store.
// They carry no dataset or artifact state.
type RenderStats struct {
	Total      int64
	Failed     int64
	ByPlotType map[string]int64
	ByFormat   map[string]int64
}
