package inbound

type MetadataResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	PlotTypes []string `json:"plot_types"`
	Formats   []string `json:"output_formats"`
	Usage     string   `json:"usage"`
}

type StatsResponse struct {
	Total      int64            `json:"total"`
	Failed     int64            `json:"failed"`
	ByPlotType map[string]int64 `json:"by_plot_type"`
	ByFormat   map[string]int64 `json:"by_format"`
}
