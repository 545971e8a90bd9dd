package models

// Stats is the catalog-wide summary computed on demand.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Stats struct {
	TotalVideos int64           `json:"total_videos"`
	TotalViews  int64           `json:"total_vistas"`
	ViewsToday  int64           `json:"vistas_hoy"`
	MostViewed  *MostViewed     `json:"video_mas_visto"`
	ByCategory  []CategoryStats `json:"por_categoria"`
}

// MostViewed is the reduced projection of the most watched video.
type MostViewed struct {
	Title   string `json:"titulo"`
	Views   int64  `json:"vistas"`
	Channel string `json:"canal"`
}

// CategoryStats is the per-category rollup.
type CategoryStats struct {
	Category string `json:"categoria"`
	Videos   int64  `json:"videos"`
	Views    int64  `json:"vistas"`
}

// FillTotals derives TotalVideos and TotalViews from ByCategory so both
// figures always agree with the rollup.
func (s *Stats) FillTotals() {
	s.TotalVideos, s.TotalViews = 0, 0
	for _, c := range s.ByCategory {
		s.TotalVideos += c.Videos
		s.TotalViews += c.Views
	}
}
