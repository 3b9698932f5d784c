package response

// HeatmapCell aggregates all schedules of one tour on one date. A cell
// without runs is marked HasRuns=false and carries no utilization,
// which is distinct from a bookable-but-empty 0% cell.
type HeatmapCell struct {
	TourID        string `json:"tour_id"`
	Date          string `json:"date"`
	HasRuns       bool   `json:"has_runs"`
	TourRunCount  int    `json:"tour_run_count"`
	BookedCount   int    `json:"booked_count"`
	TotalCapacity int    `json:"total_capacity"`
	Utilization   *int   `json:"utilization,omitempty"`
}

type HeatmapResponse struct {
	DateFrom string        `json:"date_from"`
	DateTo   string        `json:"date_to"`
	Cells    []HeatmapCell `json:"cells"`
}
