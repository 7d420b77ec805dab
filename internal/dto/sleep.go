package dto

import "time"

// EntryResponse mirrors one normalized row. Nulls mean the cell was absent
// or unparseable upstream; they are never rendered as zeros.
type EntryResponse struct {
	Start       *string `json:"start"`
	Slept       *string `json:"slept"`
	DurationMin *int    `json:"duration_min"`
	Tier        string  `json:"tier"`
	Note        *string `json:"note"`
}

type MetricsResponse struct {
	AverageMin int `json:"average_min"`
	LatestMin  int `json:"latest_min"`
	FastestMin int `json:"fastest_min"`
	SlowestMin int `json:"slowest_min"`
}

type EntriesResponse struct {
	Items     []EntryResponse `json:"items"`
	Count     int             `json:"count"`
	Metrics   MetricsResponse `json:"metrics"`
	FetchedAt time.Time       `json:"fetched_at"`
}
