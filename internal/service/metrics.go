package service

import (
	"math"

	"sleepboard/internal/domain"
)

// Aggregate computes the four scalar metrics over entries in display order,
// skipping missing durations. All four report 0 when no duration resolved —
// the dashboard has always shown zeros on an empty sheet and callers rely
// on that default.
func Aggregate(entries []domain.Entry) domain.Metrics {
	var (
		m     domain.Metrics
		sum   int
		count int
	)
	for _, e := range entries {
		if e.DurationMin == nil {
			continue
		}
		d := *e.DurationMin
		if count == 0 {
			m.FastestMin, m.SlowestMin = d, d
		} else {
			if d < m.FastestMin {
				m.FastestMin = d
			}
			if d > m.SlowestMin {
				m.SlowestMin = d
			}
		}
		m.LatestMin = d
		sum += d
		count++
	}
	if count == 0 {
		return domain.Metrics{}
	}
	m.AverageMin = int(math.Round(float64(sum) / float64(count)))
	return m
}
