package domain

import "time"

// Domain entity: одна нормализованная строка таблицы сна.
// Не зависит от Gin и от формата исходного CSV.
// Nil pointer = значение отсутствует или не распарсилось (никогда не 0).
type Entry struct {
	// StartAt is the start instant converted to the target timezone.
	// Sort key for display order and x-axis for the trend chart.
	StartAt *time.Time

	StartDisplay *string
	EndDisplay   *string
	DurationMin  *int
	Note         *string
}

// Metrics are the four scalar aggregates over resolved durations.
// All four are 0 when no row has a resolved duration.
type Metrics struct {
	AverageMin int
	LatestMin  int
	FastestMin int
	SlowestMin int
}
