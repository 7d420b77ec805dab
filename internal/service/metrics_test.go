package service

import (
	"testing"

	"sleepboard/internal/domain"

	"github.com/stretchr/testify/assert"
)

func minutes(vals ...int) []domain.Entry {
	entries := make([]domain.Entry, len(vals))
	for i := range vals {
		v := vals[i]
		entries[i].DurationMin = &v
	}
	return entries
}

func TestAggregate(t *testing.T) {
	m := Aggregate(minutes(10, 20, 30))

	assert.Equal(t, 20, m.AverageMin)
	assert.Equal(t, 30, m.LatestMin, "latest is the last row in sorted order")
	assert.Equal(t, 10, m.FastestMin)
	assert.Equal(t, 30, m.SlowestMin)
}

func TestAggregate_AverageRoundsToNearestMinute(t *testing.T) {
	assert.Equal(t, 18, Aggregate(minutes(10, 25)).AverageMin) // 17.5 rounds up
	assert.Equal(t, 17, Aggregate(minutes(10, 24)).AverageMin)
}

func TestAggregate_SkipsMissingDurations(t *testing.T) {
	entries := minutes(40)
	entries = append(entries, domain.Entry{}, minutes(10)[0])

	m := Aggregate(entries)
	assert.Equal(t, 25, m.AverageMin)
	assert.Equal(t, 10, m.LatestMin)
	assert.Equal(t, 10, m.FastestMin)
	assert.Equal(t, 40, m.SlowestMin)
}

func TestAggregate_ZeroResolvedDurationsReportsZeros(t *testing.T) {
	assert.Equal(t, domain.Metrics{}, Aggregate(nil))
	assert.Equal(t, domain.Metrics{}, Aggregate([]domain.Entry{{}, {}}))
}
