package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"sleepboard/internal/domain"
	"sleepboard/internal/source"
)

// Converted timestamps are shown like "2024-01-01 01:20 PM".
const displayLayout = "2006-01-02 03:04 PM"

// cell trims a raw sheet cell and reports whether it holds a real value.
// "", "none" and "nan" (any case) are sentinel spellings of "empty".
func cell(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "", "none", "nan":
		return "", false
	}
	return v, true
}

// normalize turns the raw table into display-ready entries, sorted ascending
// by converted start instant. Rows whose start cannot be parsed keep their
// relative order and go last.
func (s *SleepService) normalize(tbl source.Table) []domain.Entry {
	entries := make([]domain.Entry, 0, len(tbl.Rows))
	for _, rec := range tbl.Rows {
		var e domain.Entry
		if note, ok := cell(rec.Note); ok {
			n := note
			e.Note = &n
		}
		e.DurationMin = s.resolveDuration(rec)
		e.StartDisplay, e.EndDisplay, e.StartAt = s.convertDisplay(rec)
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].StartAt, entries[j].StartAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return entries
}

// resolveDuration picks the duration for one row: the explicit duration_min
// cell wins (truncated to whole minutes, matching the sheet's historical
// int() coercion); otherwise the span between start and slept is derived.
// Any parse failure means a missing duration, never an error.
func (s *SleepService) resolveDuration(rec source.Record) *int {
	if raw, ok := cell(rec.DurationMin); ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			n := int(f)
			return &n
		}
		// non-numeric cell: fall through to the timestamp pair
	}
	start, end, err := s.sourceSpan(rec)
	if err != nil {
		return nil
	}
	n := int(end.Sub(start) / time.Minute)
	return &n
}

// sourceSpan parses date+start and date+slept as same-day instants in the
// source timezone. An end time-of-day earlier than the start's rolls over
// to the next calendar day (single rollover only).
func (s *SleepService) sourceSpan(rec source.Record) (start, end time.Time, err error) {
	rawDate, ok := cell(rec.Date)
	if !ok {
		return start, end, fmt.Errorf("missing date")
	}
	rawStart, ok := cell(rec.Start)
	if !ok {
		return start, end, fmt.Errorf("missing start")
	}
	rawSlept, ok := cell(rec.Slept)
	if !ok {
		return start, end, fmt.Errorf("missing slept")
	}

	day, err := parseDate(rawDate)
	if err != nil {
		return start, end, err
	}
	startClock, err := parseClock(rawStart)
	if err != nil {
		return start, end, err
	}
	endClock, err := parseClock(rawSlept)
	if err != nil {
		return start, end, err
	}

	start = combine(day, startClock, s.srcLoc)
	end = combine(day, endClock, s.srcLoc)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// convertDisplay re-expresses the row's span in the target timezone. On any
// parse failure all three results are missing; the row still shows up in the
// table, just without times.
func (s *SleepService) convertDisplay(rec source.Record) (startStr, endStr *string, startAt *time.Time) {
	start, end, err := s.sourceSpan(rec)
	if err != nil {
		return nil, nil, nil
	}
	sd := start.In(s.dstLoc)
	ss := sd.Format(displayLayout)
	es := end.In(s.dstLoc).Format(displayLayout)
	return &ss, &es, &sd
}
