package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sleepboard/internal/domain"
	"sleepboard/internal/source"

	"github.com/gin-gonic/gin"
)

// View model for the server-rendered dashboard page.
type dashboardView struct {
	SourceTZ  string
	TargetTZ  string
	Err       string
	Empty     bool
	Metrics   domain.Metrics
	Rows      []dashboardRow
	Trend     *trendView
	FetchedAt time.Time
}

type dashboardRow struct {
	Start   string
	Slept   string
	Minutes string
	Note    string
	Tier    string // css class: g / y / o / r, "" when unclassified
}

// trendView is a pre-computed SVG polyline of minutes over converted start
// time. Needs at least two plottable rows.
type trendView struct {
	Width, Height int
	Points        string
	MaxMin        int
	From, To      string
}

const placeholder = "–"

// Dashboard renders the HTML page: metric cards, severity legend, trend
// chart, and the styled table.
func (h *SleepHandler) Dashboard(c *gin.Context) {
	view := dashboardView{SourceTZ: h.sourceTZ, TargetTZ: h.targetTZ}

	snap, err := h.svc.Load(c.Request.Context())
	if err != nil {
		var srcErr *source.Error
		if errors.As(err, &srcErr) {
			view.Err = "Couldn't load CSV: " + srcErr.Err.Error()
		} else {
			view.Err = err.Error()
		}
		c.HTML(http.StatusBadGateway, "dashboard", view)
		return
	}

	if len(snap.Entries) == 0 {
		view.Empty = true
		c.HTML(http.StatusOK, "dashboard", view)
		return
	}

	view.Metrics = snap.Metrics
	view.FetchedAt = snap.FetchedAt
	view.Rows = buildRows(snap.Entries)
	view.Trend = buildTrend(snap.Entries)
	c.HTML(http.StatusOK, "dashboard", view)
}

func buildRows(entries []domain.Entry) []dashboardRow {
	rows := make([]dashboardRow, len(entries))
	for i, e := range entries {
		rows[i] = dashboardRow{
			Start:   orPlaceholder(e.StartDisplay),
			Slept:   orPlaceholder(e.EndDisplay),
			Minutes: placeholder,
			Note:    orPlaceholder(e.Note),
			Tier:    tierClass(domain.Classify(e.DurationMin)),
		}
		if e.DurationMin != nil {
			rows[i].Minutes = fmt.Sprintf("%d", *e.DurationMin)
		}
	}
	return rows
}

// buildTrend plots duration over converted start time. Rows missing either
// value are excluded; fewer than two plottable rows means no chart.
func buildTrend(entries []domain.Entry) *trendView {
	type pt struct {
		at  time.Time
		min int
	}
	var pts []pt
	for _, e := range entries {
		if e.StartAt == nil || e.DurationMin == nil {
			continue
		}
		pts = append(pts, pt{at: *e.StartAt, min: *e.DurationMin})
	}
	if len(pts) < 2 {
		return nil
	}

	const w, h, pad = 640, 160, 8
	maxMin := 0
	for _, p := range pts {
		if p.min > maxMin {
			maxMin = p.min
		}
	}
	if maxMin == 0 {
		maxMin = 1
	}
	span := pts[len(pts)-1].at.Sub(pts[0].at)
	if span <= 0 {
		span = time.Minute
	}

	var b strings.Builder
	for i, p := range pts {
		x := float64(pad) + float64(w-2*pad)*float64(p.at.Sub(pts[0].at))/float64(span)
		y := float64(h-pad) - float64(h-2*pad)*float64(p.min)/float64(maxMin)
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return &trendView{
		Width:  w,
		Height: h,
		Points: b.String(),
		MaxMin: maxMin,
		From:   pts[0].at.Format("Jan 2"),
		To:     pts[len(pts)-1].at.Format("Jan 2"),
	}
}

func tierClass(t domain.Tier) string {
	switch t {
	case domain.TierGreat:
		return "g"
	case domain.TierOK:
		return "y"
	case domain.TierTough:
		return "o"
	case domain.TierNeedsWork:
		return "r"
	default:
		return ""
	}
}

func orPlaceholder(s *string) string {
	if s == nil {
		return placeholder
	}
	return *s
}
