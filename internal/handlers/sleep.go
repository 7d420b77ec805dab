package handlers

import (
	"errors"
	"net/http"

	"sleepboard/internal/cache"
	"sleepboard/internal/domain"
	"sleepboard/internal/dto"
	"sleepboard/internal/service"
	"sleepboard/internal/source"

	"github.com/gin-gonic/gin"
)

type SleepHandler struct {
	svc      *service.SleepService
	sourceTZ string
	targetTZ string
}

// NewSleepHandler creates a SleepHandler. The timezone names are only used
// for the dashboard caption.
func NewSleepHandler(svc *service.SleepService, sourceTZ, targetTZ string) *SleepHandler {
	return &SleepHandler{svc: svc, sourceTZ: sourceTZ, targetTZ: targetTZ}
}

// Entries returns the normalized table with metrics, served from cache
// within the TTL.
func (h *SleepHandler) Entries(c *gin.Context) {
	snap, err := h.svc.Load(c.Request.Context())
	if err != nil {
		writeLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotToResponse(snap))
}

// Metrics returns only the four scalar aggregates.
func (h *SleepHandler) Metrics(c *gin.Context) {
	snap, err := h.svc.Load(c.Request.Context())
	if err != nil {
		writeLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, metricsToResponse(snap.Metrics))
}

// Refresh drops the cached snapshot, re-fetches, and returns the fresh table.
func (h *SleepHandler) Refresh(c *gin.Context) {
	snap, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		writeLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotToResponse(snap))
}

// A whole-table source failure means no data can be shown at all; anything
// else is an internal error.
func writeLoadError(c *gin.Context, err error) {
	var srcErr *source.Error
	if errors.As(err, &srcErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "couldn't load sheet: " + srcErr.Err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func snapshotToResponse(snap cache.Snapshot) dto.EntriesResponse {
	items := make([]dto.EntryResponse, len(snap.Entries))
	for i, e := range snap.Entries {
		items[i] = dto.EntryResponse{
			Start:       e.StartDisplay,
			Slept:       e.EndDisplay,
			DurationMin: e.DurationMin,
			Tier:        domain.Classify(e.DurationMin).String(),
			Note:        e.Note,
		}
	}
	return dto.EntriesResponse{
		Items:     items,
		Count:     len(items),
		Metrics:   metricsToResponse(snap.Metrics),
		FetchedAt: snap.FetchedAt,
	}
}

func metricsToResponse(m domain.Metrics) dto.MetricsResponse {
	return dto.MetricsResponse{
		AverageMin: m.AverageMin,
		LatestMin:  m.LatestMin,
		FastestMin: m.FastestMin,
		SlowestMin: m.SlowestMin,
	}
}
