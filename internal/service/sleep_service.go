package service

import (
	"context"
	"time"

	"sleepboard/internal/cache"
	"sleepboard/internal/source"

	"golang.org/x/sync/singleflight"
)

// Source fetches the raw sheet table. Satisfied by *source.SheetSource.
type Source interface {
	Fetch(ctx context.Context, url string) (source.Table, error)
}

// SleepService runs the ingest pipeline: fetch the sheet, normalize it into
// display-ready entries, aggregate metrics, and keep the result cached until
// the TTL runs out or a manual refresh drops it.
type SleepService struct {
	src    Source
	cache  *cache.SnapshotCache
	url    string
	srcLoc *time.Location
	dstLoc *time.Location
	sf     singleflight.Group
}

// NewSleepService creates a SleepService. If c is nil, caching is disabled
// and every Load re-fetches.
func NewSleepService(src Source, c *cache.SnapshotCache, url string, srcLoc, dstLoc *time.Location) *SleepService {
	return &SleepService{src: src, cache: c, url: url, srcLoc: srcLoc, dstLoc: dstLoc}
}

// Load returns the current snapshot, serving from cache within the TTL.
// Concurrent cold loads are collapsed into a single upstream fetch.
func (s *SleepService) Load(ctx context.Context) (cache.Snapshot, error) {
	if s.cache == nil {
		return s.build(ctx)
	}
	v, err, _ := s.sf.Do("load:"+s.url, func() (interface{}, error) {
		if snap, ok := s.cache.Get(s.url); ok {
			return snap, nil
		}
		snap, err := s.build(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(s.url, snap)
		return snap, nil
	})
	if err != nil {
		return cache.Snapshot{}, err
	}
	return v.(cache.Snapshot), nil
}

// Refresh drops the cached snapshot and rebuilds from upstream (the manual
// "Refresh now" path).
func (s *SleepService) Refresh(ctx context.Context) (cache.Snapshot, error) {
	if s.cache != nil {
		s.cache.Invalidate(s.url)
	}
	return s.Load(ctx)
}

func (s *SleepService) build(ctx context.Context) (cache.Snapshot, error) {
	tbl, err := s.src.Fetch(ctx, s.url)
	if err != nil {
		return cache.Snapshot{}, err
	}
	entries := s.normalize(tbl)
	return cache.Snapshot{
		Entries:   entries,
		Metrics:   Aggregate(entries),
		FetchedAt: time.Now().UTC(),
	}, nil
}
