package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"LandWatch-App/internal/domain/model"
)

// issTLE エポック 2008-09-20 12:25:40 UTC
var issTLE = model.TLE{
	CatalogNumber: 25544,
	Name:          "ISS (ZARYA)",
	Line1:         "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927",
	Line2:         "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537",
}

var issEpoch = time.Date(2008, time.September, 20, 12, 25, 40, 0, time.UTC)

type fakeTLEProvider struct {
	mu    sync.Mutex
	tles  map[int]*model.TLE
	calls int
}

func (f *fakeTLEProvider) FetchTLE(_ context.Context, catalog int) (*model.TLE, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	tle, ok := f.tles[catalog]
	if !ok {
		return nil, fmt.Errorf("catalog %d not found", catalog)
	}
	return tle, nil
}

type refreshRecorder struct {
	mu       sync.Mutex
	last     int
	failures []int
}

func (r *refreshRecorder) ObserveTrackerRefresh(positions int, failed []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = positions
	r.failures = append(r.failures, failed...)
}
