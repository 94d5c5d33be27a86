package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandWatch-App/internal/domain/model"
)

func newTestTracker(provider *fakeTLEProvider, catalogs []int, rec TrackerObserver) *SatelliteTracker {
	tr := NewSatelliteTracker(provider, catalogs, 10*time.Millisecond, nil, rec)
	tr.now = func() time.Time { return issEpoch }
	return tr
}

func TestSatelliteTracker_RefreshSkipsFailedSatellite(t *testing.T) {
	provider := &fakeTLEProvider{tles: map[int]*model.TLE{25544: &issTLE}}
	rec := &refreshRecorder{}
	tr := newTestTracker(provider, []int{25544, 99999}, rec)

	tr.Refresh(context.Background())

	positions := tr.Positions()
	require.Len(t, positions, 1)
	assert.Equal(t, 25544, positions[0].CatalogNumber)
	assert.Equal(t, issEpoch, positions[0].Timestamp)
	assert.Equal(t, 1, rec.last)
	assert.Equal(t, []int{99999}, rec.failures)
}

func TestSatelliteTracker_AllFailedKeepsPreviousPositions(t *testing.T) {
	provider := &fakeTLEProvider{tles: map[int]*model.TLE{25544: &issTLE}}
	tr := newTestTracker(provider, []int{25544}, &refreshRecorder{})

	tr.Refresh(context.Background())
	require.Len(t, tr.Positions(), 1)

	provider.mu.Lock()
	provider.tles = map[int]*model.TLE{}
	provider.mu.Unlock()

	tr.Refresh(context.Background())
	assert.Len(t, tr.Positions(), 1)
}

func TestSatelliteTracker_StartStop(t *testing.T) {
	provider := &fakeTLEProvider{tles: map[int]*model.TLE{25544: &issTLE}}
	tr := newTestTracker(provider, []int{25544}, &refreshRecorder{})

	handle := tr.Start(context.Background())
	assert.Eventually(t, func() bool {
		provider.mu.Lock()
		defer provider.mu.Unlock()
		return provider.calls >= 3
	}, time.Second, 5*time.Millisecond)

	handle.Stop()
	handle.Stop()

	select {
	case <-handle.Done():
	default:
		t.Fatal("tracker loop still running after Stop")
	}

	provider.mu.Lock()
	calls := provider.calls
	provider.mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Equal(t, calls, provider.calls)
	assert.NotEmpty(t, tr.Positions())
}

func TestSatelliteTracker_ParentContextCancelStopsLoop(t *testing.T) {
	provider := &fakeTLEProvider{tles: map[int]*model.TLE{25544: &issTLE}}
	tr := newTestTracker(provider, []int{25544}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	handle := tr.Start(ctx)
	cancel()

	select {
	case <-handle.Done():
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop on context cancel")
	}
}
