package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandWatch-App/internal/domain/model"
)

func TestPassPredictor_Predict(t *testing.T) {
	observer := model.LatLng{Lat: model.DefaultLatitude, Lng: model.DefaultLongitude}
	predictor := NewPassPredictor(30*time.Second, 10)

	passes, err := predictor.Predict(&issTLE, observer, issEpoch, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, passes)

	prop, err := NewPropagator(&issTLE)
	require.NoError(t, err)

	for i, p := range passes {
		assert.Equal(t, "ISS (ZARYA)", p.Satellite)
		assert.True(t, p.Start.Before(p.End), "pass %d", i)
		assert.Less(t, p.End.Sub(p.Start), 20*time.Minute)
		assert.GreaterOrEqual(t, p.MaxElevationDeg, 10.0)
		assert.False(t, p.MaxAt.Before(p.Start) || p.MaxAt.After(p.End), "pass %d max outside window", i)
		if i > 0 {
			assert.True(t, passes[i-1].End.Before(p.Start), "passes overlap")
		}

		if p.Start.Equal(issEpoch) {
			continue
		}
		// 開始時刻は閾値をまたぐ1秒以内
		elStart, err := prop.Elevation(p.Start, observer, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, elStart, 10.0)
		elBefore, err := prop.Elevation(p.Start.Add(-time.Second), observer, 0)
		require.NoError(t, err)
		assert.Less(t, elBefore, 10.0)
	}
}

func TestPassPredictor_HighThresholdFindsNothing(t *testing.T) {
	observer := model.LatLng{Lat: model.DefaultLatitude, Lng: model.DefaultLongitude}
	predictor := NewPassPredictor(time.Minute, 90.5)

	passes, err := predictor.Predict(&issTLE, observer, issEpoch, 6*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, passes)
}

func TestPassPredictor_InvalidTLE(t *testing.T) {
	predictor := NewPassPredictor(0, 10)
	_, err := predictor.Predict(&model.TLE{}, model.LatLng{}, issEpoch, time.Hour)
	assert.Error(t, err)
}
