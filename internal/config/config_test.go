package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL": "postgres://localhost/landwatch",
		"JWT_SECRET":   "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, time.Second, cfg.TrackerInterval)
	assert.Equal(t, []int{39084, 49260}, cfg.TrackedSatellites)
	assert.Equal(t, 10.0, cfg.MinElevationDeg)
	assert.False(t, cfg.SMTPEnabled())
}

func TestFromEnv_SupabaseDSN(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"SUPABASE_URL":         "https://abc.supabase.co",
		"SUPABASE_DB_PASSWORD": "pw",
		"JWT_SECRET":           "secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, "host=db.abc.supabase.co port=6543 user=postgres password=pw dbname=postgres sslmode=require", cfg.DatabaseURL)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"DB未設定", map[string]string{"JWT_SECRET": "s"}},
		{"JWT未設定", map[string]string{"DATABASE_URL": "x"}},
		{"不正なduration", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "TRACKER_INTERVAL": "soon"}},
		{"不正な衛星リスト", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "TRACKED_SATELLITES": "39084,abc"}},
		{"負のinterval", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "TRACKER_INTERVAL": "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envOf(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_TrackedSatellites(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":       "x",
		"JWT_SECRET":         "s",
		"TRACKED_SATELLITES": " 25544 , 39084",
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{25544, 39084}, cfg.TrackedSatellites)
}
