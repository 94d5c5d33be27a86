package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandWatch-App/internal/infrastructure/database"
)

func TestSupabaseScenesRepository_List(t *testing.T) {
	var gotFilter string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/"+scenesTable) {
			http.NotFound(w, r)
			return
		}
		gotFilter = r.URL.Query().Get("cloud_cover")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "0-1/2")
		fmt.Fprint(w, `[
			{"id":"a","acquired_at":"2024-09-15T09:23:58Z","satellite":"LANDSAT 9","latitude":50.5,"longitude":21,"wrs_path":187,"wrs_row":25,"cloud_cover":12.5,"image_quality":null},
			{"id":"b","acquired_at":"2024-09-24T09:17:39Z","satellite":"LANDSAT 8","latitude":50.5,"longitude":22.5,"wrs_path":186,"wrs_row":25,"cloud_cover":3.24,"image_quality":9}
		]`)
	}))
	defer srv.Close()

	client, err := database.NewSupabaseClient(srv.URL, "anon-key")
	require.NoError(t, err)

	scenes, err := NewSupabaseScenesRepository(client).List(context.Background(), 15)
	require.NoError(t, err)

	assert.Equal(t, "lte.15", gotFilter)
	require.Len(t, scenes, 2)
	assert.Equal(t, "b", scenes[0].ID, "newest first")
	assert.Equal(t, time.Date(2024, 9, 24, 9, 17, 39, 0, time.UTC), scenes[0].AcquiredAt)
	assert.Equal(t, 186, scenes[0].Path)
	assert.Equal(t, 9, scenes[0].ImageQuality)
	assert.Equal(t, 0, scenes[1].ImageQuality)
}

func TestNewSupabaseClient_RequiresSettings(t *testing.T) {
	_, err := database.NewSupabaseClient("", "key")
	assert.Error(t, err)
	_, err = database.NewSupabaseClient("https://example.supabase.co", "")
	assert.Error(t, err)
}
