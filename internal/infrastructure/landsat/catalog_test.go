package landsat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandWatch-App/internal/domain/model"
)

func TestCatalog_Metadata(t *testing.T) {
	c := NewCatalog("testdata", nil)

	md, err := c.Metadata(sampleFile)
	require.NoError(t, err)
	assert.Equal(t, "LANDSAT 8", *md.SpacecraftID)

	_, err = c.Metadata("missing_MTL.txt")
	assert.ErrorIs(t, err, model.ErrSceneFileNotFound)

	_, err = c.Metadata("../../" + sampleFile)
	require.NoError(t, err, "file name is resolved inside the data directory")
}

func TestCatalog_List(t *testing.T) {
	c := NewCatalog("testdata", nil)

	all, err := c.List(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 186, all[0].Path, "newest first")
	assert.Equal(t, 187, all[1].Path)
	assert.Equal(t, "LANDSAT 9", all[1].Satellite)
	assert.Equal(t, 8, all[1].ImageQuality)

	lowCloud, err := c.List(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, lowCloud, 1)
	assert.Equal(t, "LC08_L2SP_186025_20240924_20240928_02_T1", lowCloud[0].ID)
}

func TestCatalog_ListSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken_MTL.txt"), []byte("WRS_PATH = nope\n"), 0o644))

	scenes, err := NewCatalog(dir, nil).List(context.Background(), 100)
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestCatalog_ListMissingDirectory(t *testing.T) {
	scenes, err := NewCatalog(filepath.Join(t.TempDir(), "nope"), nil).List(context.Background(), 100)
	require.NoError(t, err)
	assert.Empty(t, scenes)
}
