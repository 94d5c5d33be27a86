package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandWatch-App/internal/domain/model"
	repoImpl "LandWatch-App/internal/repository"
)

// unitCell path/row を左下隅 (lon=path, lat=row) とする1度四方のセル
func unitCell(path, row int) *model.GridCell {
	x, y := float64(path), float64(row)
	return &model.GridCell{
		Path: path,
		Row:  row,
		Geometry: orb.Polygon{{
			{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
		}},
	}
}

func grid3x3() []*model.GridCell {
	var cells []*model.GridCell
	for p := 1; p <= 3; p++ {
		for r := 1; r <= 3; r++ {
			cells = append(cells, unitCell(p, r))
		}
	}
	return cells
}

func keysOf(cells []*model.GridCell) []model.GridKey {
	keys := make([]model.GridKey, 0, len(cells))
	for _, c := range cells {
		keys = append(keys, c.Key())
	}
	return keys
}

type lookupCounter struct{ found, miss int }

func (c *lookupCounter) ObserveGridLookup(found bool) {
	if found {
		c.found++
	} else {
		c.miss++
	}
}

func newResolver(cells []*model.GridCell) (*GridResolver, *lookupCounter) {
	counter := &lookupCounter{}
	return NewGridResolver(repoImpl.NewGridCellsRepository(cells, nil), nil, counter), counter
}

func TestGridResolver_CenterOf3x3(t *testing.T) {
	resolver, counter := newResolver(grid3x3())

	got := resolver.Resolve(context.Background(), 2.5, 2.5)

	require.True(t, got.Found)
	assert.Equal(t, model.GridKey{Path: 2, Row: 2}, got.Center.Key())

	want := []model.GridKey{
		{Path: 2, Row: 1}, {Path: 2, Row: 3},
		{Path: 1, Row: 2}, {Path: 3, Row: 2},
		{Path: 1, Row: 1}, {Path: 1, Row: 3},
		{Path: 3, Row: 1}, {Path: 3, Row: 3},
	}
	if diff := cmp.Diff(want, keysOf(got.Neighbors)); diff != "" {
		t.Errorf("neighbors mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, got.Cells(), 9)
	assert.Equal(t, got.Center, got.Cells()[0])
	assert.Equal(t, 1, counter.found)
}

func TestGridResolver_CornerCellHasOnlyExistingNeighbors(t *testing.T) {
	resolver, _ := newResolver(grid3x3())

	got := resolver.Resolve(context.Background(), 1.5, 1.5)

	require.True(t, got.Found)
	assert.Equal(t, model.GridKey{Path: 1, Row: 1}, got.Center.Key())
	assert.Equal(t, []model.GridKey{{Path: 1, Row: 2}, {Path: 2, Row: 1}, {Path: 2, Row: 2}}, keysOf(got.Neighbors))
}

func TestGridResolver_OutsideAllCells(t *testing.T) {
	resolver, counter := newResolver(grid3x3())

	got := resolver.Resolve(context.Background(), -45, 120)

	assert.False(t, got.Found)
	assert.Nil(t, got.Center)
	assert.Empty(t, got.Neighbors)
	assert.Empty(t, got.Cells())
	assert.Empty(t, got.FeatureCollection().Features)
	assert.Equal(t, 1, counter.miss)
}

func TestGridResolver_IgnoresNonAdjacentCells(t *testing.T) {
	cells := []*model.GridCell{
		unitCell(10, 10),
		unitCell(10, 11),
		unitCell(11, 11),
		unitCell(10, 12), // row+2
		unitCell(12, 10), // path+2
		unitCell(13, 13),
	}
	resolver, _ := newResolver(cells)

	got := resolver.Resolve(context.Background(), 10.5, 10.5)

	require.True(t, got.Found)
	assert.Equal(t, []model.GridKey{{Path: 10, Row: 11}, {Path: 11, Row: 11}}, keysOf(got.Neighbors))
}

func TestGridResolver_BoundaryTieBreak(t *testing.T) {
	resolver, _ := newResolver(grid3x3())

	t.Run("辺上の点は小さいrowのセル", func(t *testing.T) {
		got := resolver.Resolve(context.Background(), 2, 2.5)
		require.True(t, got.Found)
		assert.Equal(t, model.GridKey{Path: 2, Row: 1}, got.Center.Key())
	})

	t.Run("頂点上の点は最小のpath/row", func(t *testing.T) {
		got := resolver.Resolve(context.Background(), 3, 3)
		require.True(t, got.Found)
		assert.Equal(t, model.GridKey{Path: 2, Row: 2}, got.Center.Key())
	})
}

func TestGridResolver_OverlapPrefersLowestPathThenRow(t *testing.T) {
	overlapping := &model.GridCell{
		Path: 7,
		Row:  1,
		Geometry: orb.Polygon{{
			{0, 0}, {5, 0}, {5, 5}, {0, 5}, {0, 0},
		}},
	}
	// 入力順に依存しないこと
	for _, cells := range [][]*model.GridCell{
		{overlapping, unitCell(2, 2)},
		{unitCell(2, 2), overlapping},
	} {
		resolver, _ := newResolver(cells)
		got := resolver.Resolve(context.Background(), 2.5, 2.5)
		require.True(t, got.Found)
		assert.Equal(t, model.GridKey{Path: 2, Row: 2}, got.Center.Key())
	}
}

func TestGridResolver_Idempotent(t *testing.T) {
	resolver, _ := newResolver(grid3x3())

	first := resolver.Resolve(context.Background(), 2.25, 3.75)
	second := resolver.Resolve(context.Background(), 2.25, 3.75)

	assert.Equal(t, keysOf(first.Cells()), keysOf(second.Cells()))
}

func TestGridResolver_PathWrapsAroundCycle(t *testing.T) {
	cells := []*model.GridCell{
		unitCell(1, 10),
		unitCell(2, 10),
		unitCell(model.WRS2PathCount, 10),
		unitCell(model.WRS2PathCount, 11),
	}
	resolver, _ := newResolver(cells)

	got := resolver.Resolve(context.Background(), 10.5, 1.5)

	require.True(t, got.Found)
	assert.Equal(t, []model.GridKey{
		{Path: model.WRS2PathCount, Row: 10},
		{Path: 2, Row: 10},
		{Path: model.WRS2PathCount, Row: 11},
	}, keysOf(got.Neighbors))
}

// cellAt path/row の1度四方セルを左下隅 (x, y) に置く
func cellAt(path, row int, x, y float64) *model.GridCell {
	c := unitCell(path, row)
	c.Geometry = orb.Polygon{{
		{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
	}}
	return c
}

func TestGridResolver_PathsOutsideCycleAreNotWrapped(t *testing.T) {
	tests := []struct {
		name  string
		cells []*model.GridCell
		want  []model.GridKey
	}{
		{
			name: "path 0",
			cells: []*model.GridCell{
				cellAt(0, 5, 10, 5),
				cellAt(0, 6, 10, 6),
				cellAt(1, 5, 11, 5),
				cellAt(model.WRS2PathCount, 5, 9, 5),
			},
			want: []model.GridKey{{Path: 0, Row: 6}, {Path: 1, Row: 5}},
		},
		{
			name: "path 240",
			cells: []*model.GridCell{
				cellAt(240, 5, 10, 5),
				cellAt(240, 6, 10, 6),
				cellAt(241, 5, 11, 5),
				cellAt(6, 5, 9, 5),
			},
			want: []model.GridKey{{Path: 240, Row: 6}, {Path: 241, Row: 5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, _ := newResolver(tt.cells)

			got := resolver.Resolve(context.Background(), 5.5, 10.5)

			require.True(t, got.Found)
			assert.Equal(t, tt.cells[0].Key(), got.Center.Key())
			if diff := cmp.Diff(tt.want, keysOf(got.Neighbors)); diff != "" {
				t.Errorf("neighbors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGridNeighborhood_FeatureCollectionKeepsPathRow(t *testing.T) {
	resolver, _ := newResolver(grid3x3())

	fc := resolver.Resolve(context.Background(), 2.5, 2.5).FeatureCollection()

	require.Len(t, fc.Features, 9)
	first := fc.Features[0]
	assert.Equal(t, 2, first.Properties["PATH"])
	assert.Equal(t, 2, first.Properties["ROW"])
	assert.IsType(t, orb.Polygon{}, first.Geometry)
}

func TestWrapPath(t *testing.T) {
	assert.Equal(t, 233, wrapPath(0))
	assert.Equal(t, 1, wrapPath(234))
	assert.Equal(t, 120, wrapPath(120))
}
