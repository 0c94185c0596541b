package geom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *PointIndex {
	idx := NewPointIndex()
	idx.Insert(1, orb.Point{0, 0})
	idx.Insert(2, orb.Point{0.01, 0})
	idx.Insert(3, orb.Point{0.1, 0.1})
	idx.Insert(4, orb.Point{-1, -1})
	return idx
}

func TestPointIndexNearest(t *testing.T) {
	idx := testIndex()
	require.Equal(t, 4, idx.Size())

	assert.Equal(t, []int64{2, 1}, idx.Nearest(orb.Point{0.009, 0}, 2))
	assert.Equal(t, []int64{4}, idx.Nearest(orb.Point{-0.9, -0.8}, 1))
	assert.Len(t, idx.Nearest(orb.Point{0, 0}, 10), 4)
	assert.Empty(t, idx.Nearest(orb.Point{0, 0}, 0))
}

func TestPointIndexSearchNearPoint(t *testing.T) {
	idx := testIndex()

	// 0.01 degrees of longitude at the equator is about 1.1km
	got := idx.SearchNearPoint(orb.Point{0, 0}, 1500)
	assert.ElementsMatch(t, []int64{1, 2}, got)

	got = idx.SearchNearPoint(orb.Point{0, 0}, 500)
	assert.ElementsMatch(t, []int64{1}, got)
}

func TestPointIndexSearch(t *testing.T) {
	idx := testIndex()
	got := idx.Search(orb.Bound{Min: orb.Point{-0.5, -0.5}, Max: orb.Point{0.5, 0.5}})
	assert.ElementsMatch(t, []int64{1, 2, 3}, got)
}
