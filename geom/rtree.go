package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// PointIndex wraps tidwall/rtree for spatial lookups of graph nodes
type PointIndex struct {
	tree rtree.RTreeG[int64]
}

// NewPointIndex creates an empty index
func NewPointIndex() *PointIndex {
	return &PointIndex{}
}

// Insert adds an item at the given point
func (p *PointIndex) Insert(id int64, pt orb.Point) {
	p.tree.Insert(pt, pt, id)
}

// Search returns all item IDs inside the bounding box
func (p *PointIndex) Search(b orb.Bound) []int64 {
	result := make([]int64, 0)
	p.tree.Search(b.Min, b.Max, func(min, max [2]float64, id int64) bool {
		result = append(result, id)
		return true // continue searching
	})
	return result
}

// SearchNearPoint returns all item IDs within a distance (in meters) of a point.
// The box is a conservative pre-filter; callers refine with a real distance.
func (p *PointIndex) SearchNearPoint(pt orb.Point, distanceMeters float64) []int64 {
	// Convert distance to approximate degrees
	// Adjust for latitude
	latRad := pt.Lat() * math.Pi / 180.0
	metersPerDegreeLon := EarthRadiusMeters * math.Pi / 180.0 * math.Cos(latRad)
	metersPerDegreeLat := EarthRadiusMeters * math.Pi / 180.0

	deltaLat := 1.01 * distanceMeters / metersPerDegreeLat
	deltaLon := 180.0
	if metersPerDegreeLon > 0 {
		deltaLon = math.Min(1.01*distanceMeters/metersPerDegreeLon, 180.0)
	}

	return p.Search(orb.Bound{
		Min: orb.Point{pt.Lon() - deltaLon, pt.Lat() - deltaLat},
		Max: orb.Point{pt.Lon() + deltaLon, pt.Lat() + deltaLat},
	})
}

// Nearest returns up to k item IDs ordered by increasing planar distance in
// degrees from pt, with longitude scaled by the cosine of the latitude.
func (p *PointIndex) Nearest(pt orb.Point, k int) []int64 {
	if k <= 0 {
		return nil
	}
	scale := math.Cos(pt.Lat() * math.Pi / 180.0)
	result := make([]int64, 0, k)
	p.tree.Nearby(
		func(min, max [2]float64, _ int64, _ bool) float64 {
			dx := axisDist(pt[0], min[0], max[0]) * scale
			dy := axisDist(pt[1], min[1], max[1])
			return dx*dx + dy*dy
		},
		func(_, _ [2]float64, id int64, _ float64) bool {
			result = append(result, id)
			return len(result) < k
		},
	)
	return result
}

// Size returns the number of items in the index
func (p *PointIndex) Size() int {
	return p.tree.Len()
}

func axisDist(v, min, max float64) float64 {
	if v < min {
		return min - v
	}
	if v > max {
		return v - max
	}
	return 0
}
