package osm

import (
	"cmp"
	"math"
	"slices"

	"github.com/paulmach/orb"
	pmosm "github.com/paulmach/osm"
	"github.com/pkg/errors"
)

type NodeID = pmosm.NodeID

type WayID = pmosm.WayID

// Tags maps tag keys to values. Keys are unique; the last write wins.
type Tags map[string]string

// Get returns the value for key and whether it was present.
func (t Tags) Get(key string) (string, bool) {
	v, ok := t[key]
	return v, ok
}

type Point struct {
	ID    NodeID
	Coord orb.Point // lon, lat
	Tags  Tags
}

const (
	maxLat = 90.0
	maxLon = 180.0
)

// checkCoord rejects NaN, infinities and values beyond limit degrees.
func checkCoord(v, limit float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return errors.Errorf("coordinate %v out of range [-%v, %v]", v, limit, limit)
	}
	return nil
}

func (p *Point) Lat() float64 { return p.Coord.Lat() }
func (p *Point) Lon() float64 { return p.Coord.Lon() }

// Path is an ordered sequence of point references. Order is travel order.
type Path struct {
	ID     WayID
	Points []NodeID
	Tags   Tags
}

// Store holds everything a parse produced. It is not modified once returned
// by a loader.
type Store struct {
	points map[NodeID]*Point
	paths  map[WayID]*Path
}

func newStore() *Store {
	return &Store{
		points: make(map[NodeID]*Point),
		paths:  make(map[WayID]*Path),
	}
}

// Point looks up a point by identity.
func (s *Store) Point(id NodeID) (*Point, bool) {
	p, ok := s.points[id]
	return p, ok
}

// Path looks up a path by identity.
func (s *Store) Path(id WayID) (*Path, bool) {
	p, ok := s.paths[id]
	return p, ok
}

// Points returns all points in ascending identity order.
func (s *Store) Points() []*Point {
	out := make([]*Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Point) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Paths returns all paths in ascending identity order.
func (s *Store) Paths() []*Path {
	out := make([]*Path, 0, len(s.paths))
	for _, p := range s.paths {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Path) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *Store) NumPoints() int { return len(s.points) }
func (s *Store) NumPaths() int  { return len(s.paths) }

// Bound returns the extent of all points. It is empty for an empty store.
func (s *Store) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, p := range s.points {
		if first {
			b = p.Coord.Bound()
			first = false
			continue
		}
		b = b.Extend(p.Coord)
	}
	return b
}
