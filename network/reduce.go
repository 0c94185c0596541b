package network

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"kuanb/gosm-network/config"
	"kuanb/gosm-network/geom"
	"kuanb/gosm-network/osm"
)

// Stats describes one reduction pass.
type Stats struct {
	Paths         int // all ways in the store
	RoadPaths     int // ways carrying the category tag
	DanglingRefs  int // way references to points missing from the store
	SelfLoops     int // junction pairs skipped because both ends were the same node
	EdgesReplaced int // edges overwritten by a later way between the same junctions
}

// Reducer collapses ways into junction-to-junction edges weighted by travel
// time. Its tables are copied from the config at construction.
type Reducer struct {
	categoryTag   string
	nameTag       string
	junctionKinds map[string]struct{}
	speeds        map[string]float64
	logger        *zap.Logger
}

func NewReducer(cfg *config.Config, logger *zap.Logger) (*Reducer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Reducer{
		categoryTag:   cfg.Network.CategoryTag,
		nameTag:       cfg.Network.NameTag,
		junctionKinds: make(map[string]struct{}, len(cfg.Network.JunctionKinds)),
		speeds:        make(map[string]float64, len(cfg.Speeds)),
		logger:        logger,
	}
	for _, kind := range cfg.Network.JunctionKinds {
		r.junctionKinds[kind] = struct{}{}
	}
	for class, mph := range cfg.Speeds {
		r.speeds[class] = mph
	}
	return r, nil
}

// IsJunction reports whether p is a decision point of the road network.
func (r *Reducer) IsJunction(p *osm.Point) bool {
	kind, ok := p.Tags.Get(r.categoryTag)
	if !ok {
		return false
	}
	_, ok = r.junctionKinds[kind]
	return ok
}

// Reduce builds the road graph from a fully parsed store. Ways are processed
// in ascending identity order, so when two ways join the same junctions the
// one with the higher identity wins. A way whose road class has no speed
// fails the whole reduction.
func (r *Reducer) Reduce(store *osm.Store) (*Graph, Stats, error) {
	g := newGraph()
	var stats Stats

	for _, p := range store.Points() {
		if r.IsJunction(p) {
			g.addNode(Node{ID: p.ID, Coord: p.Coord})
		}
	}

	for _, path := range store.Paths() {
		stats.Paths++

		class, ok := path.Tags.Get(r.categoryTag)
		if !ok {
			continue // not a road
		}
		stats.RoadPaths++

		speed, ok := r.speeds[class]
		if !ok {
			return nil, Stats{}, &osm.Error{
				Kind:  osm.KindConfiguration,
				Value: class,
				Err:   errors.Errorf("way %d has a road class with no known speed", path.ID),
			}
		}
		r.reducePath(store, path, class, speed, g, &stats)
	}

	r.logger.Info("reduced road network",
		zap.Int("nodes", g.NumNodes()),
		zap.Int("edges", g.NumEdges()),
		zap.Int("ways", stats.Paths),
		zap.Int("road_ways", stats.RoadPaths),
		zap.Int("dangling_refs", stats.DanglingRefs),
		zap.Int("self_loops", stats.SelfLoops),
		zap.Int("edges_replaced", stats.EdgesReplaced),
	)
	return g, stats, nil
}

// reducePath walks one way, accumulating distance between consecutive
// points and emitting an edge each time a junction follows another one.
func (r *Reducer) reducePath(store *osm.Store, path *osm.Path, class string, speed float64, g *Graph, stats *Stats) {
	var (
		prev     *osm.Point // previous point that exists in the store
		cursor   *osm.Point // previous junction
		distance float64
		name, _  = path.Tags.Get(r.nameTag)
	)

	for _, id := range path.Points {
		p, ok := store.Point(id)
		if !ok {
			stats.DanglingRefs++
			r.logger.Debug("skipping dangling reference",
				zap.Int64("way", int64(path.ID)), zap.Int64("node", int64(id)))
			continue
		}
		if prev != nil {
			distance += geom.GeodesicMiles(prev.Coord, p.Coord)
		}
		prev = p

		if !r.IsJunction(p) {
			continue
		}

		if cursor != nil {
			if cursor.ID == p.ID {
				stats.SelfLoops++
			} else if g.addEdge(Edge{
				From:       cursor.ID,
				To:         p.ID,
				Way:        path.ID,
				Name:       name,
				Class:      class,
				Distance:   distance,
				TravelTime: distance / speed,
			}) {
				stats.EdgesReplaced++
			}
		}
		// advance the cursor even when no edge was emitted
		cursor = p
		distance = 0
	}
}
