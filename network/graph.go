package network

import (
	"cmp"
	"slices"

	"github.com/paulmach/orb"

	"kuanb/gosm-network/geom"
	"kuanb/gosm-network/osm"
)

// Node is a junction of the road network.
type Node struct {
	ID    osm.NodeID
	Coord orb.Point
}

// Edge is an undirected road connection between two junctions. From and To
// keep the order in which the way was walked.
type Edge struct {
	From, To   osm.NodeID
	Way        osm.WayID
	Name       string
	Class      string
	Distance   float64 // miles
	TravelTime float64 // hours
}

type Neighbor struct {
	ID         osm.NodeID
	Name       string
	TravelTime float64
}

type edgeKey struct{ a, b osm.NodeID }

func keyOf(u, v osm.NodeID) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// Graph is the reduced road network. It holds at most one edge per junction
// pair; a later edge between the same pair replaces the earlier one. It is
// never modified after Reduce returns it.
type Graph struct {
	nodes map[osm.NodeID]Node
	edges map[edgeKey]Edge
	adj   map[osm.NodeID]map[osm.NodeID]struct{}
	index *geom.PointIndex
}

func newGraph() *Graph {
	return &Graph{
		nodes: make(map[osm.NodeID]Node),
		edges: make(map[edgeKey]Edge),
		adj:   make(map[osm.NodeID]map[osm.NodeID]struct{}),
		index: geom.NewPointIndex(),
	}
}

func (g *Graph) addNode(n Node) {
	if _, ok := g.nodes[n.ID]; !ok {
		g.index.Insert(int64(n.ID), n.Coord)
	}
	g.nodes[n.ID] = n
}

// addEdge stores e and reports whether it replaced an existing edge.
func (g *Graph) addEdge(e Edge) bool {
	k := keyOf(e.From, e.To)
	_, replaced := g.edges[k]
	g.edges[k] = e
	g.link(e.From, e.To)
	g.link(e.To, e.From)
	return replaced
}

func (g *Graph) link(u, v osm.NodeID) {
	m, ok := g.adj[u]
	if !ok {
		m = make(map[osm.NodeID]struct{})
		g.adj[u] = m
	}
	m[v] = struct{}{}
}

func (g *Graph) NumNodes() int { return len(g.nodes) }
func (g *Graph) NumEdges() int { return len(g.edges) }

func (g *Graph) Node(id osm.NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all junctions in ascending identity order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b Node) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Edge returns the edge joining u and v in either direction.
func (g *Graph) Edge(u, v osm.NodeID) (Edge, bool) {
	e, ok := g.edges[keyOf(u, v)]
	return e, ok
}

// Edges returns all edges ordered by their lower, then higher endpoint.
func (g *Graph) Edges() []Edge {
	keys := make([]edgeKey, 0, len(g.edges))
	for k := range g.edges {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y edgeKey) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})
	out := make([]Edge, len(keys))
	for i, k := range keys {
		out[i] = g.edges[k]
	}
	return out
}

// Neighbors returns the junctions directly connected to id, ordered by
// identity.
func (g *Graph) Neighbors(id osm.NodeID) []Neighbor {
	out := make([]Neighbor, 0, len(g.adj[id]))
	for v := range g.adj[id] {
		e := g.edges[keyOf(id, v)]
		out = append(out, Neighbor{ID: v, Name: e.Name, TravelTime: e.TravelTime})
	}
	slices.SortFunc(out, func(a, b Neighbor) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// nearestCandidates bounds how many planar candidates are re-ranked by
// geodesic distance.
const nearestCandidates = 8

// Nearest returns the junction closest to pt and its distance in miles.
func (g *Graph) Nearest(pt orb.Point) (Node, float64, bool) {
	var (
		best     Node
		bestDist float64
		found    bool
	)
	for _, id := range g.index.Nearest(pt, nearestCandidates) {
		n := g.nodes[osm.NodeID(id)]
		d := geom.GeodesicMiles(pt, n.Coord)
		if !found || d < bestDist || (d == bestDist && n.ID < best.ID) {
			best, bestDist, found = n, d, true
		}
	}
	return best, bestDist, found
}

// sphereSlack widens the haversine pre-filter in Within so no junction the
// geodesic would accept is dropped.
const sphereSlack = 1.01

// Within returns the junctions no further than miles from pt, closest first.
func (g *Graph) Within(pt orb.Point, miles float64) []Node {
	type hit struct {
		node Node
		dist float64
	}
	var hits []hit
	meters := miles * geom.MetersPerMile
	for _, id := range g.index.SearchNearPoint(pt, meters) {
		n := g.nodes[osm.NodeID(id)]
		// the sphere and the ellipsoid differ by well under one percent
		if geom.GreatCircleDistance(pt.Lon(), pt.Lat(), n.Coord.Lon(), n.Coord.Lat()) > sphereSlack*meters {
			continue
		}
		if d := geom.GeodesicMiles(pt, n.Coord); d <= miles {
			hits = append(hits, hit{n, d})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.node.ID, b.node.ID)
	})
	out := make([]Node, len(hits))
	for i, h := range hits {
		out[i] = h.node
	}
	return out
}
