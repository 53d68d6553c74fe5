package dtnsim

// routegraph.go adapts routes.go's gonum-based shortest-path view: instead
// of a device connectivity graph used for actual packet routing, DebugGraph
// builds a node-level summary of a ContactGraph — one undirected edge per
// pair of nodes that ever have a contact between them — purely for
// operator inspection and tests that want to assert reachability without
// re-deriving it from the time-aware Dijkstra in dijkstra.go/cgr.go. It is
// never consulted by the routing algorithms themselves.

import (
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// DebugGraph builds (and caches) a gonum undirected graph view of every
// node pair connected by at least one contact in the plan this
// ContactGraph was built from.
func (g *ContactGraph) DebugGraph() graph.Graph {
	if g.debugGraph != nil {
		return g.debugGraph
	}

	nodeIDs := make(map[string]int64)
	nextID := int64(0)
	idFor := func(name string) int64 {
		if id, ok := nodeIDs[name]; ok {
			return id
		}
		id := nextID
		nodeIDs[name] = id
		nextID++
		return id
	}

	dg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, v := range g.vertexOrder {
		if v.isNominal() {
			continue
		}
		fromID := idFor(v.FromNode)
		toID := idFor(v.ToNode)
		if dg.Node(fromID) == nil {
			dg.AddNode(simple.Node(fromID))
		}
		if dg.Node(toID) == nil {
			dg.AddNode(simple.Node(toID))
		}
		dg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(fromID), T: simple.Node(toID), W: 1.0})
	}

	g.debugGraph = dg
	g.debugNodeIDs = nodeIDs
	return dg
}

// DebugHopCount returns the minimum number of node-to-node hops between
// from and to in the debug connectivity view, ignoring time entirely. It
// exists for sanity-checking the real router's output in tests, not for
// anything the router itself relies on.
func (g *ContactGraph) DebugHopCount(from, to string) (int, bool) {
	dg := g.DebugGraph()
	fromID, ok := g.debugNodeIDs[from]
	if !ok {
		return 0, false
	}
	toID, ok := g.debugNodeIDs[to]
	if !ok {
		return 0, false
	}
	tree := path.DijkstraFrom(simple.Node(fromID), dg)
	nodes, weight := tree.To(toID)
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return 0, false
	}
	return len(nodes) - 1, true
}
