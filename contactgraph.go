package dtnsim

// contactgraph.go implements the time-expanded ContactGraph, grounded on
// pydtnsim.contact_graph.ContactGraph. Vertices are plan-entry
// contacts plus two nominal vertices per node id; edges connect a contact
// to every contact it could plausibly hand a packet to in time. Successor
// lists are pre-sorted so the Dijkstra neighbor function (dijkstra.go)
// scans them in a fixed, deterministic order.

import (
	"sort"

	"gonum.org/v1/gonum/graph"
)

// ContactGraph is a directed time-expanded graph shared across all routing
// queries for a given ContactPlan. It is built once and never mutated
// during a simulation run.
type ContactGraph struct {
	successors map[ContactIdentifier][]ContactIdentifier
	hashSeed   uint64

	// vertices in deterministic build order, used only for DebugGraph and
	// for tests that want to enumerate the graph.
	vertexOrder []ContactIdentifier

	debugGraph   graph.Graph
	debugNodeIDs map[string]int64
}

// BuildContactGraph constructs a ContactGraph from a validated ContactPlan.
// hashSeed selects the stable-hash function used to order successor lists
// and break routing ties; pass DefaultHashSeed unless the caller needs a
// different fixed ordering.
func BuildContactGraph(plan *ContactPlan, hashSeed uint64) *ContactGraph {
	g := &ContactGraph{
		successors: make(map[ContactIdentifier][]ContactIdentifier),
		hashSeed:   hashSeed,
	}

	contacts := plan.AllContacts()
	nodes := plan.Nodes()

	addVertex := func(v ContactIdentifier) {
		if _, present := g.successors[v]; !present {
			g.successors[v] = nil
			g.vertexOrder = append(g.vertexOrder, v)
		}
	}

	for _, c := range contacts {
		addVertex(c)
	}
	for _, n := range nodes {
		addVertex(nominalVertex(n))
	}

	// Wire edges: c1 -> c2 iff c1.ToNode == c2.FromNode and
	// c1.FromTime + c1.Delay < c2.ToTime. Plus nominal source/destination
	// edges.
	for _, c1 := range contacts {
		for _, c2 := range contacts {
			if c1 == c2 {
				continue
			}
			if c1.ToNode == c2.FromNode && c1.FromTime+c1.Delay < c2.ToTime {
				g.successors[c1] = append(g.successors[c1], c2)
			}
		}
		// source-nominal of c1.FromNode -> c1
		src := nominalVertex(c1.FromNode)
		g.successors[src] = append(g.successors[src], c1)
		// c1 -> destination-nominal of c1.ToNode
		dst := nominalVertex(c1.ToNode)
		g.successors[c1] = append(g.successors[c1], dst)
	}

	g.sortSuccessors()
	return g
}

// sortSuccessors orders every successor list by (ToTime ascending,
// stableHash(ToNode) ascending). Contacts already closed at a given ready
// time therefore form a prefix of each list; the Dijkstra neighbor function
// skips them one by one and does not stop the scan early.
func (g *ContactGraph) sortSuccessors() {
	for v, succs := range g.successors {
		sort.SliceStable(succs, func(i, j int) bool {
			a, b := succs[i], succs[j]
			if a.ToTime != b.ToTime {
				return a.ToTime < b.ToTime
			}
			return stableHash(a.ToNode, g.hashSeed) < stableHash(b.ToNode, g.hashSeed)
		})
		g.successors[v] = succs
	}
}

// Successors returns the sorted successor list of v. The returned slice
// must not be mutated by the caller.
func (g *ContactGraph) Successors(v ContactIdentifier) []ContactIdentifier {
	return g.successors[v]
}

// HasVertex reports whether v is a vertex of the graph.
func (g *ContactGraph) HasVertex(v ContactIdentifier) bool {
	_, present := g.successors[v]
	return present
}

// SourceNominal and DestinationNominal return the synthetic source/
// destination vertex for a node id. Both nominal vertices per node share
// the same representation (FromTime=0, ToTime=+inf); callers select which
// one they mean by how they use it (as a Dijkstra source or destination).
func SourceNominal(node string) ContactIdentifier      { return nominalVertex(node) }
func DestinationNominal(node string) ContactIdentifier { return nominalVertex(node) }
