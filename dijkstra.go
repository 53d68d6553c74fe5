package dtnsim

// dijkstra.go implements the time-aware shortest-path core shared by every
// CGR flavor in cgr.go, grounded on pydtnsim.routing.dijkstra and on the
// reqSrvHeap pattern in scheduler.go (a container/heap priority queue keyed
// by a comparable struct rather than a bare number).

import (
	"container/heap"

	"golang.org/x/exp/slices"
)

// dijkstraMetric is the lexicographic distance triple used to rank paths
// through the contact graph: earliest delivery time first, then hop count,
// then the forwarding time of the next hop taken to reach this vertex.
// Equal metrics are broken by the stable hash of the vertex's ToNode, so
// two equally-good paths are still ordered deterministically.
type dijkstraMetric struct {
	deliveryTime int64
	hopCount     int
	forwardingAt int64
}

func (a dijkstraMetric) less(b dijkstraMetric, tieA, tieB uint64) bool {
	if a.deliveryTime != b.deliveryTime {
		return a.deliveryTime < b.deliveryTime
	}
	if a.hopCount != b.hopCount {
		return a.hopCount < b.hopCount
	}
	if a.forwardingAt != b.forwardingAt {
		return a.forwardingAt < b.forwardingAt
	}
	return tieA < tieB
}

// dijkstraResult is the outcome of a single-source time-aware search: the
// best metric found to reach each visited vertex, and the predecessor edge
// taken to get there (for path reconstruction).
type dijkstraResult struct {
	metric map[ContactIdentifier]dijkstraMetric
	prev   map[ContactIdentifier]ContactIdentifier
	seen   map[ContactIdentifier]bool
}

type pqEntry struct {
	vertex ContactIdentifier
	metric dijkstraMetric
	tie    uint64
}

type dijkstraQueue []pqEntry

func (q dijkstraQueue) Len() int { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool {
	return q[i].metric.less(q[j].metric, q[i].tie, q[j].tie)
}
func (q dijkstraQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *dijkstraQueue) Push(x any)        { *q = append(*q, x.(pqEntry)) }
func (q *dijkstraQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// runDijkstra performs a time-aware Dijkstra search over graph starting from
// source — which must be the graph's actual vertex key (for a nominal
// source vertex this means FromTime 0, not the query time) — with search
// departing source no earlier than queryTime. It visits at most the
// vertices within window of queryTime when window > 0 (the scgr lookahead
// window); window 0 means unbounded. packetSize gates every non-nominal
// edge on packetSize <= capacityOf(edge); excludedNodes bars a contact
// whose FromNode is a visited relay (the hotspot anti-loop rule);
// excludedContacts bars specific plan-entry contacts outright (cgr_anchor's
// per-round exclusion).
func runDijkstra(graph *ContactGraph, source ContactIdentifier, queryTime int64, window int64, packetSize int64, excludedNodes []string, excludedContacts []ContactIdentifier, capacityOf func(ContactIdentifier) int64, hashSeed uint64) *dijkstraResult {
	result := &dijkstraResult{
		metric: make(map[ContactIdentifier]dijkstraMetric),
		prev:   make(map[ContactIdentifier]ContactIdentifier),
		seen:   make(map[ContactIdentifier]bool),
	}

	startMetric := dijkstraMetric{deliveryTime: queryTime, hopCount: 0, forwardingAt: queryTime}
	result.metric[source] = startMetric

	pq := &dijkstraQueue{{vertex: source, metric: startMetric, tie: stableHash(source.ToNode, hashSeed)}}
	heap.Init(pq)

	var horizon int64 = -1
	if window > 0 {
		horizon = queryTime + window
	}

	for pq.Len() > 0 {
		top := heap.Pop(pq).(pqEntry)
		v := top.vertex
		if result.seen[v] {
			continue
		}
		// a stale queue entry: the vertex's recorded best metric has since
		// improved past what this entry carries.
		if best, ok := result.metric[v]; ok && best.less(top.metric, 0, 0) {
			continue
		}
		result.seen[v] = true

		for _, next := range graph.Successors(v) {
			readyAt := top.metric.deliveryTime

			if !next.isNominal() {
				if next.ToTime <= readyAt {
					continue // the contact is already closed by the time the packet would be ready
				}
				if hasNeighborAmong(excludedNodes, next.FromNode) {
					continue
				}
				if slices.Contains(excludedContacts, next) {
					continue
				}
				if capacityOf != nil && capacityOf(next) < packetSize {
					continue
				}
			}
			if horizon >= 0 && next.FromTime > horizon {
				continue
			}

			var arrival int64
			if next.isNominal() {
				// handing off to the destination-nominal sink costs no
				// additional time: we've already arrived at its node.
				arrival = readyAt
			} else {
				departure := next.FromTime
				if readyAt > departure {
					// the contact is already open when the packet becomes
					// ready: use it immediately rather than waiting for a
					// from_time that has already passed.
					departure = readyAt
				}
				arrival = departure + next.Delay
				if arrival >= next.ToTime {
					continue // no time left to transmit before the window closes
				}
			}
			cand := dijkstraMetric{
				deliveryTime: arrival,
				hopCount:     top.metric.hopCount + 1,
				forwardingAt: next.FromTime,
			}
			if best, ok := result.metric[next]; ok {
				tieExisting := stableHash(v.ToNode, hashSeed)
				tieCand := stableHash(next.ToNode, hashSeed)
				if !cand.less(best, tieCand, tieExisting) {
					continue
				}
			}
			result.metric[next] = cand
			result.prev[next] = v
			heap.Push(pq, pqEntry{vertex: next, metric: cand, tie: stableHash(next.ToNode, hashSeed)})
		}
	}

	return result
}

// path reconstructs the contact sequence from source to dest, excluding the
// synthetic nominal endpoints, in traversal order. Returns (nil, false) if
// dest was never reached.
func (r *dijkstraResult) path(source, dest ContactIdentifier) ([]ContactIdentifier, bool) {
	if !r.seen[dest] {
		return nil, false
	}
	var rev []ContactIdentifier
	cur := dest
	for cur != source {
		if !cur.isNominal() {
			rev = append(rev, cur)
		}
		prev, ok := r.prev[cur]
		if !ok {
			return nil, false
		}
		cur = prev
	}
	out := make([]ContactIdentifier, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out, true
}
