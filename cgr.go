package dtnsim

// cgr.go implements Contact Graph Routing, grounded on
// pydtnsim.routing.cgr_basic, cgr_anchor (folded into AnchorCGR.Route below)
// and pydtnsim.routing.scgr, plus shared ranking helpers from
// pydtnsim.routing.cgr_utils.

import "math"

// Route is the outcome of a successful routing query: the ordered contact
// sequence a packet should take, its predicted best delivery time (BDT),
// hop count, the minimum remaining capacity along the path at query time,
// and the immediate next hop the caller should book the packet onto.
type Route struct {
	Contacts        []ContactIdentifier
	BestDeliveryTime int64
	HopCount        int
	RouteCapacity   int64
	NextHop         ContactIdentifier
}

// RoutingAlgorithm computes a Route from source to destination over graph,
// as observed at queryTime for a packet of packetSize bytes, or reports
// that no route exists. capacityOf reports the remaining capacity of a
// runtime contact, used both to prune infeasible edges during the search
// and to compute RouteCapacity; excludedNodes lists node ids barred from
// use as intermediate hops (the hotspot set); excludedContacts bars
// specific plan-entry contacts outright.
type RoutingAlgorithm interface {
	Route(graph *ContactGraph, source, destination string, queryTime, packetSize int64, excludedNodes []string, excludedContacts []ContactIdentifier, capacityOf func(ContactIdentifier) int64) (Route, bool)
}

func routeCapacity(contacts []ContactIdentifier, capacityOf func(ContactIdentifier) int64) int64 {
	min := int64(math.MaxInt64)
	for _, c := range contacts {
		if cap := capacityOf(c); cap < min {
			min = cap
		}
	}
	if min == math.MaxInt64 {
		return 0
	}
	return min
}

func buildRoute(contacts []ContactIdentifier, bdt int64, capacityOf func(ContactIdentifier) int64) (Route, bool) {
	if len(contacts) == 0 {
		return Route{}, false
	}
	return Route{
		Contacts:         contacts,
		BestDeliveryTime: bdt,
		HopCount:         len(contacts),
		RouteCapacity:    routeCapacity(contacts, capacityOf),
		NextHop:          contacts[0],
	}, true
}

// BasicCGR is a plain time-aware Dijkstra search with no lookahead window,
// grounded on pydtnsim.routing.cgr_basic.route.
type BasicCGR struct {
	HashSeed uint64
}

func (b BasicCGR) Route(graph *ContactGraph, source, destination string, queryTime, packetSize int64, excludedNodes []string, excludedContacts []ContactIdentifier, capacityOf func(ContactIdentifier) int64) (Route, bool) {
	seed := b.HashSeed
	src := nominalVertex(source)
	dst := nominalVertex(destination)
	result := runDijkstra(graph, src, queryTime, 0, packetSize, excludedNodes, excludedContacts, capacityOf, seed)
	contacts, ok := result.path(src, dst)
	if !ok {
		return Route{}, false
	}
	bdt := result.metric[dst].deliveryTime
	return buildRoute(contacts, bdt, capacityOf)
}

// AnchorCGR implements cgr_anchor: it repeatedly runs a basic search,
// excluding the previous round's first-hop contact from the next round,
// until no further route exists or MaxRounds rounds have run (8 when
// MaxRounds <= 0). It returns the first collected route
// whose capacity suffices for the packet, which may not be the first
// (lowest-BDT) route found.
type AnchorCGR struct {
	HashSeed  uint64
	MaxRounds int
}

func (a AnchorCGR) Route(graph *ContactGraph, source, destination string, queryTime, packetSize int64, excludedNodes []string, excludedContacts []ContactIdentifier, capacityOf func(ContactIdentifier) int64) (Route, bool) {
	maxRounds := a.MaxRounds
	if maxRounds <= 0 {
		maxRounds = 8
	}
	basic := BasicCGR{HashSeed: a.HashSeed}

	excluded := append([]ContactIdentifier(nil), excludedContacts...)
	var candidates []Route
	for round := 0; round < maxRounds; round++ {
		route, ok := basic.Route(graph, source, destination, queryTime, packetSize, excludedNodes, excluded, capacityOf)
		if !ok {
			break
		}
		candidates = append(candidates, route)
		excluded = append(excluded, route.Contacts[0])
	}
	for _, route := range candidates {
		if route.RouteCapacity >= packetSize {
			return route, true
		}
	}
	return Route{}, false
}

// ShortestCGR (scgr) bounds the search to a lookahead window sized from a
// running mean of observed best-delivery times, falling back to an
// unwindowed search whenever the window misses the destination. Grounded
// on pydtnsim.routing.scgr.route and its AvgRouteDeliveryTime tracker.
type ShortestCGR struct {
	HashSeed uint64

	meanBDT     float64
	sampleCount int64
}

// Observe folds a newly-discovered sample, bdt minus queryTime (how far
// past the query the best delivery lies), into the running mean used to
// size the next lookahead window.
func (s *ShortestCGR) Observe(bdt, queryTime int64) {
	delta := float64(bdt - queryTime)
	s.sampleCount++
	s.meanBDT += (delta - s.meanBDT) / float64(s.sampleCount)
}

func (s *ShortestCGR) window() int64 {
	if s.sampleCount == 0 {
		return 0 // no samples yet: unwindowed
	}
	return int64(math.Ceil(s.meanBDT))
}

func (s *ShortestCGR) Route(graph *ContactGraph, source, destination string, queryTime, packetSize int64, excludedNodes []string, excludedContacts []ContactIdentifier, capacityOf func(ContactIdentifier) int64) (Route, bool) {
	seed := s.HashSeed
	src := nominalVertex(source)
	dst := nominalVertex(destination)

	if w := s.window(); w > 0 {
		result := runDijkstra(graph, src, queryTime, w, packetSize, excludedNodes, excludedContacts, capacityOf, seed)
		if contacts, ok := result.path(src, dst); ok {
			bdt := result.metric[dst].deliveryTime
			s.Observe(bdt, queryTime)
			return buildRoute(contacts, bdt, capacityOf)
		}
	}

	result := runDijkstra(graph, src, queryTime, 0, packetSize, excludedNodes, excludedContacts, capacityOf, seed)
	contacts, ok := result.path(src, dst)
	if !ok {
		return Route{}, false
	}
	bdt := result.metric[dst].deliveryTime
	s.Observe(bdt, queryTime)
	return buildRoute(contacts, bdt, capacityOf)
}
