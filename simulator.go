package dtnsim

// simulator.go implements the Simulator kernel, a thin
// determinism-preserving contract layer over *evtm.EventManager (the same
// event-driven core used unmodified by contact_runtime.go and
// generator.go). The wrapper translates an absolute-millisecond scheduling
// contract into evtm's relative-offset Schedule calls and enforces the
// half-open run(untilMs) horizon, since evtm itself knows nothing about
// either.

import (
	"github.com/iti/evt/evtm"
	"github.com/iti/evt/vrtime"
	"gonum.org/v1/gonum/stat"
)

// Simulator owns the event-driven core, the contact plan's runtime
// counterparts, the node registry, and the monitor fan-out for one run.
// Registries are ordered slices paired with id-keyed lookup maps rather than
// bare maps, so iteration order (and therefore event tie-breaking derived
// from registration order) never depends on Go's randomized map order.
type Simulator struct {
	evtMgr *evtm.EventManager
	now    int64
	horizon int64

	plan  *ContactPlan
	graph *ContactGraph

	nodeOrder []string
	nodes     map[string]*Node

	contactOrder []ContactIdentifier
	contacts     map[ContactIdentifier]*Contact

	generators []Generator

	Monitor *MonitorNotifier

	nextPacketID  int
	deliveredCount int
	hashSeed      uint64
}

// NewSimulator constructs a Simulator over the given contact plan. hashSeed
// selects the stable-hash tie-breaking function (DefaultHashSeed unless the
// caller needs a distinct deterministic ordering).
func NewSimulator(plan *ContactPlan, hashSeed uint64) *Simulator {
	graph := BuildContactGraph(plan, hashSeed)
	s := &Simulator{
		evtMgr:   evtm.New(),
		plan:     plan,
		graph:    graph,
		nodes:    make(map[string]*Node),
		contacts: make(map[ContactIdentifier]*Contact),
		Monitor:  NewMonitorNotifier(),
		hashSeed: hashSeed,
	}
	for _, c := range plan.AllContactsSorted() {
		rc := NewContact(c)
		rc.AddMonitor(s.Monitor)
		s.contacts[c] = rc
		s.contactOrder = append(s.contactOrder, c)
	}
	return s
}

// NextPacketID returns a fresh, monotonically increasing packet identifier.
func (s *Simulator) NextPacketID() int {
	s.nextPacketID++
	return s.nextPacketID
}

// AddNode registers a forwarding node, wiring it to this simulator's
// contact graph and monitor stream, and attaches its outbound runtime
// contacts.
func (s *Simulator) AddNode(id string, algorithm RoutingAlgorithm) *Node {
	if _, exists := s.nodes[id]; exists {
		invariantViolation("node %s registered twice", id)
	}
	n := NewNode(id, s.graph, algorithm, s.Monitor)
	for _, c := range s.plan.OutboundContacts(id) {
		rc := s.contacts[c]
		n.AttachContact(rc)
	}
	s.nodes[id] = n
	s.nodeOrder = append(s.nodeOrder, id)
	return n
}

// RegisterGenerator adds a Generator to be started at time 0 when Run is
// called. Generators are started in registration order.
func (s *Simulator) RegisterGenerator(g Generator) {
	s.generators = append(s.generators, g)
}

// RegisterMonitor adds a Monitor to the fan-out, in registration order.
func (s *Simulator) RegisterMonitor(m Monitor) {
	s.Monitor.Register(m)
}

// Inject implements Sink: it hands a freshly-generated packet to its
// source node's forwarding logic and notifies monitors.
func (s *Simulator) Inject(now int64, p *Packet) {
	s.Monitor.OnPacketGenerated(p, now)
	s.Monitor.OnPacketInjected(p, now)
	node, ok := s.nodes[p.Source]
	if !ok {
		invariantViolation("packet %d generated at unregistered node %s", p.Identifier, p.Source)
	}
	s.forward(now, node, p)
}

func (s *Simulator) forward(now int64, node *Node, p *Packet) {
	node.Forward(now, p,
		func(delivered *Packet) { s.deliveredCount++ },
		func(contact *Contact, pkt *Packet, onDeliver func(*Packet, int64)) {
			contact.Enqueue(s.evtMgr, now, pkt, func(delivered *Packet, arrival int64) {
				onDeliver(delivered, arrival)
				if next, ok := s.nodes[delivered.Owner]; ok {
					s.forward(arrival, next, delivered)
				}
			})
		},
	)
}

// Schedule posts an absolute-time event at atMs. It returns ScheduleInPast
// if atMs is strictly before the kernel's current time.
func (s *Simulator) Schedule(context any, data any, handler evtm.EventHandlerFunction, atMs int64) error {
	if atMs < s.now {
		return &ScheduleInPast{Now: s.now, Requested: atMs}
	}
	s.evtMgr.Schedule(context, data, handler, vrtime.SecondsToTime(msToSeconds(atMs-s.now)))
	return nil
}

// Run advances the simulation until untilMs, exclusive: no event timestamped
// at or after untilMs is executed.
func (s *Simulator) Run(untilMs int64) {
	s.horizon = untilMs

	for _, c := range s.contactOrder {
		if c.FromTime < untilMs {
			s.evtMgr.Schedule(s.contacts[c], nil, activateContactHandler, vrtime.SecondsToTime(msToSeconds(c.FromTime)))
		}
	}
	for _, g := range s.generators {
		g.SetHorizon(untilMs)
		g.Start(s.evtMgr)
	}

	s.evtMgr.Run(msToSeconds(untilMs))
	s.now = untilMs
}

func activateContactHandler(evtMgr *evtm.EventManager, context any, data any) any {
	c := context.(*Contact)
	c.Activate(evtMgr, c.ID.FromTime)
	return nil
}

// Statistics is the final run summary block.
type Statistics struct {
	TotalPacketsGenerated      int
	TotalPacketsDelivered      int
	TotalPacketsInLimbo        int
	TotalPacketsInContacts     int
	AverageContactUtilization float64
	PerContactUtilization      map[ContactIdentifier]float64
}

// Statistics computes the final-state summary. It walks the node and
// contact registries in their registration order so the result's
// PerContactUtilization, while a map, was populated deterministically.
func (s *Simulator) Statistics() Statistics {
	var util []float64
	perContact := make(map[ContactIdentifier]float64)
	var inContacts int
	for _, c := range s.contactOrder {
		rc := s.contacts[c]
		u := rc.Utilization()
		perContact[c] = u
		util = append(util, u)
		inContacts += rc.Enqueued()
	}

	var limboed int
	for _, id := range s.nodeOrder {
		limboed += s.nodes[id].limbo.Len()
	}

	mean := 0.0
	if len(util) > 0 {
		mean = stat.Mean(util, nil)
	}

	return Statistics{
		TotalPacketsGenerated:      s.nextPacketID,
		TotalPacketsDelivered:      s.deliveredCount,
		TotalPacketsInLimbo:        limboed,
		TotalPacketsInContacts:     inContacts,
		AverageContactUtilization: mean,
		PerContactUtilization:      perContact,
	}
}

// Nodes returns every registered node id, in registration order.
func (s *Simulator) Nodes() []string {
	out := make([]string, len(s.nodeOrder))
	copy(out, s.nodeOrder)
	return out
}
