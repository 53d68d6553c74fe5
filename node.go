package dtnsim

// node.go implements the forwarding node, grounded on
// pydtnsim.nodes.simple_cgr_node.SimpleCGRNode. A Node owns a limbo queue
// (packets it could not route at all) and hands every other packet to a
// RoutingAlgorithm, which proposes a next-hop Contact that the Node then
// enqueues the packet onto.

// Limbo is the FIFO holding packets a node could not find any route for.
// Packets remain here until RetryLimbo is called, mirroring pydtnsim's limbo
// list; the Simulator never calls it, so in a simulator run they stay here
// and are counted in the final statistics.
type Limbo struct {
	packets []*Packet
}

func (l *Limbo) Add(p *Packet) { l.packets = append(l.packets, p) }

func (l *Limbo) Drain() []*Packet {
	out := l.packets
	l.packets = nil
	return out
}

func (l *Limbo) Len() int { return len(l.packets) }

// Node is a CGR-routing DTN node: on receiving or generating a packet, it
// asks its RoutingAlgorithm for a route and either books the packet onto
// the resulting next hop's Contact or files it in limbo.
type Node struct {
	ID string

	Graph     *ContactGraph
	Algorithm RoutingAlgorithm
	Contacts  map[ContactIdentifier]*Contact // outbound runtime contacts, keyed by plan entry
	Monitor   Monitor

	limbo Limbo

	// capacityOf reports the remaining capacity of a runtime contact for
	// route-ranking purposes; it is supplied rather than hardcoded so
	// tests can stub it independently of contact_runtime.go.
	capacityOf func(ContactIdentifier) int64
}

// NewNode constructs a Node. Its route queries see the live remaining
// capacity of contacts attached with AttachContact; any other contact is
// reported at its nominal bandwidth-time product.
func NewNode(id string, graph *ContactGraph, algorithm RoutingAlgorithm, monitor Monitor) *Node {
	n := &Node{ID: id, Graph: graph, Algorithm: algorithm, Contacts: make(map[ContactIdentifier]*Contact), Monitor: monitor}
	n.capacityOf = func(c ContactIdentifier) int64 {
		if rc, ok := n.Contacts[c]; ok {
			return rc.remainingCapacity
		}
		return c.Datarate * (c.ToTime - c.FromTime)
	}
	return n
}

// AttachContact registers the runtime Contact for one of this node's
// outbound plan entries so route queries see live remaining capacity.
func (n *Node) AttachContact(c *Contact) { n.Contacts[c.ID] = c }

// Forward is the node's core decision point, called whenever it becomes
// custodian of a packet (by generation, injection, or handover). now is
// the current simulation time in ms; deliver is called if the packet's
// destination is this node; enqueue is called with the chosen contact and
// a completion callback if a route was found.
func (n *Node) Forward(now int64, p *Packet, deliver func(*Packet), enqueue func(*Contact, *Packet, func(*Packet, int64))) {
	if p.Destination == n.ID {
		deliver(p)
		if n.Monitor != nil {
			n.Monitor.OnPacketDelivered(p, now)
		}
		return
	}

	excluded := n.hotspotExclusions(p)
	route, ok := n.Algorithm.Route(n.Graph, n.ID, p.Destination, now, p.Size, excluded, nil, n.capacityOf)
	if n.Monitor != nil {
		n.Monitor.OnRoutingDecision(p, n.ID, ok, now)
	}
	if !ok {
		n.limbo.Add(p)
		if n.Monitor != nil {
			n.Monitor.OnPacketEnqueuedLimbo(p, n.ID, now)
		}
		return
	}

	p.onInitialRoute = false
	if n.Monitor != nil {
		n.Monitor.OnPacketRouted(p, route, now)
	}

	contact, known := n.Contacts[route.NextHop]
	if !known {
		invariantViolation("node %s routed packet %d onto unregistered contact %s", n.ID, p.Identifier, route.NextHop)
	}
	// debit the plan-contact's remaining capacity the instant the route is
	// accepted, so a second packet routed around the same time sees the
	// reduced capacity rather than over-booking the contact.
	contact.DebitCapacity(p.Size)
	enqueue(contact, p, func(delivered *Packet, arrival int64) {
		delivered.AddHop(route.NextHop, now, arrival)
	})
}

// hotspotExclusions implements the anti-loop rule: a packet may never be
// routed back through a node it has already visited, except for its
// original source when ReturnToSender is set.
func (n *Node) hotspotExclusions(p *Packet) []string {
	seen := make(map[string]bool)
	var excluded []string
	add := func(node string) {
		if !seen[node] {
			seen[node] = true
			excluded = append(excluded, node)
		}
	}
	for _, hop := range p.Trace {
		add(hop.Contact.FromNode)
	}
	if p.ReturnToSender {
		// the source remains a legal relay when return-to-sender is set.
		filtered := excluded[:0]
		for _, node := range excluded {
			if node != p.Source {
				filtered = append(filtered, node)
			}
		}
		excluded = filtered
	}
	return excluded
}

// RetryLimbo hands every packet currently in limbo back through Forward,
// e.g. after a new contact activates and might open up a route. Nothing in
// this package calls it; it is there for callers that drive retries.
func (n *Node) RetryLimbo(now int64, deliver func(*Packet), enqueue func(*Contact, *Packet, func(*Packet, int64))) {
	pending := n.limbo.Drain()
	for _, p := range pending {
		n.Forward(now, p, deliver, enqueue)
	}
}
