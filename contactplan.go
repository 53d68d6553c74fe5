package dtnsim

// contactplan.go implements the ContactPlan, the human-oriented description
// of planned contacts between nodes, together with the immutable
// ContactIdentifier plan-entry type. Mirrors pydtnsim.contact_plan.ContactPlan
// and pydtnsim.contact_plan.ContactIdentifier, adapted to Go value types.

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

// ContactIdentifier is an immutable plan-entry contact: a half-open window
// [FromTime, ToTime) during which FromNode can transmit to ToNode at
// Datarate bytes/ms with propagation Delay ms. Two ContactIdentifiers with
// identical fields compare equal, so they can be used directly as map keys
// and as ContactGraph vertices.
type ContactIdentifier struct {
	FromNode string
	ToNode   string
	FromTime int64
	ToTime   int64
	Datarate int64 // bytes/ms
	Delay    int64 // ms
}

func (c ContactIdentifier) String() string {
	return fmt.Sprintf("%s->%s[%d,%d)@%d+%d", c.FromNode, c.ToNode, c.FromTime, c.ToTime, c.Datarate, c.Delay)
}

// isNominal reports whether c is a synthetic source/destination vertex
// rather than a plan-entry contact.
func (c ContactIdentifier) isNominal() bool {
	return c.FromNode == c.ToNode && c.FromTime == 0 && c.ToTime == math.MaxInt64
}

// nominalVertex returns the synthetic source- or destination-nominal vertex
// for the given node id.
func nominalVertex(node string) ContactIdentifier {
	return ContactIdentifier{FromNode: node, ToNode: node, FromTime: 0, ToTime: math.MaxInt64}
}

// validate checks the plan-entry invariants: FromTime < ToTime, Datarate >
// 0, Delay > 0 (a zero delay is forbidden as it would allow zero-duration
// forwarding loops).
func (c ContactIdentifier) validate() error {
	if c.FromTime >= c.ToTime {
		return &ConfigurationError{Reason: fmt.Sprintf("contact %s has from_time >= to_time", c)}
	}
	if c.Datarate <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("contact %s has non-positive datarate", c)}
	}
	if c.Delay <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("contact %s has non-positive delay", c)}
	}
	return nil
}

// ContactPlan is a set of plan-entry contacts plus default datarate/delay
// used when a caller adds a contact without specifying them. It provides
// the deterministic query operations the ContactGraph builder and the
// summary statistics rely on.
type ContactPlan struct {
	DefaultDatarate int64
	DefaultDelay    int64

	contacts []ContactIdentifier
	nodes    []string
	nodeSet  map[string]bool
}

// NewContactPlan constructs an empty ContactPlan with the given defaults.
func NewContactPlan(defaultDatarate, defaultDelay int64) *ContactPlan {
	return &ContactPlan{
		DefaultDatarate: defaultDatarate,
		DefaultDelay:    defaultDelay,
		nodeSet:         make(map[string]bool),
	}
}

// AddContact appends a contact to the plan. A datarate or delay of 0 is
// interpreted as "use the plan default". AddContact never de-duplicates:
// callers may legitimately add multiple contacts with identical
// characteristics.
func (cp *ContactPlan) AddContact(from, to string, fromTime, toTime int64, datarate, delay int64) error {
	if datarate == 0 {
		datarate = cp.DefaultDatarate
	}
	if delay == 0 {
		delay = cp.DefaultDelay
	}
	c := ContactIdentifier{FromNode: from, ToNode: to, FromTime: fromTime, ToTime: toTime, Datarate: datarate, Delay: delay}
	if err := c.validate(); err != nil {
		return err
	}
	cp.contacts = append(cp.contacts, c)
	cp.addNode(from)
	cp.addNode(to)
	return nil
}

func (cp *ContactPlan) addNode(node string) {
	if !cp.nodeSet[node] {
		cp.nodeSet[node] = true
		cp.nodes = append(cp.nodes, node)
	}
}

// AddNode registers a node that may have no contacts of its own yet (e.g.
// an isolated node that will only ever be a packet source or sink).
func (cp *ContactPlan) AddNode(node string) {
	cp.addNode(node)
}

// Nodes returns every node id mentioned by the plan, in first-seen order.
func (cp *ContactPlan) Nodes() []string {
	out := make([]string, len(cp.nodes))
	copy(out, cp.nodes)
	return out
}

// HasNode reports whether node id was ever registered with the plan.
func (cp *ContactPlan) HasNode(node string) bool {
	return cp.nodeSet[node]
}

// OutboundContacts returns every contact whose FromNode equals node, in the
// order they were added to the plan.
func (cp *ContactPlan) OutboundContacts(node string) []ContactIdentifier {
	var out []ContactIdentifier
	for _, c := range cp.contacts {
		if c.FromNode == node {
			out = append(out, c)
		}
	}
	return out
}

// AllContacts returns every contact in insertion order.
func (cp *ContactPlan) AllContacts() []ContactIdentifier {
	out := make([]ContactIdentifier, len(cp.contacts))
	copy(out, cp.contacts)
	return out
}

// AllContactsSorted returns every contact sorted deterministically by
// (FromTime, FromNode, ToNode, ToTime).
func (cp *ContactPlan) AllContactsSorted() []ContactIdentifier {
	out := cp.AllContacts()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FromTime != b.FromTime {
			return a.FromTime < b.FromTime
		}
		if a.FromNode != b.FromNode {
			return a.FromNode < b.FromNode
		}
		if a.ToNode != b.ToNode {
			return a.ToNode < b.ToNode
		}
		return a.ToTime < b.ToTime
	})
	return out
}

// hasNeighborAmong reports whether node appears in the (typically short)
// excluded-node list, using golang.org/x/exp/slices for membership checks
// on small lists.
func hasNeighborAmong(nodes []string, node string) bool {
	return slices.Contains(nodes, node)
}
