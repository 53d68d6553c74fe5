package dtnsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeForwardDeliversLocalDestination(t *testing.T) {
	plan := NewContactPlan(1000, 1)
	require.NoError(t, plan.AddContact("a", "b", 0, 100, 0, 0))
	g := BuildContactGraph(plan, DefaultHashSeed)

	n := NewNode("b", g, BasicCGR{HashSeed: DefaultHashSeed}, nil)

	p := NewPacket(1, "a", "b", 10, 0)
	var delivered bool
	n.Forward(0, p, func(*Packet) { delivered = true }, func(*Contact, *Packet, func(*Packet, int64)) {
		t.Fatal("should not attempt to enqueue a locally-destined packet")
	})
	assert.True(t, delivered)
}

func TestNodeForwardFilesInLimboWhenUnreachable(t *testing.T) {
	plan := NewContactPlan(1000, 1)
	require.NoError(t, plan.AddContact("a", "b", 0, 100, 0, 0))
	g := BuildContactGraph(plan, DefaultHashSeed)

	n := NewNode("a", g, BasicCGR{HashSeed: DefaultHashSeed}, nil)

	p := NewPacket(1, "a", "nowhere", 10, 0)
	n.Forward(0, p, func(*Packet) { t.Fatal("should not deliver") }, func(*Contact, *Packet, func(*Packet, int64)) {
		t.Fatal("should not enqueue an unroutable packet")
	})
	assert.Equal(t, 1, n.limbo.Len())
}

func TestNodeForwardEnqueuesOnRoutedContact(t *testing.T) {
	plan := NewContactPlan(1000, 1)
	require.NoError(t, plan.AddContact("a", "b", 0, 100, 0, 0))
	g := BuildContactGraph(plan, DefaultHashSeed)

	n := NewNode("a", g, BasicCGR{HashSeed: DefaultHashSeed}, nil)
	ab := plan.AllContacts()[0]
	rc := NewContact(ab)
	n.AttachContact(rc)

	p := NewPacket(1, "a", "b", 10, 0)
	var enqueuedOn *Contact
	n.Forward(0, p, func(*Packet) { t.Fatal("b is not this node") }, func(c *Contact, pkt *Packet, onDeliver func(*Packet, int64)) {
		enqueuedOn = c
	})
	require.NotNil(t, enqueuedOn)
	assert.Equal(t, rc, enqueuedOn)
	assert.Equal(t, 0, n.limbo.Len())
	assert.Equal(t, ab.Datarate*(ab.ToTime-ab.FromTime)-p.Size, rc.remainingCapacity)
}

func TestHotspotExclusionsExcludeVisitedNodesIncludingSource(t *testing.T) {
	n := &Node{ID: "c"}
	p := NewPacket(1, "a", "d", 10, 0)
	p.AddHop(ContactIdentifier{FromNode: "a", ToNode: "b", FromTime: 0, ToTime: 10, Datarate: 1, Delay: 1}, 0, 5)
	p.AddHop(ContactIdentifier{FromNode: "b", ToNode: "c", FromTime: 5, ToTime: 15, Datarate: 1, Delay: 1}, 5, 10)

	excluded := n.hotspotExclusions(p)
	assert.Contains(t, excluded, "a")
	assert.Contains(t, excluded, "b")
}

func TestHotspotExclusionsAllowSourceWhenReturnToSender(t *testing.T) {
	n := &Node{ID: "c"}
	p := NewPacket(1, "a", "d", 10, 0)
	p.ReturnToSender = true
	p.AddHop(ContactIdentifier{FromNode: "a", ToNode: "b", FromTime: 0, ToTime: 10, Datarate: 1, Delay: 1}, 0, 5)

	excluded := n.hotspotExclusions(p)
	assert.NotContains(t, excluded, "a")
}
