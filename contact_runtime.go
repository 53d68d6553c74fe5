package dtnsim

// contact_runtime.go implements the runtime Contact: the mutable,
// time-bounded half-duplex channel a Node transmits packets over. It
// adapts a TaskScheduler/Task/reqSrvHeap style of residual-service
// bookkeeping down from "N cores, arbitrary operations" to "one
// half-duplex channel, packet transmissions" — the heap still orders work
// by residual service, but here "service" is transmission time in ms
// rather than seconds, and there is always exactly one core because a
// contact can send only one packet at a time. Unlike a preemptible task, a
// packet transmission is atomic: it either completes in full before the
// window closes or it doesn't start.

import (
	"container/heap"

	"github.com/iti/evt/evtm"
	"github.com/iti/evt/vrtime"
)

// transmission is one packet's pending send over a Contact.
type transmission struct {
	packet      *Packet
	remaining   int64 // bytes to send; always packet.Size, sends are atomic
	completesAt int64 // absolute ms this send finishes
	deliverFunc func(*Packet, int64)
}

type transmissionHeap []*transmission

func (h transmissionHeap) Len() int            { return len(h) }
func (h transmissionHeap) Less(i, j int) bool   { return h[i].remaining < h[j].remaining }
func (h transmissionHeap) Swap(i, j int)        { h[i], h[j] = h[j], h[i] }
func (h *transmissionHeap) Push(x any)          { *h = append(*h, x.(*transmission)) }
func (h *transmissionHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// Contact is the runtime counterpart of a ContactIdentifier: it tracks
// remaining (booking-time) capacity, a FIFO send queue, and utilization
// while the plan entry's window is open.
type Contact struct {
	ID ContactIdentifier

	remainingCapacity int64 // bytes not yet committed to a booked packet
	bytesSent         int64 // bytes actually transmitted, for Utilization
	active            bool

	waiting        []*Packet
	overflow       []*Packet
	pendingDeliver map[int]func(*Packet, int64)
	inservice      transmissionHeap

	monitors []Monitor
}

// NewContact constructs a runtime Contact for the given plan-entry window,
// with its full nominal capacity available for booking. It starts
// inactive; call Activate at ID.FromTime to begin draining its FIFO. The
// capacity is available for booking immediately, even before activation,
// since a router may accept a route onto this contact long before its
// window opens.
func NewContact(id ContactIdentifier) *Contact {
	c := &Contact{
		ID:                id,
		remainingCapacity: id.Datarate * (id.ToTime - id.FromTime),
		pendingDeliver:    make(map[int]func(*Packet, int64)),
	}
	heap.Init(&c.inservice)
	return c
}

// AddMonitor registers a Monitor to be notified of this contact's
// transmission events, in addition to whatever simulator-wide monitors the
// Node-level code drives.
func (c *Contact) AddMonitor(m Monitor) { c.monitors = append(c.monitors, m) }

// DebitCapacity reserves size bytes of this contact's remaining capacity,
// independent of when the contact itself actually transmits the packet.
// Called by the forwarding Node the instant a route using this contact is
// accepted.
func (c *Contact) DebitCapacity(size int64) { c.remainingCapacity -= size }

// Activate opens the contact for transmissions and schedules its own
// end-of-window event. Called once, at ID.FromTime.
func (c *Contact) Activate(evtMgr *evtm.EventManager, now int64) {
	c.active = true
	for _, m := range c.monitors {
		m.OnContactStarted(c.ID, now)
	}
	evtMgr.Schedule(c, nil, contactWindowClosed, vrtime.SecondsToTime(msToSeconds(c.ID.ToTime-now)))
	c.resumeWaiting(evtMgr, now)
}

// Enqueue appends packet to the contact's FIFO send queue and, if the
// channel is idle, immediately begins transmitting it.
func (c *Contact) Enqueue(evtMgr *evtm.EventManager, now int64, p *Packet, deliver func(*Packet, int64)) {
	if !c.active || len(c.inservice) > 0 {
		c.waiting = append(c.waiting, p)
		c.pendingDeliver[p.Identifier] = deliver
		return
	}
	c.beginTransmission(evtMgr, now, &transmission{packet: p, remaining: p.Size, deliverFunc: deliver})
}

// ceilDiv computes ceil(a/b) for a non-negative byte count a and a positive
// datarate b, the transmission-duration rounding rule: a packet that does
// not divide evenly into whole datarate-ms units still occupies a full ms.
func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func (c *Contact) beginTransmission(evtMgr *evtm.EventManager, now int64, t *transmission) {
	durationMs := ceilDiv(t.remaining, c.ID.Datarate)
	if now+durationMs > c.ID.ToTime {
		// the packet cannot finish transmitting before the window closes:
		// strand it whole and stop draining the FIFO.
		c.overflow = append(c.overflow, t.packet)
		for _, m := range c.monitors {
			m.OnCapacityExhausted(c.ID, t.packet.Identifier)
		}
		return
	}
	t.completesAt = now + durationMs
	heap.Push(&c.inservice, t)
	evtMgr.Schedule(c, t, transmissionComplete, vrtime.SecondsToTime(msToSeconds(durationMs)))
}

func msToSeconds(ms int64) float64 { return float64(ms) / 1000.0 }

// transmissionComplete fires when a packet finishes sending in full.
func transmissionComplete(evtMgr *evtm.EventManager, context any, data any) any {
	c := context.(*Contact)
	t := data.(*transmission)
	heap.Remove(&c.inservice, indexOf(c.inservice, t))
	c.bytesSent += t.packet.Size
	// the packet arrives when its transmission completes: the contact's
	// propagation Delay is used by routing only and is not added here.
	t.deliverFunc(t.packet, t.completesAt)
	c.resumeWaiting(evtMgr, t.completesAt)
	return nil
}

// contactWindowClosed fires at ID.ToTime: the contact deactivates and any
// packets still waiting move to its overflow, where Enqueued counts them.
func contactWindowClosed(evtMgr *evtm.EventManager, context any, data any) any {
	c := context.(*Contact)
	c.active = false
	stranded := c.waiting
	c.waiting = nil
	c.overflow = append(c.overflow, stranded...)
	for _, m := range c.monitors {
		m.OnContactEnded(c.ID, c.ID.ToTime, len(stranded))
	}
	return nil
}

func (c *Contact) resumeWaiting(evtMgr *evtm.EventManager, now int64) {
	if !c.active || len(c.waiting) == 0 {
		return
	}
	next := c.waiting[0]
	c.waiting = c.waiting[1:]
	deliver := c.pendingDeliver[next.Identifier]
	delete(c.pendingDeliver, next.Identifier)
	c.beginTransmission(evtMgr, now, &transmission{packet: next, remaining: next.Size, deliverFunc: deliver})
}

func indexOf(h transmissionHeap, t *transmission) int {
	for i, x := range h {
		if x == t {
			return i
		}
	}
	return -1
}

// Enqueued reports how many packets are currently parked on this contact —
// waiting to be sent, in flight, or stranded in its overflow — for the
// "enqueued in contacts" summary statistic.
func (c *Contact) Enqueued() int {
	return len(c.waiting) + len(c.inservice) + len(c.overflow)
}

// Utilization returns the fraction of this contact's total capacity that
// was actually used, for the final statistics block.
func (c *Contact) Utilization() float64 {
	total := c.ID.Datarate * (c.ID.ToTime - c.ID.FromTime)
	if total == 0 {
		return 0
	}
	return float64(c.bytesSent) / float64(total)
}
