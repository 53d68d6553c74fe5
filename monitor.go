package dtnsim

// monitor.go implements the observer surface, grounded on
// pydtnsim.monitors.base_monitor.BaseMonitor and
// pydtnsim.monitors.monitor_notifier.MonitorNotifier. Every callback has a
// no-op default via BaseMonitor so concrete monitors only implement the
// events they care about, matching a convention of cheap opt-in
// instrumentation.

// Monitor receives every observable event of a simulation run, in the
// order the kernel produces them.
type Monitor interface {
	OnPacketGenerated(p *Packet, now int64)
	OnPacketInjected(p *Packet, now int64)
	OnPacketRouted(p *Packet, route Route, now int64)
	OnPacketDelivered(p *Packet, now int64)
	OnPacketEnqueuedLimbo(p *Packet, node string, now int64)
	OnContactStarted(c ContactIdentifier, now int64)
	OnContactEnded(c ContactIdentifier, now int64, strandedCount int)
	OnRoutingDecision(p *Packet, atNode string, ok bool, now int64)
	OnCapacityExhausted(c ContactIdentifier, packetID int)
}

// BaseMonitor implements Monitor with every method a no-op. Embed it in a
// concrete monitor to override only the callbacks you need.
type BaseMonitor struct{}

func (BaseMonitor) OnPacketGenerated(*Packet, int64)              {}
func (BaseMonitor) OnPacketInjected(*Packet, int64)               {}
func (BaseMonitor) OnPacketRouted(*Packet, Route, int64)          {}
func (BaseMonitor) OnPacketDelivered(*Packet, int64)              {}
func (BaseMonitor) OnPacketEnqueuedLimbo(*Packet, string, int64)  {}
func (BaseMonitor) OnContactStarted(ContactIdentifier, int64)     {}
func (BaseMonitor) OnContactEnded(ContactIdentifier, int64, int)  {}
func (BaseMonitor) OnRoutingDecision(*Packet, string, bool, int64) {}
func (BaseMonitor) OnCapacityExhausted(ContactIdentifier, int)    {}

// MonitorNotifier fans every event out to a registry of monitors, in the
// order they were registered. It itself implements Monitor so the
// Simulator only ever needs to hold one.
type MonitorNotifier struct {
	monitors []Monitor
}

// NewMonitorNotifier constructs an empty notifier.
func NewMonitorNotifier() *MonitorNotifier { return &MonitorNotifier{} }

// Register adds m to the notification list. Registration order is
// significant: it is the order callbacks fire in.
func (n *MonitorNotifier) Register(m Monitor) { n.monitors = append(n.monitors, m) }

func (n *MonitorNotifier) OnPacketGenerated(p *Packet, now int64) {
	for _, m := range n.monitors {
		m.OnPacketGenerated(p, now)
	}
}

func (n *MonitorNotifier) OnPacketInjected(p *Packet, now int64) {
	for _, m := range n.monitors {
		m.OnPacketInjected(p, now)
	}
}

func (n *MonitorNotifier) OnPacketRouted(p *Packet, route Route, now int64) {
	for _, m := range n.monitors {
		m.OnPacketRouted(p, route, now)
	}
}

func (n *MonitorNotifier) OnPacketDelivered(p *Packet, now int64) {
	for _, m := range n.monitors {
		m.OnPacketDelivered(p, now)
	}
}

func (n *MonitorNotifier) OnPacketEnqueuedLimbo(p *Packet, node string, now int64) {
	for _, m := range n.monitors {
		m.OnPacketEnqueuedLimbo(p, node, now)
	}
}

func (n *MonitorNotifier) OnContactStarted(c ContactIdentifier, now int64) {
	for _, m := range n.monitors {
		m.OnContactStarted(c, now)
	}
}

func (n *MonitorNotifier) OnContactEnded(c ContactIdentifier, now int64, strandedCount int) {
	for _, m := range n.monitors {
		m.OnContactEnded(c, now, strandedCount)
	}
}

func (n *MonitorNotifier) OnRoutingDecision(p *Packet, atNode string, ok bool, now int64) {
	for _, m := range n.monitors {
		m.OnRoutingDecision(p, atNode, ok, now)
	}
}

func (n *MonitorNotifier) OnCapacityExhausted(c ContactIdentifier, packetID int) {
	for _, m := range n.monitors {
		m.OnCapacityExhausted(c, packetID)
	}
}
