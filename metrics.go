package dtnsim

// metrics.go implements a Prometheus-backed Monitor, grounded on
// xiaonanln-goverse's util/metrics package (promauto GaugeVec/CounterVec
// construction, RecordX/SetX helper functions). Unlike that package's
// process-wide globals, MetricsMonitor owns its own prometheus.Registry so
// that multiple simulation runs in the same process (e.g. in tests) never
// collide on metric registration.
import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsMonitor records simulation events as Prometheus metrics. It
// implements every Monitor method directly except OnPacketRouted, which it
// does not record and takes as a no-op from the embedded BaseMonitor.
type MetricsMonitor struct {
	BaseMonitor

	Registry *prometheus.Registry

	packetsGenerated  prometheus.Counter
	packetsInjected   prometheus.Counter
	packetsDelivered  prometheus.Counter
	packetsLimboed    *prometheus.CounterVec
	routingDecisions  *prometheus.CounterVec
	contactsStarted   prometheus.Counter
	contactsEnded     *prometheus.CounterVec
	capacityExhausted prometheus.Counter
}

// NewMetricsMonitor constructs a MetricsMonitor registered against a fresh
// registry, so callers can expose it via promhttp independently per run.
func NewMetricsMonitor() *MetricsMonitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsMonitor{
		Registry: reg,
		packetsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "dtnsim_packets_generated_total",
			Help: "Total number of packets created by generators.",
		}),
		packetsInjected: factory.NewCounter(prometheus.CounterOpts{
			Name: "dtnsim_packets_injected_total",
			Help: "Total number of packets injected into a node's forwarding logic.",
		}),
		packetsDelivered: factory.NewCounter(prometheus.CounterOpts{
			Name: "dtnsim_packets_delivered_total",
			Help: "Total number of packets that reached their destination.",
		}),
		packetsLimboed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dtnsim_packets_limboed_total",
			Help: "Total number of packets that could not be routed, by node.",
		}, []string{"node"}),
		routingDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dtnsim_routing_decisions_total",
			Help: "Total number of routing attempts, by node and outcome.",
		}, []string{"node", "outcome"}),
		contactsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dtnsim_contacts_started_total",
			Help: "Total number of contact windows that opened.",
		}),
		contactsEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dtnsim_contacts_ended_total",
			Help: "Total number of contact windows that closed, by whether packets were stranded.",
		}, []string{"stranded"}),
		capacityExhausted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dtnsim_capacity_exhausted_total",
			Help: "Total number of transmissions that could not finish before a contact's window closed.",
		}),
	}
}

func (m *MetricsMonitor) OnPacketGenerated(*Packet, int64) { m.packetsGenerated.Inc() }
func (m *MetricsMonitor) OnPacketInjected(*Packet, int64)  { m.packetsInjected.Inc() }
func (m *MetricsMonitor) OnPacketDelivered(*Packet, int64) { m.packetsDelivered.Inc() }

func (m *MetricsMonitor) OnPacketEnqueuedLimbo(p *Packet, node string, now int64) {
	m.packetsLimboed.WithLabelValues(node).Inc()
}

func (m *MetricsMonitor) OnRoutingDecision(p *Packet, atNode string, ok bool, now int64) {
	outcome := "routed"
	if !ok {
		outcome = "infeasible"
	}
	m.routingDecisions.WithLabelValues(atNode, outcome).Inc()
}

func (m *MetricsMonitor) OnContactStarted(ContactIdentifier, int64) { m.contactsStarted.Inc() }

func (m *MetricsMonitor) OnContactEnded(c ContactIdentifier, now int64, strandedCount int) {
	stranded := "false"
	if strandedCount > 0 {
		stranded = "true"
	}
	m.contactsEnded.WithLabelValues(stranded).Inc()
}

func (m *MetricsMonitor) OnCapacityExhausted(ContactIdentifier, int) { m.capacityExhausted.Inc() }
