package dtnsim

// generator.go implements packet generators: sources that emit packets on
// a schedule of their own, grounded on
// pydtnsim.packet_generators.base_packet_generator,
// continuous_packet_generator and batch_packet_generator, expressed with
// an evtm self-rescheduling idiom (an event handler that ends by
// scheduling its own next firing).

import (
	"github.com/iti/evt/evtm"
	"github.com/iti/evt/vrtime"
)

// Generator produces packets on a schedule of its own choosing and hands
// each one to a Sink for injection into the network.
type Generator interface {
	// Start schedules the generator's first event. It is called once, at
	// simulation time 0.
	Start(evtMgr *evtm.EventManager)

	// SetHorizon tells the generator the exclusive upper bound of the
	// current run, so it can refuse to emit (or reschedule itself) at or
	// after it — evtm's own Run(until) has no notion of this contract, so
	// the generator must enforce it itself. Called by Simulator.Run before
	// Start.
	SetHorizon(untilMs int64)
}

// Sink is the callback surface a Generator injects packets through; the
// Simulator supplies one bound to a specific source Node.
type Sink interface {
	Inject(now int64, p *Packet)
}

// ContinuousGenerator emits one packet every IntervalMs, the first at
// StartMs+IntervalMs (nothing is emitted at StartMs itself), stopping once Count packets have been emitted (Count <= 0
// means unbounded — the generator runs until the Simulator's horizon
// simply stops scheduling further events beyond it).
type ContinuousGenerator struct {
	Source, Destination string
	Size                int64
	IntervalMs          int64
	StartMs             int64
	Count                int

	sink     Sink
	nextID   func() int
	emitted  int
	horizon  int64
}

// NewContinuousGenerator constructs a generator; nextID supplies unique,
// monotonically increasing packet identifiers (typically Simulator.NextPacketID).
func NewContinuousGenerator(source, destination string, size, intervalMs, startMs int64, count int, sink Sink, nextID func() int) *ContinuousGenerator {
	return &ContinuousGenerator{
		Source: source, Destination: destination, Size: size,
		IntervalMs: intervalMs, StartMs: startMs, Count: count,
		sink: sink, nextID: nextID,
	}
}

func (g *ContinuousGenerator) SetHorizon(untilMs int64) { g.horizon = untilMs }

func (g *ContinuousGenerator) Start(evtMgr *evtm.EventManager) {
	first := g.StartMs + g.IntervalMs
	if g.horizon > 0 && first >= g.horizon {
		return
	}
	evtMgr.Schedule(g, nil, continuousGeneratorFire, vrtime.SecondsToTime(msToSeconds(first-g.StartMs)))
}

func continuousGeneratorFire(evtMgr *evtm.EventManager, context any, data any) any {
	g := context.(*ContinuousGenerator)
	now := g.StartMs + int64(g.emitted+1)*g.IntervalMs
	if g.horizon > 0 && now >= g.horizon {
		return nil
	}
	p := NewPacket(g.nextID(), g.Source, g.Destination, g.Size, now)
	g.sink.Inject(now, p)
	g.emitted++
	if g.Count > 0 && g.emitted >= g.Count {
		return nil
	}
	next := now + g.IntervalMs
	if g.horizon > 0 && next >= g.horizon {
		return nil
	}
	evtMgr.Schedule(g, nil, continuousGeneratorFire, vrtime.SecondsToTime(msToSeconds(g.IntervalMs)))
	return nil
}

// BatchGenerator emits BatchSize packets at once, every IntervalMs,
// repeating Batches times (Batches <= 0 means unbounded).
type BatchGenerator struct {
	Source, Destination string
	Size                int64
	BatchSize           int
	IntervalMs          int64
	StartMs             int64
	Batches             int

	sink          Sink
	nextID        func() int
	batchesEmitted int
	horizon        int64
}

// NewBatchGenerator constructs a batch generator.
func NewBatchGenerator(source, destination string, size int64, batchSize int, intervalMs, startMs int64, batches int, sink Sink, nextID func() int) *BatchGenerator {
	return &BatchGenerator{
		Source: source, Destination: destination, Size: size,
		BatchSize: batchSize, IntervalMs: intervalMs, StartMs: startMs, Batches: batches,
		sink: sink, nextID: nextID,
	}
}

func (g *BatchGenerator) SetHorizon(untilMs int64) { g.horizon = untilMs }

func (g *BatchGenerator) Start(evtMgr *evtm.EventManager) {
	if g.horizon > 0 && g.StartMs >= g.horizon {
		return
	}
	evtMgr.Schedule(g, nil, batchGeneratorFire, vrtime.SecondsToTime(msToSeconds(g.StartMs)))
}

func batchGeneratorFire(evtMgr *evtm.EventManager, context any, data any) any {
	g := context.(*BatchGenerator)
	now := g.StartMs + int64(g.batchesEmitted)*g.IntervalMs
	if g.horizon > 0 && now >= g.horizon {
		return nil
	}
	for i := 0; i < g.BatchSize; i++ {
		p := NewPacket(g.nextID(), g.Source, g.Destination, g.Size, now)
		g.sink.Inject(now, p)
	}
	g.batchesEmitted++
	if g.Batches > 0 && g.batchesEmitted >= g.Batches {
		return nil
	}
	next := now + g.IntervalMs
	if g.horizon > 0 && next >= g.horizon {
		return nil
	}
	evtMgr.Schedule(g, nil, batchGeneratorFire, vrtime.SecondsToTime(msToSeconds(g.IntervalMs)))
	return nil
}
