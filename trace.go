package dtnsim

// trace.go implements TraceMonitor: a Monitor that records every
// packet/contact event as a flat, ordered record and can dump itself to
// disk as YAML or JSON, picking its encoding from the output file's
// extension, the way a gather-everything, write-on-demand instrumentation
// facility typically does.

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// TraceRecord is one observed simulation event, in the uniform shape
// TraceMonitor dumps to disk. Fields unused by a given Kind are zero.
type TraceRecord struct {
	TimeMs      int64  `json:"time_ms" yaml:"time_ms"`
	Kind        string `json:"kind" yaml:"kind"`
	PacketID    int    `json:"packet_id,omitempty" yaml:"packet_id,omitempty"`
	Node        string `json:"node,omitempty" yaml:"node,omitempty"`
	Contact     string `json:"contact,omitempty" yaml:"contact,omitempty"`
	Outcome     string `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Stranded    int    `json:"stranded,omitempty" yaml:"stranded,omitempty"`
}

// TraceMonitor accumulates TraceRecords for every event it observes. Unlike
// TraceManager's InUse gate, a TraceMonitor that exists is always active;
// callers who want to disable tracing simply don't register one.
type TraceMonitor struct {
	BaseMonitor

	ExpName string
	Records []TraceRecord
}

// NewTraceMonitor constructs an empty TraceMonitor for the named run.
func NewTraceMonitor(expName string) *TraceMonitor {
	return &TraceMonitor{ExpName: expName}
}

func (tm *TraceMonitor) add(r TraceRecord) { tm.Records = append(tm.Records, r) }

func (tm *TraceMonitor) OnPacketGenerated(p *Packet, now int64) {
	tm.add(TraceRecord{TimeMs: now, Kind: "generated", PacketID: p.Identifier, Node: p.Source})
}

func (tm *TraceMonitor) OnPacketInjected(p *Packet, now int64) {
	tm.add(TraceRecord{TimeMs: now, Kind: "injected", PacketID: p.Identifier, Node: p.Source})
}

func (tm *TraceMonitor) OnPacketRouted(p *Packet, route Route, now int64) {
	tm.add(TraceRecord{TimeMs: now, Kind: "routed", PacketID: p.Identifier, Contact: route.NextHop.String()})
}

func (tm *TraceMonitor) OnPacketDelivered(p *Packet, now int64) {
	tm.add(TraceRecord{TimeMs: now, Kind: "delivered", PacketID: p.Identifier, Node: p.Destination})
}

func (tm *TraceMonitor) OnPacketEnqueuedLimbo(p *Packet, node string, now int64) {
	tm.add(TraceRecord{TimeMs: now, Kind: "limboed", PacketID: p.Identifier, Node: node})
}

func (tm *TraceMonitor) OnContactStarted(c ContactIdentifier, now int64) {
	tm.add(TraceRecord{TimeMs: now, Kind: "contact_started", Contact: c.String()})
}

func (tm *TraceMonitor) OnContactEnded(c ContactIdentifier, now int64, strandedCount int) {
	tm.add(TraceRecord{TimeMs: now, Kind: "contact_ended", Contact: c.String(), Stranded: strandedCount})
}

func (tm *TraceMonitor) OnRoutingDecision(p *Packet, atNode string, ok bool, now int64) {
	outcome := "routed"
	if !ok {
		outcome = "infeasible"
	}
	tm.add(TraceRecord{TimeMs: now, Kind: "routing_decision", PacketID: p.Identifier, Node: atNode, Outcome: outcome})
}

func (tm *TraceMonitor) OnCapacityExhausted(c ContactIdentifier, packetID int) {
	tm.add(TraceRecord{Kind: "capacity_exhausted", PacketID: packetID, Contact: c.String()})
}

// WriteToFile serializes every recorded event to filename, choosing YAML
// or JSON by its extension, and panics on any marshal or I/O failure —
// both indicate a misconfigured environment (unwritable path, unsupported
// extension), not a recoverable run-time condition.
func (tm *TraceMonitor) WriteToFile(filename string) {
	pathExt := path.Ext(filename)

	var bytes []byte
	var err error
	switch pathExt {
	case ".yaml", ".YAML", ".yml":
		bytes, err = yaml.Marshal(tm)
	case ".json", ".JSON":
		bytes, err = json.MarshalIndent(tm, "", "\t")
	default:
		panic(fmt.Sprintf("dtnsim: unsupported trace file extension %q", pathExt))
	}
	if err != nil {
		panic(err)
	}

	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if _, err := f.Write(bytes); err != nil {
		panic(err)
	}
}
