package dtnsim

// packet.go implements the Packet (bundle) data model, mirroring
// pydtnsim.packet.Packet. Packets carry no payload; they are created by
// generators or manual injection, mutated only by the owning Node or a
// Contact during handover, and destroyed on delivery or at horizon.

// Hop records one forwarding decision taken for a packet: the contact it
// was booked onto and the departure/arrival times the router/contact
// computed for that hop.
type Hop struct {
	Contact       ContactIdentifier
	DepartureTime int64
	ArrivalTime   int64
}

// Packet is a DTN bundle. Identifier is assigned once by the Simulator and
// is the sole field used for ordering and equality, matching
// pydtnsim.packet.Packet's rich-comparison methods.
type Packet struct {
	Identifier int

	Source      string
	Destination string
	Size        int64 // bytes
	CreatedAt   int64 // ms

	Owner string // current custodian node id

	Trace []Hop

	ReturnToSender bool
	Critical       bool

	onInitialRoute bool
}

// NewPacket constructs a packet owned initially by its source node.
func NewPacket(id int, source, destination string, size, createdAt int64) *Packet {
	return &Packet{
		Identifier:     id,
		Source:         source,
		Destination:    destination,
		Size:           size,
		CreatedAt:      createdAt,
		Owner:          source,
		onInitialRoute: true,
	}
}

// AddHop records a forwarding decision on the packet's trace and updates
// its current owner to the contact's receiving node.
func (p *Packet) AddHop(contact ContactIdentifier, departure, arrival int64) {
	p.Trace = append(p.Trace, Hop{Contact: contact, DepartureTime: departure, ArrivalTime: arrival})
	p.Owner = contact.ToNode
}

// LastHopFrom returns the node the packet arrived from, or "" if the
// packet has not yet left its source.
func (p *Packet) LastHopFrom() string {
	if len(p.Trace) == 0 {
		return ""
	}
	return p.Trace[len(p.Trace)-1].Contact.FromNode
}

// Less implements the total order on packet identifiers required for
// deterministic tie-breaking.
func (p *Packet) Less(other *Packet) bool {
	return p.Identifier < other.Identifier
}
