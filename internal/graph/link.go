package graph

// Interface identifies a physical interface slot on a device, e.g.
// FastEthernet 0/1 or GigabitEthernet 1/0/3.
type Interface struct {
	Type   string // "FastEthernet", "GigabitEthernet", "Ethernet", ...
	Number string // dotted path: "0/1", "1/0/3"
}

// String renders the interface the way IOS command lines expect it:
// type and number concatenated with no separating space.
func (i Interface) String() string {
	return i.Type + i.Number
}

// Empty reports whether the interface carries no binding at all — the
// wire payload's way of saying "let the planner choose."
func (i Interface) Empty() bool {
	return i.Type == "" && i.Number == ""
}

// RoutingDirection gates which way a link contributes to the directional
// BFS the Routing Solver runs.
type RoutingDirection int

const (
	DirBidirectional RoutingDirection = iota
	DirFromTo
	DirToFrom
	DirNone
)

func (d RoutingDirection) String() string {
	switch d {
	case DirFromTo:
		return "from-to"
	case DirToFrom:
		return "to-from"
	case DirNone:
		return "none"
	default:
		return "bidirectional"
	}
}

// ConnectionType distinguishes a plain physical link from one folded into
// an EtherChannel bundle.
type ConnectionType int

const (
	ConnNormal ConnectionType = iota
	ConnEtherChannel
)

// EtherChannelProtocol selects LACP or PAgP negotiation.
type EtherChannelProtocol int

const (
	ProtoLACP EtherChannelProtocol = iota
	ProtoPAgP
)

func (p EtherChannelProtocol) String() string {
	if p == ProtoPAgP {
		return "pagp"
	}
	return "lacp"
}

// EtherChannel carries the group number and the contiguous interface
// ranges bundled on each side of a ConnEtherChannel link.
type EtherChannel struct {
	Protocol  EtherChannelProtocol
	Group     int
	FromRange InterfaceRange
	ToRange   InterfaceRange
}

// InterfaceRange is a contiguous run of same-type interfaces, e.g.
// FastEthernet 0/1-3.
type InterfaceRange struct {
	Type  string
	First string // e.g. "0/1"
	Last  string // e.g. "0/3"
}

// Link connects two devices by id. Direction carries routing semantics
// only; physical connectivity is always bidirectional.
type Link struct {
	ID               string
	FromID           string
	ToID             string
	FromInterface    Interface
	ToInterface      Interface
	RoutingDirection RoutingDirection
	ConnectionType   ConnectionType
	EtherChannel     *EtherChannel // non-nil iff ConnectionType == ConnEtherChannel
}

// VLAN is a broadcast domain with a declared prefix length and at most
// one native member across the whole topology.
type VLAN struct {
	Name     string
	Prefix   int
	IsNative bool
}
