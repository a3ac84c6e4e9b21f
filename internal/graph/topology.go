package graph

import (
	"fmt"
	"strings"

	"topoforge/internal/errs"
)

// Topology owns every device and link for one generation request. Links
// reference devices by id; nothing in this package holds a pointer cycle.
type Topology struct {
	Devices       map[string]Device
	Order         []string // device ids in submission order, for "first edge" rules
	Links         []Link
	VLANByName    map[string]VLAN
	VLANOrder     []string
	VLANNumber    map[string]int
	Mode          string // "digital" or "physical"
	ManagementSSH bool
	BaseOctet     int

	namesByID    map[string]string
	incident     map[string][]int // device id -> indexes into Links
	outNeighbors map[string][]outEdge
}

type outEdge struct {
	linkIdx int
	to      string
}

const defaultBaseOctet = 19

// Build validates a RawTopology and converts it into a Topology. It is
// the single entry point the pipeline calls before planning begins.
func Build(raw RawTopology) (*Topology, error) {
	t := &Topology{
		Devices:    make(map[string]Device, len(raw.Nodes)),
		VLANByName: make(map[string]VLAN, len(raw.VLANs)),
		VLANNumber: make(map[string]int, len(raw.VLANs)),
		Mode:       raw.Mode,
		BaseOctet:  raw.BaseNetworkOctet,
		ManagementSSH: true,
	}
	if t.Mode == "" {
		t.Mode = "digital"
	}
	if t.BaseOctet == 0 {
		t.BaseOctet = defaultBaseOctet
	}

	if err := t.loadNodes(raw.Nodes); err != nil {
		return nil, err
	}
	if err := t.loadVLANs(raw.VLANs); err != nil {
		return nil, err
	}
	if err := t.loadEdges(raw.Edges); err != nil {
		return nil, err
	}
	if err := t.validatePhysicalModels(); err != nil {
		return nil, err
	}
	t.buildIndexes()
	return t, nil
}

func (t *Topology) loadNodes(nodes []RawNode) error {
	seenNames := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return errs.New(errs.InvalidTopology, n.Label, "node missing id")
		}
		if _, dup := t.Devices[n.ID]; dup {
			return errs.Newf(errs.InvalidTopology, n.ID, "duplicate node id")
		}
		name := n.Data.Name
		if name == "" {
			name = n.Label
		}
		if prior, dup := seenNames[name]; dup {
			return errs.Newf(errs.InvalidTopology, name, "duplicate device name (also used by %s)", prior)
		}
		seenNames[name] = n.ID

		pos := Point{X: n.X, Y: n.Y}
		computers := make([]Computer, 0, len(n.Data.Computers))
		for _, c := range n.Data.Computers {
			computers = append(computers, Computer{
				Name:       c.Name,
				PortType:   c.PortType,
				PortNumber: c.PortNumber,
				VLAN:       c.VLAN,
			})
		}

		var d Device
		switch n.Data.Type {
		case "router":
			d = NewRouter(n.ID, name, pos, n.Data.Model)
		case "switch_core":
			d = NewSwitchCore(n.ID, name, pos, n.Data.Model, computers)
		case "switch":
			d = NewSwitch(n.ID, name, pos, n.Data.Model, computers)
		case "host":
			d = NewHost(n.ID, name, pos, n.Data.Model, n.Data.VLAN)
		default:
			return errs.Newf(errs.InvalidTopology, name, "unknown device type %q", n.Data.Type)
		}
		t.Devices[n.ID] = d
		t.Order = append(t.Order, n.ID)
	}
	return nil
}

func (t *Topology) loadVLANs(vlans []RawVLAN) error {
	sawNative := false
	for _, v := range vlans {
		if v.Prefix < 8 || v.Prefix > 30 {
			return errs.Newf(errs.InvalidVlan, v.Name, "prefix /%d outside [8,30]", v.Prefix)
		}
		if _, dup := t.VLANByName[v.Name]; dup {
			return errs.Newf(errs.InvalidVlan, v.Name, "duplicate VLAN name")
		}
		if v.IsNative {
			if sawNative {
				return errs.Newf(errs.InvalidVlan, v.Name, "more than one native VLAN declared")
			}
			sawNative = true
		}
		t.VLANByName[v.Name] = VLAN{Name: v.Name, Prefix: v.Prefix, IsNative: v.IsNative}
		t.VLANOrder = append(t.VLANOrder, v.Name)
		if n, ok := trailingDigits(v.Name); ok {
			t.VLANNumber[v.Name] = n
		} else {
			t.VLANNumber[v.Name] = (len(t.VLANOrder)) * 10
		}
	}
	return nil
}

// trailingDigits extracts a VLAN number embedded in a name like "VLAN10"
// or "vlan30", the convention the submitted topology is expected to use.
func trailingDigits(name string) (int, bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == len(name) {
		return 0, false
	}
	n := 0
	for _, c := range name[i:] {
		n = n*10 + int(c-'0')
	}
	return n, true
}

// ifaceKey names one {type,number} binding on one device; loadEdges keys
// its map of bindings already claimed — by edges or by computers[] — on
// it, so duplicates fail fast.
type ifaceKey struct {
	deviceID string
	iface    Interface
}

func (t *Topology) loadEdges(edges []RawEdge) error {
	used := make(map[ifaceKey]string) // -> owning link/computer label, for error messages

	for _, dev := range t.Devices {
		var computers []Computer
		switch d := dev.(type) {
		case Switch:
			computers = d.Computers
		case SwitchCore:
			computers = d.Computers
		}
		for _, c := range computers {
			if c.PortType == "" {
				continue
			}
			k := ifaceKey{dev.ID(), Interface{Type: c.PortType, Number: c.PortNumber}}
			if owner, dup := used[k]; dup {
				return errs.Newf(errs.InterfaceConflict, dev.Name(), "port %s%s already used by %s", c.PortType, c.PortNumber, owner)
			}
			used[k] = fmt.Sprintf("computer %q", c.Name)
		}
	}

	for _, e := range edges {
		if e.ID == "" {
			return errs.New(errs.InvalidTopology, "", "edge missing id")
		}
		if _, ok := t.Devices[e.From]; !ok {
			return errs.Newf(errs.InvalidTopology, e.ID, "edge references unknown from-id %q", e.From)
		}
		if _, ok := t.Devices[e.To]; !ok {
			return errs.Newf(errs.InvalidTopology, e.ID, "edge references unknown to-id %q", e.To)
		}

		dir, err := parseDirection(e.Data.RoutingDirection)
		if err != nil {
			return errs.Newf(errs.InvalidTopology, e.ID, "%s", err)
		}
		fromIface := Interface{Type: e.Data.FromInterface.Type, Number: e.Data.FromInterface.Number}
		toIface := Interface{Type: e.Data.ToInterface.Type, Number: e.Data.ToInterface.Number}

		conn := ConnNormal
		var ec *EtherChannel
		if e.Data.ConnectionType == "etherchannel" {
			conn = ConnEtherChannel
			if !isSwitchKind(t.Devices[e.From]) || !isSwitchKind(t.Devices[e.To]) {
				return errs.Newf(errs.InterfaceConflict, e.ID, "etherchannel endpoints must both be switches or switch_cores, got %s and %s",
					t.Devices[e.From].Kind(), t.Devices[e.To].Kind())
			}
			if e.Data.EtherChannel == nil {
				return errs.Newf(errs.InterfaceConflict, e.ID, "etherchannel link missing etherChannel block")
			}
			parsed, err := parseEtherChannel(*e.Data.EtherChannel, fromIface.Type, toIface.Type)
			if err != nil {
				return errs.Newf(errs.InterfaceConflict, e.ID, "%s", err)
			}
			ec = parsed
		}

		if conn == ConnNormal {
			if !fromIface.Empty() {
				k := ifaceKey{e.From, fromIface}
				if owner, dup := used[k]; dup {
					return errs.Newf(errs.InterfaceConflict, t.Devices[e.From].Name(), "interface %s already used by %s", fromIface, owner)
				}
				used[k] = fmt.Sprintf("link %q", e.ID)
			}
			if !toIface.Empty() {
				k := ifaceKey{e.To, toIface}
				if owner, dup := used[k]; dup {
					return errs.Newf(errs.InterfaceConflict, t.Devices[e.To].Name(), "interface %s already used by %s", toIface, owner)
				}
				used[k] = fmt.Sprintf("link %q", e.ID)
			}
		} else {
			if err := markRangeUsed(used, e.From, ec.FromRange, e.ID); err != nil {
				return err
			}
			if err := markRangeUsed(used, e.To, ec.ToRange, e.ID); err != nil {
				return err
			}
		}

		t.Links = append(t.Links, Link{
			ID:               e.ID,
			FromID:           e.From,
			ToID:             e.To,
			FromInterface:    fromIface,
			ToInterface:      toIface,
			RoutingDirection: dir,
			ConnectionType:   conn,
			EtherChannel:     ec,
		})
	}
	return nil
}

func parseDirection(s string) (RoutingDirection, error) {
	switch s {
	case "", "bidirectional":
		return DirBidirectional, nil
	case "from-to":
		return DirFromTo, nil
	case "to-from":
		return DirToFrom, nil
	case "none":
		return DirNone, nil
	default:
		return DirBidirectional, fmt.Errorf("unknown routingDirection %q", s)
	}
}

// isSwitchKind reports whether d can terminate an EtherChannel bundle:
// only switches and switch_cores carry the port-channel submode routers
// and hosts never do.
func isSwitchKind(d Device) bool {
	switch d.Kind() {
	case KindSwitch, KindSwitchCore:
		return true
	default:
		return false
	}
}

func parseEtherChannel(r RawEtherChannel, fromType, toType string) (*EtherChannel, error) {
	proto := ProtoLACP
	if r.Protocol == "pagp" {
		proto = ProtoPAgP
	} else if r.Protocol != "" && r.Protocol != "lacp" {
		return nil, fmt.Errorf("unknown etherchannel protocol %q", r.Protocol)
	}
	fromFirst, fromLast, err := splitRange(r.FromRange)
	if err != nil {
		return nil, fmt.Errorf("fromRange: %w", err)
	}
	toFirst, toLast, err := splitRange(r.ToRange)
	if err != nil {
		return nil, fmt.Errorf("toRange: %w", err)
	}
	if countRange(fromFirst, fromLast) != countRange(toFirst, toLast) {
		return nil, fmt.Errorf("etherchannel ranges differ in length: %s vs %s", r.FromRange, r.ToRange)
	}
	return &EtherChannel{
		Protocol:  proto,
		Group:     r.Group,
		FromRange: InterfaceRange{Type: fromType, First: fromFirst, Last: fromLast},
		ToRange:   InterfaceRange{Type: toType, First: toFirst, Last: toLast},
	}, nil
}

// splitRange parses a dotted interface range like "0/1-3" into its
// first/last dotted numbers, "0/1" and "0/3".
func splitRange(s string) (first, last string, err error) {
	idx := strings.LastIndex(s, "/")
	if idx < 0 {
		return "", "", fmt.Errorf("malformed range %q", s)
	}
	prefix := s[:idx+1]
	tail := s[idx+1:]
	parts := strings.SplitN(tail, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed range %q, expected a-b suffix", s)
	}
	return prefix + parts[0], prefix + parts[1], nil
}

func countRange(first, last string) int {
	fi := lastSegment(first)
	li := lastSegment(last)
	return li - fi + 1
}

func lastSegment(dotted string) int {
	idx := strings.LastIndex(dotted, "/")
	n := dotted
	if idx >= 0 {
		n = dotted[idx+1:]
	}
	v := 0
	for _, c := range n {
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
	}
	return v
}

func markRangeUsed(used map[ifaceKey]string, deviceID string, r InterfaceRange, linkID string) error {
	first := lastSegment(r.First)
	last := lastSegment(r.Last)
	prefix := r.First[:len(r.First)-len(fmt.Sprint(first))]
	for n := first; n <= last; n++ {
		num := fmt.Sprintf("%s%d", prefix, n)
		k := ifaceKey{deviceID, Interface{Type: r.Type, Number: num}}
		if owner, dup := used[k]; dup {
			return errs.Newf(errs.InterfaceConflict, deviceID, "interface %s%s already used by %s", r.Type, num, owner)
		}
		used[k] = fmt.Sprintf("etherchannel member of link %q", linkID)
	}
	return nil
}

func (t *Topology) validatePhysicalModels() error {
	if t.Mode != "physical" {
		return nil
	}
	for _, d := range t.Devices {
		switch d.Kind() {
		case KindRouter, KindSwitchCore, KindSwitch:
			if d.PhysicalModel() == "" {
				return errs.Newf(errs.PhysicalModelMissing, d.Name(), "physical mode requires a model tag")
			}
		}
	}
	return nil
}

func (t *Topology) buildIndexes() {
	t.namesByID = make(map[string]string, len(t.Devices))
	t.incident = make(map[string][]int, len(t.Devices))
	t.outNeighbors = make(map[string][]outEdge, len(t.Devices))
	for id, d := range t.Devices {
		t.namesByID[id] = d.Name()
	}
	for i, l := range t.Links {
		t.incident[l.FromID] = append(t.incident[l.FromID], i)
		t.incident[l.ToID] = append(t.incident[l.ToID], i)

		switch l.RoutingDirection {
		case DirBidirectional:
			t.outNeighbors[l.FromID] = append(t.outNeighbors[l.FromID], outEdge{i, l.ToID})
			t.outNeighbors[l.ToID] = append(t.outNeighbors[l.ToID], outEdge{i, l.FromID})
		case DirFromTo:
			t.outNeighbors[l.FromID] = append(t.outNeighbors[l.FromID], outEdge{i, l.ToID})
		case DirToFrom:
			t.outNeighbors[l.ToID] = append(t.outNeighbors[l.ToID], outEdge{i, l.FromID})
		case DirNone:
			// physical only, contributes no routing edge
		}
	}
}

// Incident returns the links touching device id, in submission order.
func (t *Topology) Incident(id string) []Link {
	idxs := t.incident[id]
	out := make([]Link, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, t.Links[i])
	}
	return out
}

// OutEdge names a link id and the neighbor id reached by following it
// out of the node OutEdges was called on.
type OutEdge struct {
	LinkID string
	To     string
}

// OutEdges returns, for device id, every (link id, neighbor id) pair
// reachable by an out-edge per the direction rules in spec §4.2.
func (t *Topology) OutEdges(id string) []OutEdge {
	edges := t.outNeighbors[id]
	out := make([]OutEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, OutEdge{LinkID: t.Links[e.linkIdx].ID, To: e.to})
	}
	return out
}

// Name resolves a device id to its display name.
func (t *Topology) Name(id string) string {
	return t.namesByID[id]
}
