// Package planner derives the backbone link plan and VLAN plan from a
// validated topology, per spec §4.3 and §4.4.
package planner

import (
	"net"
	"strconv"
	"strings"

	"topoforge/internal/graph"
)

// LinkAssignment is the backbone plan for one routed link: the /30 it was
// given and the interface/IP binding on each endpoint.
type LinkAssignment struct {
	Subnet    *net.IPNet
	FromIface graph.Interface
	ToIface   graph.Interface
	FromIP    net.IP
	ToIP      net.IP
}

// VlanAssignment is the plan for one declared VLAN.
type VlanAssignment struct {
	Subnet            *net.IPNet
	Gateway           net.IP
	DHCPExcludedFirst net.IP
	DHCPExcludedLast  net.IP
}

// StaticRoute is one synthesized `ip route` record for a router.
type StaticRoute struct {
	Destination *net.IPNet
	NextHop     net.IP
}

// DeviceMeta accumulates the derived facts a configurator needs about one
// device: what it already knows about (for the routing solver's
// self-route exclusion) and which interfaces it has already committed.
type DeviceMeta struct {
	KnownNetworks      []*net.IPNet
	AttachedVLANs      []string // vlan names this device owns, discovery order; filled alongside OwnedVLANs
	OwnedVLANs         []string // vlan names this device owns a gateway/SVI for
	PrimaryL2Interface graph.Interface
	UsedInterfaces     map[graph.Interface]bool
}

func newDeviceMeta() *DeviceMeta {
	return &DeviceMeta{UsedInterfaces: make(map[graph.Interface]bool)}
}

// PhysicalLink holds the resolved interface binding on each endpoint of
// a non-routed, non-EtherChannel link — the physical connections the
// Link Planner does not size a subnet for but which still need a real
// interface once no explicit binding was submitted.
type PhysicalLink struct {
	FromIface graph.Interface
	ToIface   graph.Interface
}

// Plan is the full derived state the device configurators consume.
type Plan struct {
	LinkPlan     map[string]LinkAssignment
	VlanPlan     map[string]VlanAssignment
	DeviceMeta   map[string]*DeviceMeta
	StaticRoutes map[string][]StaticRoute
	PhysicalLink map[string]PhysicalLink
}

// NewPlan seeds a Plan from t: every device gets a DeviceMeta whose
// UsedInterfaces set reflects the bindings already present in the
// submitted topology (including every EtherChannel range member), so
// later allocation never collides with them.
func NewPlan(t *graph.Topology) *Plan {
	p := &Plan{
		LinkPlan:     make(map[string]LinkAssignment),
		VlanPlan:     make(map[string]VlanAssignment),
		DeviceMeta:   make(map[string]*DeviceMeta, len(t.Devices)),
		StaticRoutes: make(map[string][]StaticRoute),
		PhysicalLink: make(map[string]PhysicalLink),
	}
	for id := range t.Devices {
		p.DeviceMeta[id] = newDeviceMeta()
	}
	for _, l := range t.Links {
		if !l.FromInterface.Empty() {
			p.DeviceMeta[l.FromID].UsedInterfaces[l.FromInterface] = true
		}
		if !l.ToInterface.Empty() {
			p.DeviceMeta[l.ToID].UsedInterfaces[l.ToInterface] = true
		}
		if ec := l.EtherChannel; ec != nil {
			ends := []struct {
				id string
				r  graph.InterfaceRange
			}{{l.FromID, ec.FromRange}, {l.ToID, ec.ToRange}}
			for _, end := range ends {
				idx := strings.LastIndex(end.r.First, "/") + 1
				first, _ := strconv.Atoi(end.r.First[idx:])
				last, _ := strconv.Atoi(end.r.Last[strings.LastIndex(end.r.Last, "/")+1:])
				for n := first; n <= last; n++ {
					member := graph.Interface{Type: end.r.Type, Number: end.r.First[:idx] + strconv.Itoa(n)}
					p.DeviceMeta[end.id].UsedInterfaces[member] = true
				}
			}
		}
	}
	for id, d := range t.Devices {
		var computers []graph.Computer
		switch dv := d.(type) {
		case graph.Switch:
			computers = dv.Computers
		case graph.SwitchCore:
			computers = dv.Computers
		}
		for _, c := range computers {
			if c.PortType == "" {
				continue
			}
			p.DeviceMeta[id].UsedInterfaces[graph.Interface{Type: c.PortType, Number: c.PortNumber}] = true
		}
	}
	return p
}

// Meta returns the DeviceMeta for id, creating an empty one if absent.
func (p *Plan) Meta(id string) *DeviceMeta {
	m, ok := p.DeviceMeta[id]
	if !ok {
		m = newDeviceMeta()
		p.DeviceMeta[id] = m
	}
	return m
}

func addKnownNetwork(m *DeviceMeta, n *net.IPNet) {
	for _, existing := range m.KnownNetworks {
		if existing.String() == n.String() {
			return
		}
	}
	m.KnownNetworks = append(m.KnownNetworks, n)
}
