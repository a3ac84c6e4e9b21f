package planner

import (
	"topoforge/internal/graph"
)

// AssignVLANOwnership determines, for every VLAN, which L3 device owns
// its gateway — resolving the Open Question in spec §9 the same way: an
// L3 core owns every VLAN directly attached to it (via its own
// computers[]); a router owns the VLANs surfaced by the plain L2
// switches it directly faces, and never the VLANs owned by a switch_core
// it happens to also be linked to. It must run after ResolvePhysicalInterfaces
// and before the Routing Solver, since the solver needs each L3 device's
// owned-VLAN subnets to compute KnownNetworks, and the router's primary
// interface choice needs the interface ResolvePhysicalInterfaces already
// picked for that link.
func AssignVLANOwnership(t *graph.Topology, plan *Plan) {
	for id, d := range t.Devices {
		sc, ok := d.(graph.SwitchCore)
		if !ok {
			continue
		}
		for _, name := range vlanNamesOf(sc.Computers) {
			own(plan, id, name)
		}
	}

	for id, d := range t.Devices {
		if _, ok := d.(graph.Router); !ok {
			continue
		}
		assignRouterOwnership(t, plan, id)
	}
}

func assignRouterOwnership(t *graph.Topology, plan *Plan, routerID string) {
	var primary graph.Interface
	primarySet := false
	seenVLAN := make(map[string]bool)

	for _, l := range t.Incident(routerID) {
		otherID := otherEndpoint(l, routerID)
		other, ok := t.Devices[otherID]
		if !ok {
			continue
		}
		sw, ok := other.(graph.Switch)
		if !ok {
			continue
		}

		if !primarySet {
			primary = physicalIfaceFor(plan, l, routerID)
			primarySet = true
		}

		for _, name := range vlanNamesOf(sw.Computers) {
			if seenVLAN[name] {
				continue
			}
			seenVLAN[name] = true
			own(plan, routerID, name)
		}
	}

	if primarySet {
		plan.Meta(routerID).PrimaryL2Interface = primary
	}
}

// physicalIfaceFor returns the interface ResolvePhysicalInterfaces
// assigned device id on link l.
func physicalIfaceFor(plan *Plan, l graph.Link, id string) graph.Interface {
	pl, ok := plan.PhysicalLink[l.ID]
	if !ok {
		return graph.Interface{}
	}
	if l.FromID == id {
		return pl.FromIface
	}
	return pl.ToIface
}

func vlanNamesOf(computers []graph.Computer) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range computers {
		if c.VLAN == "" || seen[c.VLAN] {
			continue
		}
		seen[c.VLAN] = true
		out = append(out, c.VLAN)
	}
	return out
}

func own(plan *Plan, deviceID, vlanName string) {
	m := plan.Meta(deviceID)
	m.OwnedVLANs = append(m.OwnedVLANs, vlanName)
	m.AttachedVLANs = append(m.AttachedVLANs, vlanName)
	if v, ok := plan.VlanPlan[vlanName]; ok {
		addKnownNetwork(m, v.Subnet)
	}
}

func otherEndpoint(l graph.Link, id string) string {
	if l.FromID == id {
		return l.ToID
	}
	return l.FromID
}
