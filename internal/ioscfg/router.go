package ioscfg

import (
	"fmt"
	"net"

	"topoforge/internal/graph"
	"topoforge/internal/planner"
)

// BuildRouter assembles the command stream for a Router per the ordering
// rule in spec §4.6 and the per-variant responsibilities in §4.6a.
func BuildRouter(t *graph.Topology, plan *planner.Plan, id string, r graph.Router) Device {
	meta := plan.Meta(id)
	d := Device{Hostname: r.Name()}

	d.Blocks = append(d.Blocks, Block{Kind: Header, Lines: []string{
		fmt.Sprintf("hostname %s", r.Name()),
		"enable secret cisco",
	}})

	if t.ManagementSSH {
		d.Blocks = append(d.Blocks, ManagementSSH(r.Name())...)
	}

	d.Blocks = append(d.Blocks, backboneBlocks(t, plan, id)...)

	if !meta.PrimaryL2Interface.Empty() && len(meta.OwnedVLANs) > 0 {
		d.Blocks = append(d.Blocks, Block{Kind: Interface, Lines: []string{
			fmt.Sprintf("interface %s", meta.PrimaryL2Interface),
			"no shutdown",
		}})
		for _, vlanName := range meta.OwnedVLANs {
			d.Blocks = append(d.Blocks, subinterfaceBlock(t, plan, meta.PrimaryL2Interface, vlanName))
		}
		d.Blocks = append(d.Blocks, dhcpBlocks(t, plan, meta.OwnedVLANs)...)
	}

	d.Blocks = append(d.Blocks, staticRoutesBlock(plan, id))
	return d
}

// backboneBlocks emits one Interface block per backbone link this device
// participates in, in the order the links were submitted.
func backboneBlocks(t *graph.Topology, plan *planner.Plan, id string) []Block {
	var blocks []Block
	for _, l := range t.Links {
		a, ok := plan.LinkPlan[l.ID]
		if !ok {
			continue
		}
		var iface graph.Interface
		var ip net.IP
		switch id {
		case l.FromID:
			iface, ip = a.FromIface, a.FromIP
		case l.ToID:
			iface, ip = a.ToIface, a.ToIP
		default:
			continue
		}
		ipStr := ip.String()
		blocks = append(blocks, Block{Kind: Interface, Lines: []string{
			fmt.Sprintf("interface %s", iface),
			fmt.Sprintf("ip address %s %s", ipStr, maskString(a.Subnet)),
			"no shutdown",
		}})
	}
	return blocks
}

func subinterfaceBlock(t *graph.Topology, plan *planner.Plan, primary graph.Interface, vlanName string) Block {
	num := t.VLANNumber[vlanName]
	v := plan.VlanPlan[vlanName]
	return Block{Kind: Interface, Lines: []string{
		fmt.Sprintf("interface %s.%d", primary, num),
		fmt.Sprintf("encapsulation dot1Q %d", num),
		ipAddressLine(v.Gateway, v.Subnet),
		"no shutdown",
	}}
}

func dhcpBlocks(t *graph.Topology, plan *planner.Plan, vlanNames []string) []Block {
	var blocks []Block
	for _, name := range vlanNames {
		num := t.VLANNumber[name]
		v := plan.VlanPlan[name]
		blocks = append(blocks, Block{Kind: DHCPPool, Lines: []string{
			fmt.Sprintf("ip dhcp excluded-address %s %s", v.DHCPExcludedFirst, v.DHCPExcludedLast),
			fmt.Sprintf("ip dhcp pool vlan%d", num),
			fmt.Sprintf("network %s %s", v.Subnet.IP.String(), maskString(v.Subnet)),
			fmt.Sprintf("default-router %s", v.Gateway),
		}})
	}
	return blocks
}

func staticRoutesBlock(plan *planner.Plan, id string) Block {
	routes := plan.StaticRoutes[id]
	lines := make([]string, 0, len(routes))
	for _, rt := range routes {
		lines = append(lines, routeLine(rt.Destination, rt.NextHop))
	}
	return Block{Kind: StaticRoutes, Lines: lines}
}
