package ioscfg

import (
	"fmt"
	"sort"

	"topoforge/internal/graph"
	"topoforge/internal/planner"
)

// BuildL3Core assembles the command stream for an L3 core switch per
// spec §4.6b: ip routing, VLAN database, backbone interfaces, trunk
// ports toward non-routed neighbors, access ports for its own attached
// hosts, one SVI and DHCP pool per hosted VLAN.
func BuildL3Core(t *graph.Topology, plan *planner.Plan, id string, sc graph.SwitchCore) Device {
	meta := plan.Meta(id)
	d := Device{Hostname: sc.Name()}

	d.Blocks = append(d.Blocks, Block{Kind: Header, Lines: []string{
		fmt.Sprintf("hostname %s", sc.Name()),
		"enable secret cisco",
	}})

	if t.ManagementSSH {
		d.Blocks = append(d.Blocks, ManagementSSH(sc.Name())...)
	}

	d.Blocks = append(d.Blocks, Block{Kind: Global, Lines: []string{"ip routing"}})
	d.Blocks = append(d.Blocks, vlanDatabaseBlock(t, ownedVLANNumbers(t, meta.OwnedVLANs)))

	d.Blocks = append(d.Blocks, backboneBlocks(t, plan, id)...)
	d.Blocks = append(d.Blocks, accessPortBlocks(t, sc.Computers)...)
	d.Blocks = append(d.Blocks, trunkBlocks(t, plan, id)...)
	d.Blocks = append(d.Blocks, etherChannelBlocksFor(t, id)...)

	for _, vlanName := range meta.OwnedVLANs {
		d.Blocks = append(d.Blocks, sviBlock(t, plan, vlanName))
	}
	d.Blocks = append(d.Blocks, dhcpBlocks(t, plan, meta.OwnedVLANs)...)

	d.Blocks = append(d.Blocks, staticRoutesBlock(plan, id))
	return d
}

func ownedVLANNumbers(t *graph.Topology, names []string) []int {
	nums := make([]int, 0, len(names))
	for _, n := range names {
		nums = append(nums, t.VLANNumber[n])
	}
	sort.Ints(nums)
	return nums
}

func vlanDatabaseBlock(t *graph.Topology, numbers []int) Block {
	if len(numbers) == 0 {
		return Block{Kind: Global}
	}
	var lines []string
	byNumber := make(map[int]string, len(t.VLANByName))
	for name, num := range t.VLANNumber {
		byNumber[num] = name
	}
	for _, num := range numbers {
		lines = append(lines,
			fmt.Sprintf("vlan %d", num),
			fmt.Sprintf("name %s", byNumber[num]),
		)
	}
	return Block{Kind: VLANDatabase, Lines: lines}
}

// trunkBlocks emits a trunk port for every incident link that is not a
// routed backbone link and not an EtherChannel member — any other
// physical link models an uplink to a further switch, never a direct
// host attachment (hosts attach via computers[], not graph edges).
func trunkBlocks(t *graph.Topology, plan *planner.Plan, id string) []Block {
	var blocks []Block
	for _, l := range t.Incident(id) {
		if _, routed := plan.LinkPlan[l.ID]; routed {
			continue
		}
		if l.ConnectionType == graph.ConnEtherChannel {
			continue
		}
		iface := resolvedIfaceFor(plan, l, id)
		if iface.Empty() {
			continue
		}
		blocks = append(blocks, Block{Kind: Interface, Lines: []string{
			fmt.Sprintf("interface %s", iface),
			"switchport mode trunk",
			"no shutdown",
		}})
	}
	return blocks
}

func resolvedIfaceFor(plan *planner.Plan, l graph.Link, id string) graph.Interface {
	pl, ok := plan.PhysicalLink[l.ID]
	if !ok {
		return graph.Interface{}
	}
	if l.FromID == id {
		return pl.FromIface
	}
	return pl.ToIface
}

func accessPortBlocks(t *graph.Topology, computers []graph.Computer) []Block {
	var blocks []Block
	for _, c := range computers {
		if c.PortType == "" {
			continue
		}
		num := t.VLANNumber[c.VLAN]
		blocks = append(blocks, Block{Kind: Interface, Lines: []string{
			fmt.Sprintf("interface %s%s", c.PortType, c.PortNumber),
			fmt.Sprintf("switchport access vlan %d", num),
			"no shutdown",
		}})
	}
	return blocks
}

func sviBlock(t *graph.Topology, plan *planner.Plan, vlanName string) Block {
	num := t.VLANNumber[vlanName]
	v := plan.VlanPlan[vlanName]
	return Block{Kind: Interface, Lines: []string{
		fmt.Sprintf("interface vlan %d", num),
		ipAddressLine(v.Gateway, v.Subnet),
		"no shutdown",
	}}
}
