package ioscfg

import (
	"fmt"

	"topoforge/internal/graph"
	"topoforge/internal/planner"
)

// BuildL2Switch assembles the command stream for a plain L2 switch per
// spec §4.6c: VLAN database, access-port assignments, trunk ports, and
// an optional SSH management block. No routing, no gateways, no DHCP.
func BuildL2Switch(t *graph.Topology, plan *planner.Plan, id string, sw graph.Switch) Device {
	d := Device{Hostname: sw.Name()}

	d.Blocks = append(d.Blocks, Block{Kind: Header, Lines: []string{
		fmt.Sprintf("hostname %s", sw.Name()),
		"enable secret cisco",
	}})

	if t.ManagementSSH {
		d.Blocks = append(d.Blocks, ManagementSSH(sw.Name())...)
	}

	d.Blocks = append(d.Blocks, vlanDatabaseBlock(t, ownedVLANNumbers(t, vlanNamesOnSwitch(sw.Computers))))
	d.Blocks = append(d.Blocks, accessPortBlocks(t, sw.Computers)...)
	d.Blocks = append(d.Blocks, trunkBlocks(t, plan, id)...)
	d.Blocks = append(d.Blocks, etherChannelBlocksFor(t, id)...)

	return d
}

func vlanNamesOnSwitch(computers []graph.Computer) []string {
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
