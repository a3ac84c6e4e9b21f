package planner

import (
	"topoforge/internal/graph"
)

// ResolvePhysicalInterfaces assigns a concrete interface to each
// endpoint of every link that did not get a backbone /30 (plain
// physical connectors: router/core-to-switch uplinks, switch-to-host
// trunks, switch-to-switch trunks) and whose endpoint left the binding
// unspecified in the submitted payload. EtherChannel links are skipped;
// their member ranges are already fully specified.
func ResolvePhysicalInterfaces(t *graph.Topology, plan *Plan) error {
	for _, l := range t.Links {
		if _, routed := plan.LinkPlan[l.ID]; routed {
			continue
		}
		if l.ConnectionType == graph.ConnEtherChannel {
			continue
		}

		fromIface, err := resolveIface(t.Devices[l.FromID], t.Mode, plan, l.FromInterface)
		if err != nil {
			return err
		}
		toIface, err := resolveIface(t.Devices[l.ToID], t.Mode, plan, l.ToInterface)
		if err != nil {
			return err
		}
		plan.Meta(l.FromID).UsedInterfaces[fromIface] = true
		plan.Meta(l.ToID).UsedInterfaces[toIface] = true
		plan.PhysicalLink[l.ID] = PhysicalLink{FromIface: fromIface, ToIface: toIface}
	}
	return nil
}
