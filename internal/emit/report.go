package emit

import (
	"fmt"
	"strings"

	"topoforge/internal/addralloc"
	"topoforge/internal/graph"
	"topoforge/internal/planner"
)

// BuildReport renders the human-readable allocation report: every
// backbone subnet as a four-line block (network, endpoint-A IP, blank,
// endpoint-B IP) followed by every VLAN subnet as a four-line block
// (network, gateway, blank, broadcast), per spec §4.8.
func BuildReport(t *graph.Topology, plan *planner.Plan) string {
	var b strings.Builder

	for _, l := range t.Links {
		a, ok := plan.LinkPlan[l.ID]
		if !ok {
			continue
		}
		ones, _ := a.Subnet.Mask.Size()
		fmt.Fprintf(&b, "%s/%d\n%s\n\n%s\n\n", a.Subnet.IP.String(), ones, a.FromIP.String(), a.ToIP.String())
	}

	for _, name := range t.VLANOrder {
		v, ok := plan.VlanPlan[name]
		if !ok {
			continue
		}
		ones, _ := v.Subnet.Mask.Size()
		bcast := addralloc.Broadcast(v.Subnet)
		fmt.Fprintf(&b, "%s/%d\n%s\n\n%s\n\n", v.Subnet.IP.String(), ones, v.Gateway.String(), bcast.String())
	}

	return b.String()
}
