package emit

import (
	"fmt"
	"net"
	"strings"

	"topoforge/internal/addralloc"
	"topoforge/internal/graph"
	"topoforge/internal/planner"
)

func maskString(n *net.IPNet) string {
	return net.IP(n.Mask).String()
}

// BuildWLANSummary renders the optional WLAN controller summary bundle,
// grounded on the original generator's 'wlan' text export. It is emitted
// only when at least one VLAN is marked native: one synthetic WLC entry
// per device that owns that native VLAN (an address one below its
// gateway), followed by the usable-range summary for every VLAN. Returns
// the empty string when no VLAN is native.
func BuildWLANSummary(t *graph.Topology, plan *planner.Plan) string {
	nativeName := ""
	for name, v := range t.VLANByName {
		if v.IsNative {
			nativeName = name
			break
		}
	}
	if nativeName == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("===== WLAN Controllers =====\n")
	for _, id := range t.Order {
		meta := plan.Meta(id)
		owns := false
		for _, v := range meta.OwnedVLANs {
			if v == nativeName {
				owns = true
				break
			}
		}
		if !owns {
			continue
		}
		native := plan.VlanPlan[nativeName]
		wlcIP := addralloc.Gateway(native.Subnet)
		wlcIP.To4()[3]--
		fmt.Fprintf(&b, "%s WLC %s mask %s gateway %s\n",
			t.Devices[id].Name(), wlcIP.String(), maskString(native.Subnet), native.Gateway.String())
	}

	b.WriteString("\n===== VLAN Usable Ranges =====\n")
	for _, name := range t.VLANOrder {
		v, ok := plan.VlanPlan[name]
		if !ok {
			continue
		}
		hosts := addralloc.UsableHosts(v.Subnet)
		if len(hosts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s - %s\n", name, hosts[0], hosts[len(hosts)-1])
	}
	return b.String()
}
