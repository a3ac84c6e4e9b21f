package planner

import (
	"topoforge/internal/addralloc"
	"topoforge/internal/graph"
)

// PlanVLANs allocates a subnet for every declared VLAN and fixes its
// gateway and DHCP exclusion range, per spec §4.4. These numbers are
// fixed policy: gateway is the last usable host, exclusion covers the
// first ten usable hosts.
func PlanVLANs(t *graph.Topology, alloc *addralloc.Allocator, plan *Plan) error {
	for _, name := range t.VLANOrder {
		v := t.VLANByName[name]
		subnet, err := alloc.Allocate(v.Prefix)
		if err != nil {
			return err
		}

		gateway := addralloc.Gateway(subnet)
		hosts := addralloc.UsableHosts(subnet)

		n := len(hosts)
		if n > 10 {
			n = 10
		}
		excludedFirst, excludedLast := gateway, gateway
		if n > 0 {
			excludedFirst = hosts[0]
			excludedLast = hosts[n-1]
		}

		plan.VlanPlan[name] = VlanAssignment{
			Subnet:            subnet,
			Gateway:           gateway,
			DHCPExcludedFirst: excludedFirst,
			DHCPExcludedLast:  excludedLast,
		}
	}
	return nil
}
