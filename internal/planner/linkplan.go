package planner

import (
	"topoforge/internal/addralloc"
	"topoforge/internal/errs"
	"topoforge/internal/graph"
	"topoforge/internal/ifcat"
)

// kindPriority orders the two L3 device kinds for deterministic host
// assignment on a backbone link: router before switch_core.
func kindPriority(k graph.Kind) int {
	if k == graph.KindRouter {
		return 0
	}
	return 1
}

// PlanLinks allocates a /30 for every routed backbone link — both
// endpoints L3, routing direction not none — and records each endpoint's
// interface and IP binding in plan.LinkPlan, adding the /30 to both
// endpoints' known networks and the chosen interfaces to their used sets
// on DeviceMeta, per spec §4.3.
func PlanLinks(t *graph.Topology, alloc *addralloc.Allocator, plan *Plan) error {
	for _, l := range t.Links {
		fromDev := t.Devices[l.FromID]
		toDev := t.Devices[l.ToID]
		if !graph.IsL3(fromDev) || !graph.IsL3(toDev) || l.RoutingDirection == graph.DirNone {
			continue
		}

		subnet, err := alloc.Allocate(30)
		if err != nil {
			return err
		}
		hosts := addralloc.UsableHosts(subnet)
		if len(hosts) != 2 {
			return errs.Newf(errs.ConfigBuildFailure, l.ID, "backbone /30 did not yield exactly two usable hosts")
		}

		lowDev, highDev := fromDev, toDev
		lowID, highID := l.FromID, l.ToID
		lowIface, highIface := l.FromInterface, l.ToInterface
		if !lessEndpoint(fromDev, toDev) {
			lowDev, highDev = toDev, fromDev
			lowID, highID = l.ToID, l.FromID
			lowIface, highIface = l.ToInterface, l.FromInterface
		}

		lowIface, err = resolveIface(lowDev, t.Mode, plan, lowIface)
		if err != nil {
			return err
		}
		highIface, err = resolveIface(highDev, t.Mode, plan, highIface)
		if err != nil {
			return err
		}

		assignment := LinkAssignment{Subnet: subnet}
		if lowID == l.FromID {
			assignment.FromIface, assignment.ToIface = lowIface, highIface
			assignment.FromIP, assignment.ToIP = hosts[0], hosts[1]
		} else {
			assignment.ToIface, assignment.FromIface = lowIface, highIface
			assignment.ToIP, assignment.FromIP = hosts[0], hosts[1]
		}
		plan.LinkPlan[l.ID] = assignment

		addKnownNetwork(plan.Meta(l.FromID), subnet)
		addKnownNetwork(plan.Meta(l.ToID), subnet)
		plan.Meta(lowID).UsedInterfaces[lowIface] = true
		plan.Meta(highID).UsedInterfaces[highIface] = true
	}
	return nil
}

// lessEndpoint reports whether a sorts before b by (kind priority, name).
func lessEndpoint(a, b graph.Device) bool {
	pa, pb := kindPriority(a.Kind()), kindPriority(b.Kind())
	if pa != pb {
		return pa < pb
	}
	return a.Name() < b.Name()
}

func resolveIface(d graph.Device, mode string, plan *Plan, requested graph.Interface) (graph.Interface, error) {
	if !requested.Empty() {
		return requested, nil
	}
	return ifcat.Next(d, mode, plan.Meta(d.ID()).UsedInterfaces)
}
