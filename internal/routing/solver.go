package routing

import (
	"net"

	"topoforge/internal/graph"
	"topoforge/internal/planner"
)

// Solve runs the BFS described in spec §4.5 from every L3 device (router
// or L3 core switch) and fills plan.StaticRoutes with one record per
// reachable network not already directly connected to that device.
func Solve(t *graph.Topology, plan *planner.Plan) {
	routedLinks := make(map[string]bool, len(plan.LinkPlan))
	for id := range plan.LinkPlan {
		routedLinks[id] = true
	}

	neighbors := func(v string) []Edge {
		var out []Edge
		for _, e := range t.OutEdges(v) {
			if !routedLinks[e.LinkID] {
				continue
			}
			out = append(out, Edge{LinkID: e.LinkID, To: e.To})
		}
		return out
	}

	for id, dev := range t.Devices {
		if !graph.IsL3(dev) {
			continue
		}
		plan.StaticRoutes[id] = solveOne(id, neighbors, t, plan)
	}
}

func solveOne(start string, neighbors func(string) []Edge, t *graph.Topology, plan *planner.Plan) []planner.StaticRoute {
	result := BFS(start, neighbors)

	direct := make(map[string]bool)
	for _, n := range plan.Meta(start).KnownNetworks {
		direct[n.String()] = true
	}

	type candidate struct {
		net     *net.IPNet
		nextHop net.IP
	}
	var byDest = make(map[string]candidate)
	var order []string

	for _, node := range result.Order {
		hopLinkID := result.FirstHopLink[node]
		nextHopIP := nextHopIPForLink(t, plan, hopLinkID, start)
		if nextHopIP == nil {
			continue
		}

		for _, n := range plan.Meta(node).KnownNetworks {
			key := n.String()
			if direct[key] {
				continue
			}
			if _, seen := byDest[key]; seen {
				continue // shortest path already recorded this destination
			}
			byDest[key] = candidate{net: n, nextHop: nextHopIP}
			order = append(order, key)
		}
	}

	routes := make([]planner.StaticRoute, 0, len(order))
	for _, key := range order {
		c := byDest[key]
		routes = append(routes, planner.StaticRoute{Destination: c.net, NextHop: c.nextHop})
	}
	return routes
}

// nextHopIPForLink returns the IP address of the neighbor endpoint of
// hopLinkID as seen from start — always a directly connected address of
// start, regardless of how many hops the destination network is beyond it.
func nextHopIPForLink(t *graph.Topology, plan *planner.Plan, linkID, start string) net.IP {
	assignment, ok := plan.LinkPlan[linkID]
	if !ok {
		return nil
	}
	link := findLink(t, linkID)
	if link == nil {
		return nil
	}
	if link.FromID == start {
		return assignment.ToIP
	}
	return assignment.FromIP
}

func findLink(t *graph.Topology, id string) *graph.Link {
	for i := range t.Links {
		if t.Links[i].ID == id {
			return &t.Links[i]
		}
	}
	return nil
}
