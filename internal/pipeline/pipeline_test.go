package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"topoforge/internal/graph"
)

// S1 — two routers, one bidirectional backbone link, no VLANs.
func TestS1TwoRoutersOneBackbone(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{
			{ID: "r1", Data: graph.RawNodeData{Type: "router", Name: "R1"}},
			{ID: "r2", Data: graph.RawNodeData{Type: "router", Name: "R2"}},
		},
		Edges:            []graph.RawEdge{{ID: "e1", From: "r1", To: "r2"}},
		BaseNetworkOctet: 19,
	}
	result, err := Generate(context.Background(), raw, 1.0)
	require.NoError(t, err)

	a := result.Plan.LinkPlan["e1"]
	require.Equal(t, "19.0.0.1", a.FromIP.String())
	require.Equal(t, "19.0.0.2", a.ToIP.String())
	require.Empty(t, result.Plan.StaticRoutes["r1"])
	require.Empty(t, result.Plan.StaticRoutes["r2"])
}

// S2 — router + one L2 switch with a VLAN10 host.
func TestS2RouterAndSwitchWithVLAN(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{
			{ID: "r1", Data: graph.RawNodeData{Type: "router", Name: "R1"}},
			{ID: "sw1", Data: graph.RawNodeData{Type: "switch", Name: "SW1", Computers: []graph.RawComputer{
				{Name: "PC1", PortType: "FastEthernet", PortNumber: "0/5", VLAN: "VLAN10"},
			}}},
		},
		Edges:            []graph.RawEdge{{ID: "e1", From: "r1", To: "sw1"}},
		VLANs:            []graph.RawVLAN{{Name: "VLAN10", Prefix: 24}},
		BaseNetworkOctet: 19,
	}
	result, err := Generate(context.Background(), raw, 1.0)
	require.NoError(t, err)

	r1Lines := result.Formatted["r1"]
	require.Contains(t, r1Lines, "encapsulation dot1Q 10")

	sw1Lines := result.Formatted["sw1"]
	require.Contains(t, sw1Lines, "vlan 10")
	require.Contains(t, sw1Lines, "interface FastEthernet0/5")
	require.Contains(t, sw1Lines, "switchport access vlan 10")

	vlanIdx := indexOf(sw1Lines, "name VLAN10")
	ifaceIdx := indexOf(sw1Lines, "interface FastEthernet0/5")
	require.Greater(t, ifaceIdx, vlanIdx)
	require.Equal(t, []string{"exit", "enable", "conf t"}, sw1Lines[vlanIdx+1:ifaceIdx])
}

func indexOf(lines []string, target string) int {
	for i, l := range lines {
		if l == target {
			return i
		}
	}
	return -1
}

// S4 — router + switch_core; the router must not surface the core's VLAN.
func TestS4RouterDoesNotOwnCoreVLAN(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{
			{ID: "r1", Data: graph.RawNodeData{Type: "router", Name: "R1"}},
			{ID: "sc1", Data: graph.RawNodeData{Type: "switch_core", Name: "SWC1", Computers: []graph.RawComputer{
				{Name: "PC1", PortType: "FastEthernet", PortNumber: "1/1", VLAN: "VLAN30"},
			}}},
		},
		Edges:            []graph.RawEdge{{ID: "e1", From: "r1", To: "sc1"}},
		VLANs:            []graph.RawVLAN{{Name: "VLAN30", Prefix: 24}},
		BaseNetworkOctet: 19,
	}
	result, err := Generate(context.Background(), raw, 1.0)
	require.NoError(t, err)

	for _, line := range result.Formatted["r1"] {
		require.NotContains(t, line, "dot1Q 30")
		require.NotContains(t, line, "dhcp pool")
	}
	require.Contains(t, result.Formatted["sc1"], "interface vlan 30")
}

// S5 — three-router unidirectional line; R1 gets one route, to the R2–R3
// backbone via R2. R2 and R3 get none: every network they can reach is
// already directly connected to them.
func TestS5ThreeRouterLineDirection(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{
			{ID: "r1", Data: graph.RawNodeData{Type: "router", Name: "R1"}},
			{ID: "r2", Data: graph.RawNodeData{Type: "router", Name: "R2"}},
			{ID: "r3", Data: graph.RawNodeData{Type: "router", Name: "R3"}},
		},
		Edges: []graph.RawEdge{
			{ID: "e1", From: "r1", To: "r2", Data: graph.RawEdgeData{RoutingDirection: "from-to"}},
			{ID: "e2", From: "r2", To: "r3", Data: graph.RawEdgeData{RoutingDirection: "from-to"}},
		},
		BaseNetworkOctet: 19,
	}
	result, err := Generate(context.Background(), raw, 1.0)
	require.NoError(t, err)

	require.Empty(t, result.Plan.StaticRoutes["r3"])
	require.Empty(t, result.Plan.StaticRoutes["r2"])
	require.Len(t, result.Plan.StaticRoutes["r1"], 1)
}

// S6 — EtherChannel between two L2 switches; member interfaces must not
// be separately allocable.
func TestS6EtherChannelBetweenSwitches(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{
			{ID: "sw1", Data: graph.RawNodeData{Type: "switch", Name: "SW1"}},
			{ID: "sw2", Data: graph.RawNodeData{Type: "switch", Name: "SW2"}},
		},
		Edges: []graph.RawEdge{{
			ID: "e1", From: "sw1", To: "sw2",
			Data: graph.RawEdgeData{
				ConnectionType: "etherchannel",
				FromInterface:  graph.RawInterface{Type: "FastEthernet"},
				ToInterface:    graph.RawInterface{Type: "FastEthernet"},
				EtherChannel:   &graph.RawEtherChannel{Protocol: "lacp", Group: 1, FromRange: "0/1-3", ToRange: "0/1-3"},
			},
		}},
		BaseNetworkOctet: 19,
	}
	result, err := Generate(context.Background(), raw, 1.0)
	require.NoError(t, err)

	require.Contains(t, result.Formatted["sw1"], "channel-group 1 mode active")
	require.Contains(t, result.Formatted["sw2"], "channel-group 1 mode passive")
	for _, id := range []string{"sw1", "sw2"} {
		for _, num := range []string{"0/1", "0/2", "0/3"} {
			require.True(t, result.Plan.Meta(id).UsedInterfaces[graph.Interface{Type: "FastEthernet", Number: num}])
		}
	}
}

func TestEmptyTopologyProducesWellFormedEmptyArtifacts(t *testing.T) {
	result, err := Generate(context.Background(), graph.RawTopology{}, 1.0)
	require.NoError(t, err)
	require.Empty(t, result.Bundles.All)
	require.NotPanics(t, func() { _ = result.Report })
}

func TestGenerateIsDeterministic(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{
			{ID: "r1", Data: graph.RawNodeData{Type: "router", Name: "R1"}},
			{ID: "r2", Data: graph.RawNodeData{Type: "router", Name: "R2"}},
		},
		Edges:            []graph.RawEdge{{ID: "e1", From: "r1", To: "r2"}},
		BaseNetworkOctet: 19,
	}
	r1, err := Generate(context.Background(), raw, 1.0)
	require.NoError(t, err)
	r2, err := Generate(context.Background(), raw, 1.0)
	require.NoError(t, err)
	require.Equal(t, r1.Bundles.All, r2.Bundles.All)
	require.Equal(t, r1.Report, r2.Report)
}
