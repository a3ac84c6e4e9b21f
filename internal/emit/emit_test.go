package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"topoforge/internal/graph"
)

func TestBuildBundlesGroupsByKind(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{
			{ID: "r1", Data: graph.RawNodeData{Type: "router", Name: "R1"}},
			{ID: "sw1", Data: graph.RawNodeData{Type: "switch", Name: "SW1"}},
		},
	}
	top, err := graph.Build(raw)
	require.NoError(t, err)

	formatted := map[string][]string{
		"r1":  {"hostname R1"},
		"sw1": {"hostname SW1"},
	}
	b := BuildBundles(top, formatted)
	require.Contains(t, b.Routers, "R1")
	require.NotContains(t, b.Routers, "SW1")
	require.Contains(t, b.L2Switches, "SW1")
	require.Contains(t, b.All, "R1")
	require.Contains(t, b.All, "SW1")
}

func TestBuildBundlesEmptyTopologyProducesEmptyArtifacts(t *testing.T) {
	top, err := graph.Build(graph.RawTopology{})
	require.NoError(t, err)
	b := BuildBundles(top, map[string][]string{})
	require.Empty(t, b.All)
	require.Empty(t, b.Routers)
}

func TestCableTypeCollapsesSwitchCoreIntoSwitch(t *testing.T) {
	require.Equal(t, "cross", cableType(graph.KindSwitch, graph.KindSwitchCore))
	require.Equal(t, "straight", cableType(graph.KindRouter, graph.KindSwitch))
}

func TestExpandRangeProducesContiguousInterfaces(t *testing.T) {
	r := graph.InterfaceRange{Type: "FastEthernet", First: "0/1", Last: "0/3"}
	out := expandRange(r)
	require.Equal(t, []string{"FastEthernet0/1", "FastEthernet0/2", "FastEthernet0/3"}, out)
}

func TestBuildSimulatorScriptEscapesQuotesInConfig(t *testing.T) {
	raw := graph.RawTopology{
		Nodes: []graph.RawNode{{ID: "r1", Data: graph.RawNodeData{Type: "router", Name: "R1"}}},
	}
	top, err := graph.Build(raw)
	require.NoError(t, err)

	formatted := map[string][]string{"r1": {`hostname "R1"`}}
	script := BuildSimulatorScript(top, nil, formatted, 1.0)
	require.True(t, strings.Contains(script, `configureIosDevice("R1", "hostname \"R1\"");`))
	require.True(t, strings.Contains(script, `addDevice("R1"`))
}
