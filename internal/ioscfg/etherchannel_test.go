package ioscfg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"topoforge/internal/graph"
)

// S6 — EtherChannel between two L2 switches with LACP.
func TestEtherChannelBlocksLACPModes(t *testing.T) {
	l := graph.Link{
		ID: "e1", FromID: "sw1", ToID: "sw2",
		ConnectionType: graph.ConnEtherChannel,
		EtherChannel: &graph.EtherChannel{
			Protocol:  graph.ProtoLACP,
			Group:     1,
			FromRange: graph.InterfaceRange{Type: "FastEthernet", First: "0/1", Last: "0/3"},
			ToRange:   graph.InterfaceRange{Type: "FastEthernet", First: "0/1", Last: "0/3"},
		},
	}

	from := EtherChannelBlocks(l, "sw1")
	require.Len(t, from, 2)
	require.Equal(t, "interface range FastEthernet0/1-3", from[0].Lines[0])
	require.Equal(t, "channel-group 1 mode active", from[0].Lines[1])
	require.Equal(t, "interface Port-channel1", from[1].Lines[0])

	to := EtherChannelBlocks(l, "sw2")
	require.Equal(t, "channel-group 1 mode passive", to[0].Lines[1])
}

func TestEtherChannelBlocksPAgPModes(t *testing.T) {
	l := graph.Link{
		ID: "e1", FromID: "sw1", ToID: "sw2",
		ConnectionType: graph.ConnEtherChannel,
		EtherChannel: &graph.EtherChannel{
			Protocol:  graph.ProtoPAgP,
			Group:     2,
			FromRange: graph.InterfaceRange{Type: "FastEthernet", First: "0/1", Last: "0/2"},
			ToRange:   graph.InterfaceRange{Type: "FastEthernet", First: "0/1", Last: "0/2"},
		},
	}
	from := EtherChannelBlocks(l, "sw1")
	require.Equal(t, "channel-group 2 mode desirable", from[0].Lines[1])
	to := EtherChannelBlocks(l, "sw2")
	require.Equal(t, "channel-group 2 mode auto", to[0].Lines[1])
}

func TestEtherChannelBlocksNilForNonMember(t *testing.T) {
	l := graph.Link{ID: "e1", FromID: "sw1", ToID: "sw2", ConnectionType: graph.ConnEtherChannel,
		EtherChannel: &graph.EtherChannel{FromRange: graph.InterfaceRange{Type: "FastEthernet", First: "0/1", Last: "0/1"}, ToRange: graph.InterfaceRange{Type: "FastEthernet", First: "0/1", Last: "0/1"}}}
	require.Nil(t, EtherChannelBlocks(l, "sw3"))
}
