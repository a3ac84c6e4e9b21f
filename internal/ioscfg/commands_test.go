package ioscfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatInsertsInterfaceTransition(t *testing.T) {
	d := Device{Hostname: "R1", Blocks: []Block{
		{Kind: Header, Lines: []string{"hostname R1"}},
		{Kind: Interface, Lines: []string{"interface FastEthernet0/0"}},
		{Kind: Interface, Lines: []string{"interface FastEthernet0/1"}},
	}}
	out := Format(d)
	require.Equal(t, []string{
		"hostname R1",
		"interface FastEthernet0/0",
		"exit", "enable", "conf t",
		"interface FastEthernet0/1",
	}, out)
}

func TestFormatInsertsRoutesTransitionOnce(t *testing.T) {
	d := Device{Hostname: "R1", Blocks: []Block{
		{Kind: Header, Lines: []string{"hostname R1"}},
		{Kind: Interface, Lines: []string{"interface FastEthernet0/0"}},
		{Kind: StaticRoutes, Lines: []string{"ip route 10.0.0.0 255.255.255.252 10.0.0.2"}},
	}}
	out := Format(d)
	require.Equal(t, []string{
		"hostname R1",
		"interface FastEthernet0/0",
		"exit", "enable",
		"ip route 10.0.0.0 255.255.255.252 10.0.0.2",
	}, out)
}

func TestFormatEmptyDeviceProducesNoLines(t *testing.T) {
	d := Device{Hostname: "R1"}
	out := Format(d)
	require.Empty(t, out)
}

func TestCollapseDuplicatesOnlyCollapsesExitEnable(t *testing.T) {
	out := collapseDuplicates([]string{"exit", "exit", "enable", "enable", "conf t", "conf t"})
	require.Equal(t, []string{"exit", "enable", "conf t", "conf t"}, out)
}

func TestFormatInsertsExitAfterVLANDatabaseBeforeInterface(t *testing.T) {
	d := Device{Hostname: "SW1", Blocks: []Block{
		{Kind: Header, Lines: []string{"hostname SW1"}},
		{Kind: VLANDatabase, Lines: []string{"vlan 10", "name VLAN10"}},
		{Kind: Interface, Lines: []string{"interface FastEthernet0/5"}},
	}}
	out := Format(d)
	require.Equal(t, []string{
		"hostname SW1",
		"vlan 10", "name VLAN10",
		"exit", "enable", "conf t",
		"interface FastEthernet0/5",
	}, out)
}

func TestFormatEmptyVLANDatabaseBlockInsertsNoTransition(t *testing.T) {
	d := Device{Hostname: "SW1", Blocks: []Block{
		{Kind: Header, Lines: []string{"hostname SW1"}},
		{Kind: Global},
		{Kind: Interface, Lines: []string{"interface FastEthernet0/5"}},
	}}
	out := Format(d)
	require.Equal(t, []string{
		"hostname SW1",
		"interface FastEthernet0/5",
	}, out)
}
