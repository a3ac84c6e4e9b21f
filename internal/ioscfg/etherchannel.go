package ioscfg

import (
	"fmt"
	"strings"

	"topoforge/internal/graph"
)

// EtherChannelBlocks composes the interface-range/channel-group and
// port-channel blocks an EtherChannel link contributes to device id, per
// spec §4.6d. It returns nil if id is not one of the link's endpoints or
// the link is not an EtherChannel.
func EtherChannelBlocks(l graph.Link, id string) []Block {
	if l.ConnectionType != graph.ConnEtherChannel || l.EtherChannel == nil {
		return nil
	}
	ec := l.EtherChannel

	var rng graph.InterfaceRange
	var mode string
	switch id {
	case l.FromID:
		rng = ec.FromRange
		mode = fromSideMode(ec.Protocol)
	case l.ToID:
		rng = ec.ToRange
		mode = toSideMode(ec.Protocol)
	default:
		return nil
	}

	rangeBlock := Block{Kind: Interface, Lines: []string{
		fmt.Sprintf("interface range %s%s", rng.Type, rangeSuffix(rng)),
		fmt.Sprintf("channel-group %d mode %s", ec.Group, mode),
	}}
	portChannelBlock := Block{Kind: Interface, Lines: []string{
		fmt.Sprintf("interface Port-channel%d", ec.Group),
		"switchport mode trunk",
	}}
	return []Block{rangeBlock, portChannelBlock}
}

func fromSideMode(p graph.EtherChannelProtocol) string {
	if p == graph.ProtoPAgP {
		return "desirable"
	}
	return "active"
}

func toSideMode(p graph.EtherChannelProtocol) string {
	if p == graph.ProtoPAgP {
		return "auto"
	}
	return "passive"
}

// rangeSuffix renders "0/1-3" from First "0/1" and Last "0/3": the
// common dotted prefix plus the two final numbers joined by a dash.
func rangeSuffix(r graph.InterfaceRange) string {
	idx := strings.LastIndex(r.First, "/")
	if idx < 0 {
		return r.First + "-" + r.Last
	}
	prefix := r.First[:idx+1]
	firstNum := r.First[idx+1:]
	lastIdx := strings.LastIndex(r.Last, "/")
	lastNum := r.Last
	if lastIdx >= 0 {
		lastNum = r.Last[lastIdx+1:]
	}
	return prefix + firstNum + "-" + lastNum
}
