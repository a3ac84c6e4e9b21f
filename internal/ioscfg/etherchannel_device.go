package ioscfg

import "topoforge/internal/graph"

// etherChannelBlocksFor collects the EtherChannel blocks contributed by
// every EtherChannel link touching device id.
func etherChannelBlocksFor(t *graph.Topology, id string) []Block {
	var blocks []Block
	for _, l := range t.Incident(id) {
		blocks = append(blocks, EtherChannelBlocks(l, id)...)
	}
	return blocks
}
