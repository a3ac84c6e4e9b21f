// Package emit produces the three deterministic output artifacts: the
// per-category device bundles, the allocation report, and the simulator
// driver script, per spec §4.8.
package emit

import (
	"fmt"
	"strings"

	"topoforge/internal/graph"
)

// Bundles holds the four text artifacts §4.8 names: one per device
// category plus a consolidated one carrying every configured device.
type Bundles struct {
	Routers    string
	L3Cores    string
	L2Switches string
	All        string
}

// BuildBundles concatenates every device's formatted command stream into
// its category bundle, in submission order, separated by a banner line
// bearing the device name.
func BuildBundles(t *graph.Topology, formatted map[string][]string) Bundles {
	var routers, cores, switches, all []string

	for _, id := range t.Order {
		lines, ok := formatted[id]
		if !ok {
			continue
		}
		d := t.Devices[id]
		block := deviceBlock(d.Name(), lines)

		all = append(all, block)
		switch d.Kind() {
		case graph.KindRouter:
			routers = append(routers, block)
		case graph.KindSwitchCore:
			cores = append(cores, block)
		case graph.KindSwitch:
			switches = append(switches, block)
		}
	}

	return Bundles{
		Routers:    strings.Join(routers, ""),
		L3Cores:    strings.Join(cores, ""),
		L2Switches: strings.Join(switches, ""),
		All:        strings.Join(all, ""),
	}
}

func deviceBlock(name string, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "===== %s =====\n", name)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}
