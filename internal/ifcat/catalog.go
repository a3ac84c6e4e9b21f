// Package ifcat supplies the generic and physical-model interface
// catalogues a device draws from when the submitted topology leaves an
// endpoint's interface unbound, grounded on the original generator's
// device-constants/physical_models catalogues.
package ifcat

import (
	"fmt"

	"topoforge/internal/errs"
	"topoforge/internal/graph"
)

// slot is one interface a catalogue can hand out, in the fixed order the
// device exposes it on the chassis.
type slot struct {
	Type   string
	Number string
}

func span(typ string, first, last int) []slot {
	out := make([]slot, 0, last-first+1)
	for n := first; n <= last; n++ {
		out = append(out, slot{Type: typ, Number: fmt.Sprintf("0/%d", n)})
	}
	return out
}

// genericCatalog returns the digital-mode interface inventory for a
// device kind: a small backbone-capable set for routers, a deep
// access-port run for switches, matching the generic interface lists
// used when no physical model is declared.
func genericCatalog(kind graph.Kind) []slot {
	switch kind {
	case graph.KindRouter:
		return append(span("FastEthernet", 0, 2), span("GigabitEthernet", 0, 2)...)
	case graph.KindSwitchCore:
		return append(span("FastEthernet", 1, 24), span("GigabitEthernet", 1, 4)...)
	case graph.KindSwitch:
		return append(span("FastEthernet", 1, 24), span("GigabitEthernet", 1, 2)...)
	default:
		return nil
	}
}

// physicalCatalog looks up the interface inventory for a named physical
// model. Physical mode still requires the model tag to be present
// (checked in graph.Build); an unrecognized model falls back to the
// generic catalogue for that device's kind.
var physicalCatalog = map[string][]slot{
	"2811":      span("FastEthernet", 0, 2),
	"2960-24TT": append(span("FastEthernet", 1, 24), span("GigabitEthernet", 1, 2)...),
	"3560-24PS": append(span("FastEthernet", 1, 24), span("GigabitEthernet", 1, 4)...),
	"3850-48T":  span("GigabitEthernet", 1, 48),
}

// Catalog returns the ordered interface inventory for a device given the
// generation mode.
func Catalog(d graph.Device, mode string) []slot {
	if mode == "physical" {
		if c, ok := physicalCatalog[d.PhysicalModel()]; ok {
			return c
		}
	}
	return genericCatalog(d.Kind())
}

// Next returns the first interface in d's catalogue not present in used,
// marking nothing itself — the caller is responsible for recording the
// choice back into its own used set.
func Next(d graph.Device, mode string, used map[graph.Interface]bool) (graph.Interface, error) {
	for _, s := range Catalog(d, mode) {
		iface := graph.Interface{Type: s.Type, Number: s.Number}
		if !used[iface] {
			return iface, nil
		}
	}
	return graph.Interface{}, errs.Newf(errs.InterfaceConflict, d.Name(), "no free interface remains on this device")
}
