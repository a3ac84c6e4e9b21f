package emit

import (
	"fmt"
	"strings"

	"topoforge/internal/coords"
	"topoforge/internal/graph"
	"topoforge/internal/planner"
)

// defaultModel is the device-model tag used in digital mode, by kind.
func defaultModel(k graph.Kind) string {
	switch k {
	case graph.KindRouter:
		return "2811"
	case graph.KindSwitchCore:
		return "3560-24PS"
	case graph.KindSwitch:
		return "2960-24TT"
	default:
		return "PC-PT"
	}
}

// cableCategory collapses switch_core into switch for cabling purposes,
// grounded on the original generator's get_cable_type.
func cableCategory(k graph.Kind) string {
	if k == graph.KindSwitchCore {
		return graph.KindSwitch.String()
	}
	return k.String()
}

func cableType(a, b graph.Kind) string {
	if cableCategory(a) == cableCategory(b) {
		return "cross"
	}
	return "straight"
}

// BuildSimulatorScript renders the device-placement + configuration
// driver script per spec §4.8: one addDevice per device, one
// configureIosDevice per configured device, one addLink per physical
// connection (expanded per-member for EtherChannel bundles), one
// configurePcIp per host.
func BuildSimulatorScript(t *graph.Topology, plan *planner.Plan, formatted map[string][]string, scale float64) string {
	points := make(map[string]graph.Point, len(t.Devices))
	for id, d := range t.Devices {
		points[id] = d.Position()
	}
	remapped := coords.Remap(points, scale)

	var b strings.Builder

	for _, id := range t.Order {
		d := t.Devices[id]
		model := d.PhysicalModel()
		if t.Mode != "physical" || model == "" {
			model = defaultModel(d.Kind())
		}
		p := remapped[id]
		fmt.Fprintf(&b, "addDevice(\"%s\", \"%s\", %g, %g);\n", d.Name(), model, p.X, p.Y)
	}
	b.WriteByte('\n')

	for _, l := range t.Links {
		fromDev, toDev := t.Devices[l.FromID], t.Devices[l.ToID]
		ct := cableType(fromDev.Kind(), toDev.Kind())

		if l.ConnectionType == graph.ConnEtherChannel && l.EtherChannel != nil {
			froms := expandRange(l.EtherChannel.FromRange)
			tos := expandRange(l.EtherChannel.ToRange)
			for i := range froms {
				if i >= len(tos) {
					break
				}
				fmt.Fprintf(&b, "addLink(\"%s\", \"%s\", \"%s\", \"%s\", \"%s\");\n",
					fromDev.Name(), froms[i], toDev.Name(), tos[i], ct)
			}
			continue
		}

		fromIface, toIface := resolvedLinkIfaces(plan, l)
		fmt.Fprintf(&b, "addLink(\"%s\", \"%s\", \"%s\", \"%s\", \"%s\");\n",
			fromDev.Name(), fromIface, toDev.Name(), toIface, ct)
	}
	b.WriteByte('\n')

	for _, id := range t.Order {
		lines, ok := formatted[id]
		if !ok {
			continue
		}
		d := t.Devices[id]
		text := strings.ReplaceAll(strings.Join(lines, "\\n"), "\"", "\\\"")
		fmt.Fprintf(&b, "configureIosDevice(\"%s\", \"%s\");\n", d.Name(), text)
	}
	b.WriteByte('\n')

	for _, id := range t.Order {
		if t.Devices[id].Kind() != graph.KindHost {
			continue
		}
		fmt.Fprintf(&b, "configurePcIp(\"%s\", true);\n", t.Devices[id].Name())
	}

	return b.String()
}

func resolvedLinkIfaces(plan *planner.Plan, l graph.Link) (string, string) {
	if a, ok := plan.LinkPlan[l.ID]; ok {
		return a.FromIface.String(), a.ToIface.String()
	}
	if pl, ok := plan.PhysicalLink[l.ID]; ok {
		return pl.FromIface.String(), pl.ToIface.String()
	}
	return l.FromInterface.String(), l.ToInterface.String()
}

func expandRange(r graph.InterfaceRange) []string {
	first := lastSeg(r.First)
	last := lastSeg(r.Last)
	prefix := r.First[:len(r.First)-digits(first)]
	out := make([]string, 0, last-first+1)
	for n := first; n <= last; n++ {
		out = append(out, fmt.Sprintf("%s%s%d", r.Type, prefix, n))
	}
	return out
}

func lastSeg(dotted string) int {
	idx := strings.LastIndex(dotted, "/")
	s := dotted
	if idx >= 0 {
		s = dotted[idx+1:]
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func digits(n int) int {
	return len(fmt.Sprint(n))
}
