// Package ioscfg assembles per-device Cisco IOS command streams from a
// topology and its derived plan. Command streams are built as an ordered
// sequence of Block records rather than concatenated strings; a single
// Format pass inserts the exit/enable/conf t transitions Cisco IOS
// requires between mode changes, grounded on the original generator's
// format_config_for_ptbuilder.
package ioscfg

// Kind tags what CLI mode a Block's lines execute in, so Format knows
// what transition — if any — belongs before it.
type Kind int

const (
	// Header is the hostname/enable-secret opener. Always first, never
	// preceded by a transition.
	Header Kind = iota
	// Global holds lines issued directly in global config mode: no
	// submode to enter or leave.
	Global
	// Interface holds one `interface ...` submode block.
	Interface
	// VLANDatabase holds the `vlan N` / `name X` lines for every VLAN a
	// switch or switch_core owns. A submode: leaving it for any further
	// configuration requires an exit.
	VLANDatabase
	// LineVTY holds the `line vty 0 5` submode block.
	LineVTY
	// DHCPPool holds one `ip dhcp pool ...` submode block, including its
	// preceding `ip dhcp excluded-address` global line.
	DHCPPool
	// StaticRoutes holds the terminal `ip route ...` block.
	StaticRoutes
)

func (k Kind) submode() bool {
	return k == Interface || k == VLANDatabase || k == LineVTY || k == DHCPPool
}

// Block is one contiguous run of CLI lines sharing a single mode.
type Block struct {
	Kind  Kind
	Lines []string
}

// Device is the full command stream for one device: its hostname plus
// every configuration block in emission order.
type Device struct {
	Hostname string
	Blocks   []Block
}

// Format renders a Device's blocks into the final line-by-line command
// stream, inserting transitions between blocks and collapsing duplicate
// consecutive exit/enable lines.
func Format(d Device) []string {
	var out []string
	var prevKind Kind
	havePrev := false

	for _, b := range d.Blocks {
		if havePrev {
			out = append(out, transition(prevKind, b.Kind)...)
		}
		out = append(out, b.Lines...)
		prevKind = b.Kind
		havePrev = true
	}

	return collapseDuplicates(out)
}

func transition(prev, cur Kind) []string {
	switch {
	case !prev.submode():
		return nil
	case cur == StaticRoutes:
		return []string{"exit", "enable"}
	case cur == Interface:
		return []string{"exit", "enable", "conf t"}
	default:
		return []string{"exit"}
	}
}

func collapseDuplicates(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if len(out) > 0 && out[len(out)-1] == l && (l == "exit" || l == "enable") {
			continue
		}
		out = append(out, l)
	}
	return out
}
