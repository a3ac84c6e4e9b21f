// Package addralloc hands out non-overlapping IPv4 subnets of a requested
// prefix length drawn from a configurable base block.
//
// The algorithm mirrors the original Python generator's generate_blocks:
// enumerate candidate subnets of the requested prefix within the base, in
// canonical ascending order, and return the first that does not overlap any
// subnet already marked used.
package addralloc

import (
	"net"

	"topoforge/internal/errs"
)

// Allocator draws subnets from a single base IPv4 block, tracking every
// subnet it has handed out so later calls never overlap earlier ones.
type Allocator struct {
	base *net.IPNet
	used []*net.IPNet
}

// New builds an Allocator over the given base CIDR block, e.g. 19.0.0.0/8.
func New(base *net.IPNet) *Allocator {
	return &Allocator{base: base}
}

// NewFromOctet builds the default base block <octet>.0.0.0/8 from the
// submitted topology's baseNetworkOctet field.
func NewFromOctet(octet int) (*Allocator, error) {
	if octet < 1 || octet > 223 {
		return nil, errs.Newf(errs.InvalidTopology, "", "baseNetworkOctet %d out of range 1..223", octet)
	}
	base := &net.IPNet{
		IP:   net.IPv4(byte(octet), 0, 0, 0).To4(),
		Mask: net.CIDRMask(8, 32),
	}
	return New(base), nil
}

// Allocate returns the first free subnet of prefixLen within the base block,
// marking it used. It fails with AddressExhausted if none remain.
func (a *Allocator) Allocate(prefixLen int) (*net.IPNet, error) {
	baseOnes, _ := a.base.Mask.Size()
	if prefixLen < baseOnes || prefixLen > 32 {
		return nil, errs.Newf(errs.AddressExhausted, "", "requested prefix /%d is not contained by base %s", prefixLen, a.base.String())
	}

	var found *net.IPNet
	subnets(a.base, prefixLen)(func(cand *net.IPNet) bool {
		if !a.overlapsUsed(cand) {
			a.used = append(a.used, cand)
			found = cand
			return false
		}
		return true
	})
	if found != nil {
		return found, nil
	}
	return nil, errs.Newf(errs.AddressExhausted, "", "no free /%d block remains in %s", prefixLen, a.base.String())
}

// MarkUsed records net as allocated without returning it, so subsequent
// Allocate calls skip it. It is a no-op if net already overlaps a used
// entry (idempotent on replay).
func (a *Allocator) MarkUsed(n *net.IPNet) {
	if a.overlapsUsed(n) {
		return
	}
	a.used = append(a.used, n)
}

func (a *Allocator) overlapsUsed(n *net.IPNet) bool {
	for _, u := range a.used {
		if overlaps(n, u) {
			return true
		}
	}
	return false
}

// overlaps reports whether two IPv4 networks share any address: one
// contains the other's network address, in either direction.
func overlaps(a, b *net.IPNet) bool {
	return a.Contains(b.IP) || b.Contains(a.IP)
}

// subnets yields, in canonical ascending network-address order, every
// subnet of newPrefix contained within base. It is a generator so the
// caller can stop as soon as a non-conflicting candidate is found, rather
// than materializing every candidate up front (mirrors the original's
// iterator-based generate_blocks).
func subnets(base *net.IPNet, newPrefix int) func(func(*net.IPNet) bool) {
	return func(yield func(*net.IPNet) bool) {
		baseOnes, _ := base.Mask.Size()
		if newPrefix < baseOnes {
			return
		}
		step := uint32(1) << uint(32-newPrefix)
		start := ipToUint32(base.IP.Mask(base.Mask))
		baseSize := uint64(1) << uint(32-baseOnes)
		count := baseSize / uint64(step)

		for i := uint64(0); i < count; i++ {
			network := start + uint32(i)*step
			cand := &net.IPNet{
				IP:   uint32ToIP(network),
				Mask: net.CIDRMask(newPrefix, 32),
			}
			if !yield(cand) {
				return
			}
		}
	}
}

func ipToUint32(ip net.IP) uint32 {
	ip4 := ip.To4()
	return uint32(ip4[0])<<24 | uint32(ip4[1])<<16 | uint32(ip4[2])<<8 | uint32(ip4[3])
}

func uint32ToIP(v uint32) net.IP {
	return net.IPv4(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// Gateway returns the last usable host address of n, broadcast minus one,
// the fixed convention every VLAN's default gateway follows.
func Gateway(n *net.IPNet) net.IP {
	bcast := Broadcast(n)
	v := ipToUint32(bcast)
	if v == ipToUint32(n.IP) {
		return n.IP
	}
	return uint32ToIP(v - 1)
}

// Broadcast returns the broadcast address of n.
func Broadcast(n *net.IPNet) net.IP {
	ones, bits := n.Mask.Size()
	hostBits := bits - ones
	network := ipToUint32(n.IP.Mask(n.Mask))
	mask := uint32(1)<<uint(hostBits) - 1
	return uint32ToIP(network | mask)
}

// UsableHosts returns the usable host addresses of n in ascending order,
// excluding network and broadcast addresses for prefixes shorter than /31.
// For /30 and wider this is the standard two-fewer-than-size range; for
// /31 and /32 — rejected upstream by VLAN validation, but handled here for
// completeness — it returns both addresses of the block.
func UsableHosts(n *net.IPNet) []net.IP {
	ones, bits := n.Mask.Size()
	network := ipToUint32(n.IP.Mask(n.Mask))
	size := uint32(1) << uint(bits-ones)

	if ones >= 31 {
		hosts := make([]net.IP, 0, size)
		for i := uint32(0); i < size; i++ {
			hosts = append(hosts, uint32ToIP(network+i))
		}
		return hosts
	}

	hosts := make([]net.IP, 0, size-2)
	for i := uint32(1); i < size-1; i++ {
		hosts = append(hosts, uint32ToIP(network+i))
	}
	return hosts
}
