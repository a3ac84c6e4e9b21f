package addralloc

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCIDR(t *testing.T, s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	require.NoError(t, err)
	return n
}

func TestAllocateDistinctNonOverlapping(t *testing.T) {
	alloc, err := NewFromOctet(19)
	require.NoError(t, err)

	a, err := alloc.Allocate(30)
	require.NoError(t, err)
	b, err := alloc.Allocate(30)
	require.NoError(t, err)

	require.Equal(t, "19.0.0.0/30", a.String())
	require.Equal(t, "19.0.0.4/30", b.String())
	require.False(t, overlaps(a, b))
}

func TestAllocateSkipsMarkedUsed(t *testing.T) {
	alloc, err := NewFromOctet(19)
	require.NoError(t, err)
	alloc.MarkUsed(mustCIDR(t, "19.0.0.0/30"))

	a, err := alloc.Allocate(30)
	require.NoError(t, err)
	require.Equal(t, "19.0.0.4/30", a.String())
}

func TestAllocateExhaustsBaseBlock(t *testing.T) {
	alloc, err := NewFromOctet(19)
	require.NoError(t, err)

	_, err = alloc.Allocate(8)
	require.NoError(t, err)

	_, err = alloc.Allocate(30)
	require.Error(t, err)
}

func TestGatewayIsLastUsableHost(t *testing.T) {
	n := mustCIDR(t, "192.168.1.0/24")
	gw := Gateway(n)
	require.Equal(t, "192.168.1.254", gw.String())
}

func TestUsableHostsSlash30(t *testing.T) {
	n := mustCIDR(t, "10.0.0.0/30")
	hosts := UsableHosts(n)
	require.Len(t, hosts, 2)
	require.Equal(t, "10.0.0.1", hosts[0].String())
	require.Equal(t, "10.0.0.2", hosts[1].String())
}

func TestNewFromOctetRejectsOutOfRange(t *testing.T) {
	_, err := NewFromOctet(0)
	require.Error(t, err)
	_, err = NewFromOctet(224)
	require.Error(t, err)
}
