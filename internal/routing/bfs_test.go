package routing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBFSFirstHopIsEdgeLeavingStart(t *testing.T) {
	graph := map[string][]Edge{
		"a": {{LinkID: "ab", To: "b"}},
		"b": {{LinkID: "ab", To: "a"}, {LinkID: "bc", To: "c"}},
		"c": {{LinkID: "bc", To: "b"}},
	}
	neighbors := func(v string) []Edge { return graph[v] }

	result := BFS("a", neighbors)

	require.Equal(t, "ab", result.FirstHopLink["b"])
	require.Equal(t, "ab", result.FirstHopLink["c"])
	require.Equal(t, []string{"b", "c"}, result.Order)
}

func TestBFSUnreachableNodesAreAbsent(t *testing.T) {
	graph := map[string][]Edge{
		"a": {{LinkID: "ab", To: "b"}},
		"b": {{LinkID: "ab", To: "a"}},
		"z": {},
	}
	neighbors := func(v string) []Edge { return graph[v] }

	result := BFS("a", neighbors)
	_, ok := result.FirstHopLink["z"]
	require.False(t, ok)
}
