package coords

import (
	"testing"

	"github.com/stretchr/testify/require"

	"topoforge/internal/graph"
)

func TestRemapCentersBoundingBox(t *testing.T) {
	points := map[string]graph.Point{
		"a": {X: 0, Y: 0},
		"b": {X: 100, Y: 100},
	}
	out := Remap(points, 1.0)
	require.Equal(t, graph.Point{X: TargetX - 50, Y: TargetY - 50}, out["a"])
	require.Equal(t, graph.Point{X: TargetX + 50, Y: TargetY + 50}, out["b"])
}

func TestRemapAllOriginFallsBackToCenter(t *testing.T) {
	points := map[string]graph.Point{"a": {}, "b": {}}
	out := Remap(points, 1.0)
	require.Equal(t, graph.Point{X: TargetX, Y: TargetY}, out["a"])
	require.Equal(t, graph.Point{X: TargetX, Y: TargetY}, out["b"])
}

func TestRemapClampsToBounds(t *testing.T) {
	points := map[string]graph.Point{
		"a": {X: -1e9, Y: 0},
		"b": {X: 1e9, Y: 0},
	}
	out := Remap(points, 1.0)
	require.GreaterOrEqual(t, out["a"].X, MinX)
	require.LessOrEqual(t, out["b"].X, MaxX)
}

func TestRemapEmptyInput(t *testing.T) {
	out := Remap(map[string]graph.Point{}, 1.0)
	require.Empty(t, out)
}
