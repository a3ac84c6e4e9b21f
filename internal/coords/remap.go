// Package coords translates canvas coordinates into the external
// simulator's coordinate space, grounded on the original generator's
// transform_coordinates_to_ptbuilder.
package coords

import "topoforge/internal/graph"

const (
	TargetX = 2000.0
	TargetY = 2000.0
	MinX    = -7500.0
	MaxX    = 11500.0
	MinY    = -1600.0
	MaxY    = 5600.0
)

// Remap translates every point in points so the bounding-box centroid of
// the set lands on (TargetX, TargetY), scales distances from that
// centroid by scale, and clamps the result to the simulator's valid
// range. If every point is the origin (no coordinates were supplied),
// every device is placed at the target center instead.
func Remap(points map[string]graph.Point, scale float64) map[string]graph.Point {
	out := make(map[string]graph.Point, len(points))
	if len(points) == 0 {
		return out
	}
	if scale == 0 {
		scale = 1.0
	}

	if allOrigin(points) {
		for id := range points {
			out[id] = graph.Point{X: TargetX, Y: TargetY}
		}
		return out
	}

	minX, maxX, minY, maxY := boundingBox(points)
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	for id, p := range points {
		x := TargetX + (p.X-cx)*scale
		y := TargetY + (p.Y-cy)*scale
		out[id] = graph.Point{X: clamp(x, MinX, MaxX), Y: clamp(y, MinY, MaxY)}
	}
	return out
}

func allOrigin(points map[string]graph.Point) bool {
	for _, p := range points {
		if p.X != 0 || p.Y != 0 {
			return false
		}
	}
	return true
}

func boundingBox(points map[string]graph.Point) (minX, maxX, minY, maxY float64) {
	first := true
	for _, p := range points {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
