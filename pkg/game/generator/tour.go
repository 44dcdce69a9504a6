package generator

import (
	"math"

	"dungeonlayout/pkg/engine/world"
)

// Edge is one corridor to dig, from one connection point to another.
type Edge struct {
	From ConnectionPoint
	To   ConnectionPoint
}

// OrderNearest orders points with a greedy nearest-neighbor walk that starts
// at points[0]. Ties keep the point found first, so the order depends only
// on the input order.
func OrderNearest(points []ConnectionPoint) []ConnectionPoint {
	if len(points) == 0 {
		return nil
	}
	pool := append([]ConnectionPoint(nil), points[1:]...)
	ordered := make([]ConnectionPoint, 0, len(points))
	current := points[0]
	ordered = append(ordered, current)

	for len(pool) > 0 {
		best := 0
		bestDist := world.Euclidean(current.Pos, pool[0].Pos)
		for i := 1; i < len(pool); i++ {
			if d := world.Euclidean(current.Pos, pool[i].Pos); d < bestDist {
				best, bestDist = i, d
			}
		}
		current = pool[best]
		ordered = append(ordered, current)
		pool = append(pool[:best], pool[best+1:]...)
	}
	return ordered
}

// NearestEdges pairs consecutive points of the nearest-neighbor order.
func NearestEdges(points []ConnectionPoint) []Edge {
	ordered := OrderNearest(points)
	if len(ordered) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		edges = append(edges, Edge{From: ordered[i-1], To: ordered[i]})
	}
	return edges
}

// SpanningEdges returns the edges of a Euclidean minimum spanning tree over
// points, grown with Prim's algorithm from points[0]. Edges are listed in the
// order their target joined the tree, so every edge starts at a point that
// is already connected to the start room.
func SpanningEdges(points []ConnectionPoint) []Edge {
	n := len(points)
	if n < 2 {
		return nil
	}
	inTree := make([]bool, n)
	bestCost := make([]float64, n)
	parent := make([]int, n)
	for v := range bestCost {
		bestCost[v] = math.Inf(1)
		parent[v] = -1
	}
	bestCost[0] = 0

	edges := make([]Edge, 0, n-1)
	for it := 0; it < n; it++ {
		u, minW := -1, math.Inf(1)
		for v := 0; v < n; v++ {
			if !inTree[v] && bestCost[v] < minW {
				u, minW = v, bestCost[v]
			}
		}
		if u < 0 {
			break
		}
		inTree[u] = true
		if parent[u] >= 0 {
			edges = append(edges, Edge{From: points[parent[u]], To: points[u]})
		}
		for v := 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			if d := world.Euclidean(points[u].Pos, points[v].Pos); d < bestCost[v] {
				bestCost[v] = d
				parent[v] = u
			}
		}
	}
	return edges
}
