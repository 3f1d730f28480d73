// Package graph contains a generic all-pairs shortest path solver.
package graph

import "math"

// Result holds the all-pairs distances and the next hop on a shortest path
// for every ordered vertex pair.
type Result[V comparable] struct {
	distance map[V]map[V]float64
	nextHop  map[V]map[V]V
}

// Distance returns the length of the shortest path from v to w,
// or +Inf when w is unreachable from v (or either vertex is unknown).
func (r *Result[V]) Distance(v, w V) float64 {
	row, ok := r.distance[v]
	if !ok {
		return math.Inf(1)
	}
	d, ok := row[w]
	if !ok {
		return math.Inf(1)
	}
	return d
}

// NextHop returns the vertex following v on a shortest path from v to w.
// The boolean is false when no path exists or v == w.
func (r *Result[V]) NextHop(v, w V) (V, bool) {
	hop, ok := r.nextHop[v][w]
	return hop, ok
}

// NextHops exposes the raw next hop map. Callers must not modify it.
func (r *Result[V]) NextHops() map[V]map[V]V {
	return r.nextHop
}

// FloydWarshall computes shortest paths between all pairs of vertices.
//
// edgeDistance reports the weight of the directed edge from -> to, and false when
// there is no such edge. Vertices are processed in the order given, so callers that
// need deterministic tie breaking must supply a stable order.
func FloydWarshall[V comparable](vertices []V, edgeDistance func(from, to V) (float64, bool)) *Result[V] {
	inf := math.Inf(1)
	dist := make(map[V]map[V]float64, len(vertices))
	next := make(map[V]map[V]V, len(vertices))

	for _, v := range vertices {
		dist[v] = make(map[V]float64, len(vertices))
		next[v] = make(map[V]V)
		for _, w := range vertices {
			if v == w {
				dist[v][w] = 0
				continue
			}
			if d, ok := edgeDistance(v, w); ok {
				dist[v][w] = d
				next[v][w] = w
			} else {
				dist[v][w] = inf
			}
		}
	}

	for _, m := range vertices {
		for _, v := range vertices {
			dvm := dist[v][m]
			if math.IsInf(dvm, 1) {
				continue
			}
			for _, w := range vertices {
				if candidate := dvm + dist[m][w]; candidate < dist[v][w] {
					dist[v][w] = candidate
					next[v][w] = next[v][m]
				}
			}
		}
	}

	return &Result[V]{distance: dist, nextHop: next}
}
