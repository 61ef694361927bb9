// Package routegraph holds the directed stop graph of a route and the
// shortest-distance search used for fare pricing.
package routegraph

import "sort"

// Leg is a directed edge between two stop names with a length in kilometres.
type Leg struct {
	From       string
	To         string
	DistanceKM float64
}

// Graph is the directed leg set of one route. Nodes are implied by leg endpoints.
type Graph struct {
	legs []Leg
	out  map[string][]int // stop -> indexes into legs
}

// New builds a Graph from a route's legs. Legs with negative distances are dropped.
func New(legs []Leg) *Graph {
	g := &Graph{out: make(map[string][]int)}
	for _, l := range legs {
		if l.DistanceKM < 0 {
			continue
		}
		g.out[l.From] = append(g.out[l.From], len(g.legs))
		g.legs = append(g.legs, l)
	}
	return g
}

// Len returns the number of legs.
func (g *Graph) Len() int { return len(g.legs) }

// Stops returns every stop name that appears as a leg endpoint, sorted.
func (g *Graph) Stops() []string {
	seen := make(map[string]struct{}, len(g.legs)*2)
	for _, l := range g.legs {
		seen[l.From] = struct{}{}
		seen[l.To] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Outgoing returns the legs leaving stop.
func (g *Graph) Outgoing(stop string) []Leg {
	idx := g.out[stop]
	out := make([]Leg, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.legs[i])
	}
	return out
}
