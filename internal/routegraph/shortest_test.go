package routegraph

import "testing"

func chain() *Graph {
	return New([]Leg{
		{From: "A", To: "B", DistanceKM: 10},
		{From: "B", To: "C", DistanceKM: 15},
		{From: "C", To: "D", DistanceKM: 7.5},
	})
}

func TestShortestDistance_ChainSumsLegs(t *testing.T) {
	g := chain()
	cases := []struct {
		from, to string
		want     float64
	}{
		{"A", "B", 10},
		{"A", "C", 25},
		{"A", "D", 32.5},
		{"B", "D", 22.5},
	}
	for _, tc := range cases {
		got, ok := g.ShortestDistance(tc.from, tc.to)
		if !ok {
			t.Fatalf("%s->%s: expected a path", tc.from, tc.to)
		}
		if got != tc.want {
			t.Fatalf("%s->%s: got %v want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestShortestDistance_SameStopIsZero(t *testing.T) {
	got, ok := chain().ShortestDistance("C", "C")
	if !ok || got != 0 {
		t.Fatalf("expected (0,true), got (%v,%v)", got, ok)
	}
}

func TestShortestDistance_WrongDirectionHasNoPath(t *testing.T) {
	if _, ok := chain().ShortestDistance("C", "A"); ok {
		t.Fatalf("expected no path against leg direction")
	}
}

func TestShortestDistance_UnknownStop(t *testing.T) {
	if _, ok := chain().ShortestDistance("X", "A"); ok {
		t.Fatalf("expected no path from stop without outgoing legs")
	}
}

func TestShortestDistance_ParallelLegsPickSmaller(t *testing.T) {
	g := New([]Leg{
		{From: "A", To: "B", DistanceKM: 12},
		{From: "A", To: "B", DistanceKM: 9},
	})
	got, ok := g.ShortestDistance("A", "B")
	if !ok || got != 9 {
		t.Fatalf("expected 9, got (%v,%v)", got, ok)
	}
}

func TestShortestDistance_BranchingPicksMinimum(t *testing.T) {
	g := New([]Leg{
		{From: "A", To: "B", DistanceKM: 5},
		{From: "B", To: "D", DistanceKM: 20},
		{From: "A", To: "C", DistanceKM: 8},
		{From: "C", To: "D", DistanceKM: 6},
		{From: "A", To: "D", DistanceKM: 30},
	})
	got, ok := g.ShortestDistance("A", "D")
	if !ok || got != 14 {
		t.Fatalf("expected 14, got (%v,%v)", got, ok)
	}
}

func TestShortestDistance_TerminatesOnCycle(t *testing.T) {
	g := New([]Leg{
		{From: "A", To: "B", DistanceKM: 1},
		{From: "B", To: "A", DistanceKM: 1},
		{From: "B", To: "C", DistanceKM: 4},
		{From: "C", To: "B", DistanceKM: 2},
	})
	got, ok := g.ShortestDistance("A", "C")
	if !ok || got != 5 {
		t.Fatalf("expected 5, got (%v,%v)", got, ok)
	}
	if _, ok := g.ShortestDistance("A", "Z"); ok {
		t.Fatalf("expected no path to missing stop")
	}
}

func TestNew_DropsNegativeLegs(t *testing.T) {
	g := New([]Leg{{From: "A", To: "B", DistanceKM: -1}, {From: "B", To: "C", DistanceKM: 2}})
	if g.Len() != 1 {
		t.Fatalf("expected 1 leg, got %d", g.Len())
	}
	stops := g.Stops()
	if len(stops) != 2 || stops[0] != "B" || stops[1] != "C" {
		t.Fatalf("unexpected stops %v", stops)
	}
	if n := len(g.Outgoing("B")); n != 1 {
		t.Fatalf("expected 1 outgoing leg from B, got %d", n)
	}
}
