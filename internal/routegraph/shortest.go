package routegraph

// ShortestDistance returns the minimum cumulative distance from one stop to
// another following directed legs. ok is false when to is unreachable.
//
// Every path is explored; a path never reuses a leg already on it, so the
// search terminates even when the leg set contains a cycle. The cost grows
// exponentially with the number of legs on dense graphs; callers keep leg
// sets small (see the per-route cap on assignment).
func (g *Graph) ShortestDistance(from, to string) (dist float64, ok bool) {
	if from == to {
		return 0, true
	}

	used := make([]bool, len(g.legs))
	best := 0.0
	found := false

	var walk func(stop string, acc float64)
	walk = func(stop string, acc float64) {
		if found && acc >= best {
			// legs are non-negative, so this branch cannot improve
			return
		}
		if stop == to {
			best, found = acc, true
			return
		}
		for _, i := range g.out[stop] {
			if used[i] {
				continue
			}
			used[i] = true
			walk(g.legs[i].To, acc+g.legs[i].DistanceKM)
			used[i] = false
		}
	}
	walk(from, 0)

	return best, found
}
