package layers

import "layerlint/internal/graph"

// Pair is one (higher layer, lower layer) combination to check, resolved to
// fully-qualified module names. Container is empty when no containers were
// declared.
type Pair struct {
	Higher    string
	Lower     string
	Container string
}

// enumeratePairs produces every layer pair present in the graph, in the
// order violations must be reported: containers in declared order, then the
// higher layer by declared index, then every strictly-lower layer after it.
// Pairs whose resolved modules are absent are skipped; this is what lets a
// missing optional layer pass silently.
func enumeratePairs(g *graph.Graph, c Contract) []Pair {
	containers := c.Containers
	if len(containers) == 0 {
		// Still run a single containerless pass.
		containers = []string{""}
	}

	var pairs []Pair
	for _, container := range containers {
		for i, higher := range c.Layers {
			higherModule := graph.Join(container, higher.Name)
			if !g.Contains(higherModule) {
				continue
			}
			for _, lower := range c.Layers[i+1:] {
				lowerModule := graph.Join(container, lower.Name)
				if !g.Contains(lowerModule) {
					continue
				}
				pairs = append(pairs, Pair{Higher: higherModule, Lower: lowerModule, Container: container})
			}
		}
	}
	return pairs
}
