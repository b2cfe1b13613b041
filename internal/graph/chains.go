package graph

// FindShortestChain returns a shortest path of modules from importer to
// imported, following import edges, including both endpoints. It returns nil
// if either module is missing or no path exists.
//
// Neighbors are expanded in lexicographic order so that, among equal-length
// paths, the same chain is returned on every run.
func (g *Graph) FindShortestChain(importer, imported string) []string {
	if !g.Contains(importer) || !g.Contains(imported) {
		return nil
	}
	if importer == imported {
		return []string{importer}
	}

	predecessor := map[string]string{importer: importer}
	queue := []string{importer}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range g.FindModulesDirectlyImportedBy(current) {
			if _, seen := predecessor[next]; seen {
				continue
			}
			predecessor[next] = current
			if next == imported {
				return reconstructChain(imported, predecessor)
			}
			queue = append(queue, next)
		}
	}

	return nil
}

// reconstructChain walks predecessor links back from the end of the path.
func reconstructChain(end string, predecessor map[string]string) []string {
	var reversed []string
	for node := end; ; node = predecessor[node] {
		reversed = append(reversed, node)
		if predecessor[node] == node {
			break
		}
	}
	chain := make([]string, len(reversed))
	for i, m := range reversed {
		chain[len(reversed)-1-i] = m
	}
	return chain
}

// SquashModule collapses a module and all its descendants into the module
// itself: every edge crossing the subtree boundary is re-pointed at the
// module, then the descendants are removed. Synthesized edges carry no
// import details, so detail lookups must use an unsquashed copy.
func (g *Graph) SquashModule(name string) {
	descendants := g.FindDescendants(name)

	for _, d := range descendants {
		for _, imported := range g.FindModulesDirectlyImportedBy(d) {
			if IsSameOrDescendant(imported, name) {
				continue
			}
			g.AddImport(name, imported)
		}
		for _, importer := range g.FindModulesThatDirectlyImport(d) {
			if IsSameOrDescendant(importer, name) {
				continue
			}
			g.AddImport(importer, name)
		}
	}

	for _, d := range descendants {
		g.RemoveModule(d)
	}
}
