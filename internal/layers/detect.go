package layers

import (
	lerrors "layerlint/internal/errors"
	"layerlint/internal/graph"
)

// buildLayerChainData finds every violation for one layer pair. All work
// happens on a private deep copy, so the shared graph is never mutated and
// pairs can be checked concurrently.
func buildLayerChainData(g *graph.Graph, p Pair, c Contract) (LayerChainData, error) {
	data := LayerChainData{HigherLayer: p.Higher, LowerLayer: p.Lower}

	work := g.Clone()
	removeOtherLayers(work, p, c)

	data.Chains = append(data.Chains, popDirectImports(work, p)...)

	indirect, err := collapsedIndirectChains(work, p)
	if err != nil {
		return data, err
	}
	data.Chains = append(data.Chains, indirect...)

	return data, nil
}

// removeOtherLayers deletes every declared layer other than the pair's two,
// together with all its descendants, so only the layers of interest and the
// non-layer modules between them remain.
func removeOtherLayers(work *graph.Graph, p Pair, c Contract) {
	for _, layer := range c.Layers {
		candidate := graph.Join(p.Container, layer.Name)
		if candidate == p.Higher || candidate == p.Lower {
			continue
		}
		for _, descendant := range work.FindDescendants(candidate) {
			work.RemoveModule(descendant)
		}
		work.RemoveModule(candidate)
	}
}

// popDirectImports collects every single-edge violation from the lower layer
// into the higher layer, removing each edge from the working graph so it
// cannot be double-counted as part of an indirect path.
func popDirectImports(work *graph.Graph, p Pair) []DetailedChain {
	lowerModules := append([]string{p.Lower}, work.FindDescendants(p.Lower)...)

	var chains []DetailedChain
	for _, lowerModule := range lowerModules {
		for _, imported := range work.FindModulesDirectlyImportedBy(lowerModule) {
			if !graph.IsSameOrDescendant(imported, p.Higher) {
				continue
			}
			link := linkFor(work, lowerModule, imported)
			work.RemoveImport(lowerModule, imported)
			chains = append(chains, DetailedChain{Chain: []Link{link}})
		}
	}
	return chains
}

// collapsedIndirectChains finds multi-hop paths from the lower layer to the
// higher layer. Both layer subtrees are squashed into single nodes first, so
// shortest-path search treats "any module in this layer" as one source or
// sink; the resulting middle segments are then reconstituted against the
// unsquashed reference graph, with parallel first and last hops collapsed
// into ExtraFirsts/ExtraLasts.
func collapsedIndirectChains(ref *graph.Graph, p Pair) ([]DetailedChain, error) {
	squashed := ref.Clone()
	squashed.SquashModule(p.Lower)
	squashed.SquashModule(p.Higher)

	var chains []DetailedChain
	for {
		path := squashed.FindShortestChain(p.Lower, p.Higher)
		if path == nil {
			break
		}
		if len(path) <= 2 {
			// Direct edges were already popped, so a two-node path here is a
			// logic defect.
			return nil, lerrors.Newf(lerrors.InternalInvariant,
				"direct import %s -> %s surfaced during indirect chain extraction", p.Lower, p.Higher)
		}

		for i := 0; i < len(path)-1; i++ {
			squashed.RemoveImport(path[i], path[i+1])
		}

		chain, err := collapseSegment(ref, path[1:len(path)-1], p)
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

// collapseSegment rebuilds the real first and last hops around a headless,
// tailless middle segment. The lexicographically first candidate on each end
// becomes the chain's head or tail; the remaining candidates are reported as
// extras rather than as separate near-duplicate chains.
func collapseSegment(ref *graph.Graph, segment []string, p Pair) (DetailedChain, error) {
	var firsts, lasts []string
	for _, m := range ref.FindModulesThatDirectlyImport(segment[0]) {
		if graph.IsSameOrDescendant(m, p.Lower) {
			firsts = append(firsts, m)
		}
	}
	for _, m := range ref.FindModulesDirectlyImportedBy(segment[len(segment)-1]) {
		if graph.IsSameOrDescendant(m, p.Higher) {
			lasts = append(lasts, m)
		}
	}
	if len(firsts) == 0 || len(lasts) == 0 {
		return DetailedChain{}, lerrors.Newf(lerrors.InternalInvariant,
			"squashed chain through %s has no boundary edges in the reference graph", segment[0])
	}

	var dc DetailedChain
	dc.Chain = append(dc.Chain, linkFor(ref, firsts[0], segment[0]))
	for i := 0; i < len(segment)-1; i++ {
		dc.Chain = append(dc.Chain, linkFor(ref, segment[i], segment[i+1]))
	}
	dc.Chain = append(dc.Chain, linkFor(ref, segment[len(segment)-1], lasts[0]))

	for _, first := range firsts[1:] {
		dc.ExtraFirsts = append(dc.ExtraFirsts, linkFor(ref, first, segment[0]))
	}
	for _, last := range lasts[1:] {
		dc.ExtraLasts = append(dc.ExtraLasts, linkFor(ref, segment[len(segment)-1], last))
	}
	return dc, nil
}

// linkFor looks up the recorded details for an edge and folds them into one
// Link. An edge with no recorded detail still yields a link, with line
// number 0 standing in for unknown.
func linkFor(g *graph.Graph, importer, imported string) Link {
	details := g.GetImportDetails(importer, imported)
	if len(details) == 0 {
		details = []graph.ImportDetail{{Importer: importer, Imported: imported}}
	}
	nums := make([]int, len(details))
	for i, d := range details {
		nums[i] = d.LineNumber
	}
	return Link{Importer: importer, Imported: imported, LineNumbers: nums}
}
