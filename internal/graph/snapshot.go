package graph

// SnapshotEdge is one serialized edge with all its recorded details.
type SnapshotEdge struct {
	Importer string         `json:"importer"`
	Imported string         `json:"imported"`
	Details  []ImportDetail `json:"details,omitempty"`
}

// Snapshot is a serializable form of a graph, used by the scan cache and by
// the graph subcommand's JSON output. Module and edge order is deterministic.
type Snapshot struct {
	Modules []string       `json:"modules"`
	Edges   []SnapshotEdge `json:"edges"`
}

// Snapshot serializes the graph.
func (g *Graph) Snapshot() *Snapshot {
	snap := &Snapshot{Modules: g.Modules()}

	for _, importer := range sortedKeys(g.importedBy) {
		for _, imported := range sortedKeys(g.importedBy[importer]) {
			snap.Edges = append(snap.Edges, SnapshotEdge{
				Importer: importer,
				Imported: imported,
				Details:  g.GetImportDetails(importer, imported),
			})
		}
	}
	return snap
}

// FromSnapshot rebuilds a graph from its serialized form.
func FromSnapshot(snap *Snapshot) *Graph {
	g := New()
	for _, m := range snap.Modules {
		g.AddModule(m)
	}
	for _, e := range snap.Edges {
		if len(e.Details) == 0 {
			g.AddImport(e.Importer, e.Imported)
			continue
		}
		for _, d := range e.Details {
			g.AddDetailedImport(d)
		}
	}
	return g
}
