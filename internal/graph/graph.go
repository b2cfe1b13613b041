// Package graph provides the mutable directed import graph that layer
// contracts are checked against.
package graph

import (
	"sort"
)

// ImportDetail records one concrete import statement between two modules.
// LineNumber 0 means the line is unknown (an edge added without metadata).
type ImportDetail struct {
	Importer     string `json:"importer"`
	Imported     string `json:"imported"`
	LineNumber   int    `json:"lineNumber"`
	LineContents string `json:"lineContents,omitempty"`
}

// Graph is a directed graph over dotted module names. Multiple import
// statements between the same module pair are kept as separate details on a
// single edge.
type Graph struct {
	modules map[string]bool

	// Adjacency in both directions: importedBy[a][b] means a imports b,
	// importerOf[b][a] mirrors it for reverse lookups.
	importedBy map[string]map[string]bool
	importerOf map[string]map[string]bool

	// Per-edge metadata: importer -> imported -> details.
	details map[string]map[string][]ImportDetail
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		modules:    make(map[string]bool),
		importedBy: make(map[string]map[string]bool),
		importerOf: make(map[string]map[string]bool),
		details:    make(map[string]map[string][]ImportDetail),
	}
}

// AddModule adds a module if it doesn't exist.
func (g *Graph) AddModule(name string) {
	g.modules[name] = true
}

// Contains reports whether the module exists in the graph.
func (g *Graph) Contains(name string) bool {
	return g.modules[name]
}

// Modules returns all module names in lexicographic order.
func (g *Graph) Modules() []string {
	return sortedKeys(g.modules)
}

// CountModules returns the number of modules in the graph.
func (g *Graph) CountModules() int {
	return len(g.modules)
}

// CountImports returns the number of distinct importer/imported edges.
func (g *Graph) CountImports() int {
	total := 0
	for _, targets := range g.importedBy {
		total += len(targets)
	}
	return total
}

// AddImport adds a directed edge importer -> imported, creating both modules
// if needed. No import detail is recorded.
func (g *Graph) AddImport(importer, imported string) {
	g.AddModule(importer)
	g.AddModule(imported)

	if g.importedBy[importer] == nil {
		g.importedBy[importer] = make(map[string]bool)
	}
	g.importedBy[importer][imported] = true

	if g.importerOf[imported] == nil {
		g.importerOf[imported] = make(map[string]bool)
	}
	g.importerOf[imported][importer] = true
}

// AddDetailedImport adds an edge along with one import-statement detail.
func (g *Graph) AddDetailedImport(d ImportDetail) {
	g.AddImport(d.Importer, d.Imported)
	if g.details[d.Importer] == nil {
		g.details[d.Importer] = make(map[string][]ImportDetail)
	}
	g.details[d.Importer][d.Imported] = append(g.details[d.Importer][d.Imported], d)
}

// HasImport reports whether the edge importer -> imported exists.
func (g *Graph) HasImport(importer, imported string) bool {
	return g.importedBy[importer][imported]
}

// RemoveImport removes the edge importer -> imported and its details.
// Both modules stay in the graph.
func (g *Graph) RemoveImport(importer, imported string) {
	delete(g.importedBy[importer], imported)
	delete(g.importerOf[imported], importer)
	if m := g.details[importer]; m != nil {
		delete(m, imported)
	}
}

// RemoveModule removes a module and every edge touching it.
func (g *Graph) RemoveModule(name string) {
	for imported := range g.importedBy[name] {
		delete(g.importerOf[imported], name)
	}
	for importer := range g.importerOf[name] {
		delete(g.importedBy[importer], name)
		if m := g.details[importer]; m != nil {
			delete(m, name)
		}
	}
	delete(g.importedBy, name)
	delete(g.importerOf, name)
	delete(g.details, name)
	delete(g.modules, name)
}

// FindModulesDirectlyImportedBy returns the modules that name imports,
// sorted lexicographically.
func (g *Graph) FindModulesDirectlyImportedBy(name string) []string {
	return sortedKeys(g.importedBy[name])
}

// FindModulesThatDirectlyImport returns the modules that import name,
// sorted lexicographically.
func (g *Graph) FindModulesThatDirectlyImport(name string) []string {
	return sortedKeys(g.importerOf[name])
}

// FindDescendants returns every module in the graph that is a strict
// descendant of name, sorted lexicographically.
func (g *Graph) FindDescendants(name string) []string {
	var out []string
	for m := range g.modules {
		if IsDescendant(m, name) {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// GetImportDetails returns the recorded details for an edge, ordered by line
// number. The result is empty if the edge is unknown or was added without
// metadata.
func (g *Graph) GetImportDetails(importer, imported string) []ImportDetail {
	src := g.details[importer][imported]
	if len(src) == 0 {
		return nil
	}
	out := make([]ImportDetail, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool { return out[i].LineNumber < out[j].LineNumber })
	return out
}

// Clone produces a fully independent deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for m := range g.modules {
		c.modules[m] = true
	}
	for importer, targets := range g.importedBy {
		for imported := range targets {
			c.AddImport(importer, imported)
		}
	}
	for importer, m := range g.details {
		for imported, ds := range m {
			if len(ds) == 0 {
				continue
			}
			cp := make([]ImportDetail, len(ds))
			copy(cp, ds)
			if c.details[importer] == nil {
				c.details[importer] = make(map[string][]ImportDetail)
			}
			c.details[importer][imported] = cp
		}
	}
	return c
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
