// Package layers checks a layered-architecture contract against an import
// graph: modules are grouped into named, ordered layers and higher layers may
// depend on lower layers but never the reverse.
package layers

import "strings"

// Layer is one named tier in the hierarchy. Layers are declared from highest
// to lowest. An optional layer may be absent from the graph without error.
type Layer struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
}

// ParseLayer parses a layer token. A token wrapped in parentheses marks the
// layer optional: "(migrations)" -> Layer{Name: "migrations", Optional: true}.
// Name legality is checked later against the graph, not here.
func ParseLayer(token string) Layer {
	if strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")") {
		return Layer{Name: token[1 : len(token)-1], Optional: true}
	}
	return Layer{Name: token}
}

// ParseLayers parses an ordered list of layer tokens.
func ParseLayers(tokens []string) []Layer {
	out := make([]Layer, len(tokens))
	for i, tok := range tokens {
		out[i] = ParseLayer(tok)
	}
	return out
}

// Contract is one layered-architecture contract to check. Containers, when
// present, act as parent-package prefixes under which the layer pattern
// repeats; without containers the layers are top-level modules.
type Contract struct {
	Name          string
	Layers        []Layer
	Containers    []string
	IgnoreImports []DirectImport
}
