package layers

import (
	"fmt"
	"strings"

	lerrors "layerlint/internal/errors"
	"layerlint/internal/graph"
)

// DirectImport names one importer/imported pair to ignore during analysis.
type DirectImport struct {
	Importer string
	Imported string
}

func (d DirectImport) String() string {
	return fmt.Sprintf("%s -> %s", d.Importer, d.Imported)
}

// ParseDirectImport parses an "importer -> imported" expression.
func ParseDirectImport(expr string) (DirectImport, error) {
	parts := strings.Split(expr, "->")
	if len(parts) != 2 {
		return DirectImport{}, lerrors.Newf(lerrors.ConfigInvalid,
			"Could not parse direct import '%s': expected format 'importer -> imported'.", expr)
	}
	importer := strings.TrimSpace(parts[0])
	imported := strings.TrimSpace(parts[1])
	if importer == "" || imported == "" {
		return DirectImport{}, lerrors.Newf(lerrors.ConfigInvalid,
			"Could not parse direct import '%s': expected format 'importer -> imported'.", expr)
	}
	return DirectImport{Importer: importer, Imported: imported}, nil
}

// popIgnoredImports removes each listed import from the working graph before
// analysis begins. Imports that are not present produce a warning rather
// than an error, so a stale ignore list never hides the rest of the check.
func popIgnoredImports(work *graph.Graph, ignores []DirectImport) []string {
	var warnings []string
	for _, ignore := range ignores {
		if !work.HasImport(ignore.Importer, ignore.Imported) {
			warnings = append(warnings,
				fmt.Sprintf("Ignored import %s not present in the graph.", ignore))
			continue
		}
		work.RemoveImport(ignore.Importer, ignore.Imported)
	}
	return warnings
}
