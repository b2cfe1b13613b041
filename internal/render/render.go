// Package render formats contract check reports for terminal and JSON
// output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"layerlint/internal/layers"
)

// WriteReport writes one contract's outcome in the human-readable format:
// a status line, any warnings, and a section per broken layer pair.
func WriteReport(w io.Writer, report *layers.Report) {
	status := "KEPT"
	if !report.Kept {
		status = "BROKEN"
	}
	fmt.Fprintf(w, "%s %s\n", report.Contract, status)

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	if report.Kept {
		return
	}

	fmt.Fprintln(w)
	for _, chainsData := range report.InvalidChains {
		if len(chainsData.Chains) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s is not allowed to import %s:\n", chainsData.LowerLayer, chainsData.HigherLayer)
		fmt.Fprintln(w)

		for _, chain := range chainsData.Chains {
			writeChain(w, chain)
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w)
	}
}

// WriteSummary writes the closing line after all contracts have been
// reported.
func WriteSummary(w io.Writer, reports []*layers.Report) {
	kept := 0
	for _, r := range reports {
		if r.Kept {
			kept++
		}
	}
	fmt.Fprintf(w, "Contracts: %d kept, %d broken.\n", kept, len(reports)-kept)
}

// WriteJSON writes all reports as a JSON array.
func WriteJSON(w io.Writer, reports []*layers.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func writeChain(w io.Writer, chain layers.DetailedChain) {
	var lines []string

	first := chain.Chain[0]
	if len(chain.ExtraFirsts) > 0 {
		// All first hops share the imported module; list the importers,
		// then spell out the full edge once on the final one.
		sources := append([]layers.Link{first}, chain.ExtraFirsts[:len(chain.ExtraFirsts)-1]...)
		for position, source := range sources {
			prefix := ""
			if position > 0 {
				prefix = "& "
			}
			lines = append(lines, fmt.Sprintf("%s%s (%s)", prefix, source.Importer, lineNumbers(source)))
		}
		last := chain.ExtraFirsts[len(chain.ExtraFirsts)-1]
		lines = append(lines, fmt.Sprintf("& %s -> %s (%s)", last.Importer, last.Imported, lineNumbers(last)))
	} else {
		lines = append(lines, fmt.Sprintf("%s -> %s (%s)", first.Importer, first.Imported, lineNumbers(first)))
	}

	for _, link := range middleLinks(chain.Chain) {
		lines = append(lines, fmt.Sprintf("%s -> %s (%s)", link.Importer, link.Imported, lineNumbers(link)))
	}

	if len(chain.Chain) > 1 {
		last := chain.Chain[len(chain.Chain)-1]
		lines = append(lines, fmt.Sprintf("%s -> %s (%s)", last.Importer, last.Imported, lineNumbers(last)))

		indent := strings.Repeat(" ", len(last.Importer)+4)
		for _, destination := range chain.ExtraLasts {
			lines = append(lines, fmt.Sprintf("%s& %s (%s)", indent, destination.Imported, lineNumbers(destination)))
		}
	}

	for position, line := range lines {
		if position == 0 {
			fmt.Fprintf(w, "- %s\n", line)
		} else {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func middleLinks(chain []layers.Link) []layers.Link {
	if len(chain) < 3 {
		return nil
	}
	return chain[1 : len(chain)-1]
}

// lineNumbers formats a link's line numbers as "l.3, l.10"; an unknown
// line renders as "l.?".
func lineNumbers(link layers.Link) string {
	parts := make([]string, len(link.LineNumbers))
	for i, n := range link.LineNumbers {
		if n == 0 {
			parts[i] = "l.?"
		} else {
			parts[i] = fmt.Sprintf("l.%d", n)
		}
	}
	return strings.Join(parts, ", ")
}
