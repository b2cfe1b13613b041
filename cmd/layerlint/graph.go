package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"layerlint/internal/config"
)

var (
	graphRootPackages []string
	graphNoCache      bool
	graphJSONOutput   bool
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Dump the scanned import graph",
	Long: `Scans the repository's root packages and prints every internal import
edge, with the source line numbers each edge was seen on.`,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSliceVar(&graphRootPackages, "root-package", nil, "Root package to analyze (repeatable; default: config)")
	graphCmd.Flags().BoolVar(&graphNoCache, "no-cache", false, "Always rescan, bypassing the scan cache")
	graphCmd.Flags().BoolVar(&graphJSONOutput, "json", false, "Output as JSON")
}

func runGraph(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	rootPackages, err := resolveRootPackages(cfg, graphRootPackages)
	if err != nil {
		return err
	}

	useCache := cfg.Cache.Enabled && !graphNoCache
	g, err := buildGraph(root, cfg, rootPackages, useCache, logger)
	if err != nil {
		return err
	}

	snap := g.Snapshot()

	if graphJSONOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Printf("%d modules, %d imports\n\n", g.CountModules(), g.CountImports())
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IMPORTER\tIMPORTED\tLINES")
	for _, edge := range snap.Edges {
		lines := ""
		for i, d := range edge.Details {
			if i > 0 {
				lines += ","
			}
			lines += fmt.Sprintf("%d", d.LineNumber)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", edge.Importer, edge.Imported, lines)
	}
	return tw.Flush()
}
