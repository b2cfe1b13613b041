package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"layerlint/internal/config"
	"layerlint/internal/contract"
	lerrors "layerlint/internal/errors"
	"layerlint/internal/layers"
	"layerlint/internal/render"
)

var (
	checkContractFile string
	checkRootPackages []string
	checkWorkers      int
	checkNoCache      bool
	checkJSONOutput   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the import graph against the declared layer contracts",
	Long: `Scans the repository's root packages, builds the import graph and
verifies every contract in the contract file. Exits non-zero if any
contract is broken or cannot be checked.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkContractFile, "contracts", "", "Contract file (default: contractFile from config)")
	checkCmd.Flags().StringSliceVar(&checkRootPackages, "root-package", nil, "Root package to analyze (repeatable; default: config)")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "Concurrent layer-pair checks (0 = one per CPU)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "Always rescan, bypassing the scan cache")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	rootPackages, err := resolveRootPackages(cfg, checkRootPackages)
	if err != nil {
		return err
	}

	contracts, err := contract.Load(resolveContractPath(root, cfg, checkContractFile))
	if err != nil {
		return err
	}

	useCache := cfg.Cache.Enabled && !checkNoCache
	g, err := buildGraph(root, cfg, rootPackages, useCache, logger)
	if err != nil {
		return err
	}

	workers := checkWorkers
	if workers == 0 {
		workers = cfg.Workers
	}

	var reports []*layers.Report
	brokenOrFailed := 0
	for _, c := range contracts {
		report, err := layers.Check(g, c, layers.Options{
			RootPackages: rootPackages,
			Workers:      workers,
			Logger:       logger,
		})
		if err != nil {
			// A misconfigured contract must not block checking the rest.
			if lerrors.IsConfiguration(err) {
				fmt.Fprintf(os.Stderr, "%s ERROR: %v\n", c.Name, err)
				brokenOrFailed++
				continue
			}
			return err
		}
		reports = append(reports, report)
		if !report.Kept {
			brokenOrFailed++
		}
	}

	if checkJSONOutput {
		if err := render.WriteJSON(os.Stdout, reports); err != nil {
			return err
		}
	} else {
		for _, report := range reports {
			render.WriteReport(os.Stdout, report)
		}
		render.WriteSummary(os.Stdout, reports)
	}

	if brokenOrFailed > 0 {
		return lerrors.Newf(lerrors.ContractBroken, "%d of %d contracts broken", brokenOrFailed, len(contracts))
	}
	return nil
}
