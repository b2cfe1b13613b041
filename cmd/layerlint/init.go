package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"layerlint/internal/config"
	"layerlint/internal/contract"
)

var initRootPackages []string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config and starter contract file",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringSliceVar(&initRootPackages, "root-package", nil, "Root package to analyze (repeatable)")
}

const starterContracts = `version = 1

[[contract]]
name = "layer ordering"
type = "layers"
layers = [
    # Highest layer first. Wrap a name in parentheses to mark it optional.
    # "myapp.api",
    # "myapp.domain",
    # "myapp.storage",
]
# containers = ["myapp"]
`

func runInit(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.RootPackages = initRootPackages
	if err := cfg.Save(root); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", filepath.Join(".layerlint", "config.json"))

	contractPath := filepath.Join(root, contract.DefaultFile)
	if _, err := os.Stat(contractPath); err == nil {
		fmt.Printf("%s already exists, leaving it untouched\n", contract.DefaultFile)
		return nil
	}
	if err := os.WriteFile(contractPath, []byte(starterContracts), 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", contract.DefaultFile)
	return nil
}
