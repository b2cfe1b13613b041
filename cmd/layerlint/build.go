package main

import (
	"log/slog"
	"path/filepath"

	"layerlint/internal/config"
	lerrors "layerlint/internal/errors"
	"layerlint/internal/graph"
	"layerlint/internal/scan"
	"layerlint/internal/storage"
)

// buildGraph returns the repo's import graph, scanning the tree or reusing
// a cached scan when the tree fingerprint matches. Cache trouble is never
// fatal: it degrades to a fresh scan.
func buildGraph(root string, cfg *config.Config, rootPackages []string, useCache bool, logger *slog.Logger) (*graph.Graph, error) {
	scanner := scan.NewScanner(&cfg.Scan, logger)

	if !useCache {
		return scanner.ScanRoot(root, rootPackages)
	}

	fingerprint, err := scan.Fingerprint(root, rootPackages, &cfg.Scan)
	if err != nil {
		logger.Warn("Could not fingerprint source tree, skipping cache", "error", err)
		return scanner.ScanRoot(root, rootPackages)
	}

	db, err := storage.Open(root, logger)
	if err != nil {
		logger.Warn("Scan cache unavailable", "error", err)
		return scanner.ScanRoot(root, rootPackages)
	}
	defer func() { _ = db.Close() }()

	cache := storage.NewScanCache(db)
	if g, ok, err := cache.Get(fingerprint); err == nil && ok {
		logger.Debug("Using cached import graph", "fingerprint", fingerprint)
		return g, nil
	} else if err != nil {
		logger.Warn("Scan cache lookup failed", "error", err)
	}

	g, err := scanner.ScanRoot(root, rootPackages)
	if err != nil {
		return nil, err
	}
	if err := cache.Put(fingerprint, g); err != nil {
		logger.Warn("Could not store scan in cache", "error", err)
	}
	return g, nil
}

// resolveContractPath returns the contract file to load, preferring the
// explicit flag over the configured default.
func resolveContractPath(root string, cfg *config.Config, flagValue string) string {
	path := flagValue
	if path == "" {
		path = cfg.ContractFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return path
}

// resolveRootPackages returns the root packages to analyze, preferring the
// explicit flag over the config file.
func resolveRootPackages(cfg *config.Config, flagValue []string) ([]string, error) {
	pkgs := flagValue
	if len(pkgs) == 0 {
		pkgs = cfg.RootPackages
	}
	if len(pkgs) == 0 {
		return nil, lerrors.New(lerrors.ConfigInvalid,
			"no root packages: set rootPackages in .layerlint/config.json or pass --root-package")
	}
	return pkgs, nil
}
