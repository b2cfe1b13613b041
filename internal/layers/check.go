package layers

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"layerlint/internal/graph"
	"layerlint/internal/slogutil"
)

// Options configures a contract check.
type Options struct {
	// RootPackages are the project's top-level packages; containers must
	// live under one of them.
	RootPackages []string

	// Workers bounds how many layer pairs are checked concurrently.
	// 0 means one worker per CPU, capped at the number of pairs.
	Workers int

	Logger *slog.Logger
}

// Check runs one layered-architecture contract against the graph. The
// caller's graph is never mutated: analysis happens on deep copies. A
// configuration error (missing required layer, invalid container) is
// returned as an error; violations are reported in the Report instead.
func Check(g *graph.Graph, c Contract, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	start := time.Now()

	work := g.Clone()
	warnings := popIgnoredImports(work, c.IgnoreImports)

	if len(c.Containers) > 0 {
		if err := validateContainers(work, c, opts.RootPackages); err != nil {
			return nil, err
		}
	} else {
		if err := validateContainerlessLayers(work, c); err != nil {
			return nil, err
		}
	}

	pairs := enumeratePairs(work, c)
	logger.Debug("Beginning layer analysis",
		"contract", c.Name, "pairs", len(pairs), "modules", work.CountModules())

	results := make([]LayerChainData, len(pairs))
	errs := make([]error, len(pairs))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}
	if workers < 1 {
		workers = 1
	}

	// Each worker clones the graph per pair, so no synchronization is needed
	// beyond the job channel; results land at their pair's index to keep the
	// report order independent of completion order.
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				pairStart := time.Now()
				results[i], errs[i] = buildLayerChainData(work, pairs[i], c)
				logger.Debug("Layer pair checked",
					"higher", pairs[i].Higher,
					"lower", pairs[i].Lower,
					"chains", len(results[i].Chains),
					"elapsed", time.Since(pairStart))
			}
		}()
	}
	for i := range pairs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	report := &Report{
		RunID:        uuid.NewString(),
		Contract:     c.Name,
		Kept:         true,
		Warnings:     warnings,
		PairsChecked: len(pairs),
	}
	for _, data := range results {
		if len(data.Chains) == 0 {
			continue
		}
		report.Kept = false
		report.InvalidChains = append(report.InvalidChains, data)
	}
	report.DurationMs = time.Since(start).Milliseconds()

	logger.Info("Layer analysis finished",
		"contract", c.Name,
		"kept", report.Kept,
		"pairs", len(pairs),
		"elapsed", time.Since(start))

	return report, nil
}
