package layers

import (
	"reflect"
	"testing"

	"layerlint/internal/graph"
)

// detail is a shorthand for wiring a detailed import into a test graph.
func detail(g *graph.Graph, importer, imported string, line int) {
	g.AddDetailedImport(graph.ImportDetail{
		Importer:   importer,
		Imported:   imported,
		LineNumber: line,
	})
}

func TestCheckDirectViolation(t *testing.T) {
	g := graph.New()
	detail(g, "low", "high", 3)

	report, err := Check(g, contractOf(nil, "high", "(mid)", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if report.Kept {
		t.Error("contract should be broken")
	}
	if len(report.InvalidChains) != 1 {
		t.Fatalf("got %d LayerChainData, want 1", len(report.InvalidChains))
	}

	data := report.InvalidChains[0]
	if data.HigherLayer != "high" || data.LowerLayer != "low" {
		t.Errorf("pair = (%s, %s), want (high, low)", data.HigherLayer, data.LowerLayer)
	}

	want := []DetailedChain{{
		Chain: []Link{{Importer: "low", Imported: "high", LineNumbers: []int{3}}},
	}}
	if !reflect.DeepEqual(data.Chains, want) {
		t.Errorf("chains = %+v, want %+v", data.Chains, want)
	}
}

func TestCheckIndirectViolation(t *testing.T) {
	g := graph.New()
	detail(g, "low", "mid", 2)
	detail(g, "mid", "high", 9)

	report, err := Check(g, contractOf(nil, "high", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if report.Kept {
		t.Error("contract should be broken")
	}
	if len(report.InvalidChains) != 1 {
		t.Fatalf("got %d LayerChainData, want 1", len(report.InvalidChains))
	}

	want := []DetailedChain{{
		Chain: []Link{
			{Importer: "low", Imported: "mid", LineNumbers: []int{2}},
			{Importer: "mid", Imported: "high", LineNumbers: []int{9}},
		},
	}}
	if !reflect.DeepEqual(report.InvalidChains[0].Chains, want) {
		t.Errorf("chains = %+v, want %+v", report.InvalidChains[0].Chains, want)
	}
}

func TestCheckNoViolation(t *testing.T) {
	g := graph.New()
	detail(g, "high", "low", 4) // allowed direction
	g.AddModule("unrelated")

	report, err := Check(g, contractOf(nil, "high", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !report.Kept {
		t.Error("contract should be kept")
	}
	if len(report.InvalidChains) != 0 {
		t.Errorf("expected no invalid chains, got %+v", report.InvalidChains)
	}
	if report.PairsChecked != 1 {
		t.Errorf("PairsChecked = %d, want 1", report.PairsChecked)
	}
}

func TestCheckCollapsesParallelFirstHops(t *testing.T) {
	// low.a1 and low.a2 both reach high.b through the same middle module.
	g := graph.New()
	g.AddModule("low")
	g.AddModule("high")
	detail(g, "low.a1", "mid", 1)
	detail(g, "low.a2", "mid", 2)
	detail(g, "mid", "high.b", 5)

	report, err := Check(g, contractOf(nil, "high", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if len(report.InvalidChains) != 1 {
		t.Fatalf("got %d LayerChainData, want 1", len(report.InvalidChains))
	}
	chains := report.InvalidChains[0].Chains
	if len(chains) != 1 {
		t.Fatalf("parallel first hops should collapse into one chain, got %d: %+v", len(chains), chains)
	}

	chain := chains[0]
	wantChain := []Link{
		{Importer: "low.a1", Imported: "mid", LineNumbers: []int{1}},
		{Importer: "mid", Imported: "high.b", LineNumbers: []int{5}},
	}
	if !reflect.DeepEqual(chain.Chain, wantChain) {
		t.Errorf("chain = %+v, want %+v", chain.Chain, wantChain)
	}
	wantExtra := []Link{{Importer: "low.a2", Imported: "mid", LineNumbers: []int{2}}}
	if !reflect.DeepEqual(chain.ExtraFirsts, wantExtra) {
		t.Errorf("extraFirsts = %+v, want %+v", chain.ExtraFirsts, wantExtra)
	}
	if len(chain.ExtraLasts) != 0 {
		t.Errorf("extraLasts should be empty, got %+v", chain.ExtraLasts)
	}
}

func TestCheckCollapsesParallelLastHops(t *testing.T) {
	g := graph.New()
	g.AddModule("low")
	g.AddModule("high")
	detail(g, "low.a", "mid", 1)
	detail(g, "mid", "high.b1", 5)
	detail(g, "mid", "high.b2", 6)

	report, err := Check(g, contractOf(nil, "high", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	chains := report.InvalidChains[0].Chains
	if len(chains) != 1 {
		t.Fatalf("parallel last hops should collapse into one chain, got %d", len(chains))
	}
	wantExtra := []Link{{Importer: "mid", Imported: "high.b2", LineNumbers: []int{6}}}
	if !reflect.DeepEqual(chains[0].ExtraLasts, wantExtra) {
		t.Errorf("extraLasts = %+v, want %+v", chains[0].ExtraLasts, wantExtra)
	}
}

func TestCheckDirectEdgesGroupedByPair(t *testing.T) {
	// Two import statements for the same module pair fold into one chain
	// with both line numbers; a second pair gets its own chain.
	g := graph.New()
	detail(g, "low", "high", 3)
	detail(g, "low", "high", 10)
	g.AddModule("low.sub")
	detail(g, "low.sub", "high", 7)

	report, err := Check(g, contractOf(nil, "high", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	chains := report.InvalidChains[0].Chains
	if len(chains) != 2 {
		t.Fatalf("got %d chains, want 2", len(chains))
	}
	if !reflect.DeepEqual(chains[0].Chain[0].LineNumbers, []int{3, 10}) {
		t.Errorf("line numbers not grouped: %+v", chains[0].Chain[0])
	}
	if chains[1].Chain[0].Importer != "low.sub" {
		t.Errorf("second chain importer = %s, want low.sub", chains[1].Chain[0].Importer)
	}
}

func TestCheckPathsThroughOtherLayersNotReported(t *testing.T) {
	// low -> mid -> high where mid is itself a layer: the (high, low) pair
	// must not report the path, because mid's subtree is pruned. The two
	// single-hop violations are reported under their own pairs instead.
	g := graph.New()
	detail(g, "low", "mid", 1)
	detail(g, "mid", "high", 2)

	report, err := Check(g, contractOf(nil, "high", "mid", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if len(report.InvalidChains) != 2 {
		t.Fatalf("got %d LayerChainData, want 2: %+v", len(report.InvalidChains), report.InvalidChains)
	}
	if report.InvalidChains[0].HigherLayer != "high" || report.InvalidChains[0].LowerLayer != "mid" {
		t.Errorf("first pair = %+v, want (high, mid)", report.InvalidChains[0])
	}
	if report.InvalidChains[1].HigherLayer != "mid" || report.InvalidChains[1].LowerLayer != "low" {
		t.Errorf("second pair = %+v, want (mid, low)", report.InvalidChains[1])
	}
}

func TestCheckIdempotent(t *testing.T) {
	g := graph.New()
	g.AddModule("low")
	g.AddModule("high")
	detail(g, "low.a1", "mid", 1)
	detail(g, "low.a2", "mid", 2)
	detail(g, "mid", "high.b", 5)
	detail(g, "low", "high", 8)

	c := contractOf(nil, "high", "low")
	first, err := Check(g, c, Options{Workers: 1})
	if err != nil {
		t.Fatalf("first Check failed: %v", err)
	}
	second, err := Check(g, c, Options{Workers: 1})
	if err != nil {
		t.Fatalf("second Check failed: %v", err)
	}

	if !reflect.DeepEqual(first.InvalidChains, second.InvalidChains) {
		t.Errorf("detection is not idempotent:\nfirst:  %+v\nsecond: %+v",
			first.InvalidChains, second.InvalidChains)
	}
	if first.Kept != second.Kept {
		t.Error("kept flag changed between runs")
	}
}

func TestCheckParallelWorkersMatchSequential(t *testing.T) {
	g := graph.New()
	for _, m := range []string{"a", "b", "c", "d"} {
		g.AddModule(m)
	}
	detail(g, "d", "a", 1)
	detail(g, "c", "b", 2)
	detail(g, "d", "x", 3)
	detail(g, "x", "b", 4)

	c := contractOf(nil, "a", "b", "c", "d")
	sequential, err := Check(g, c, Options{Workers: 1})
	if err != nil {
		t.Fatalf("sequential Check failed: %v", err)
	}
	parallel, err := Check(g, c, Options{Workers: 4})
	if err != nil {
		t.Fatalf("parallel Check failed: %v", err)
	}

	if !reflect.DeepEqual(sequential.InvalidChains, parallel.InvalidChains) {
		t.Errorf("parallel result differs from sequential:\nseq: %+v\npar: %+v",
			sequential.InvalidChains, parallel.InvalidChains)
	}
}

func TestCheckDoesNotMutateCallerGraph(t *testing.T) {
	g := graph.New()
	detail(g, "low", "high", 3)
	detail(g, "low", "mid", 4)
	before := g.Snapshot()

	if _, err := Check(g, contractOf(nil, "high", "low"), Options{Workers: 1}); err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("Check mutated the caller's graph")
	}
}

func TestCheckIgnoredImportKeepsContract(t *testing.T) {
	g := graph.New()
	detail(g, "low", "high", 3)

	c := contractOf(nil, "high", "low")
	c.IgnoreImports = []DirectImport{{Importer: "low", Imported: "high"}}

	report, err := Check(g, c, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !report.Kept {
		t.Error("ignored import should keep the contract")
	}
}

func TestCheckUnknownIgnoredImportWarns(t *testing.T) {
	g := graph.New()
	g.AddModule("high")
	g.AddModule("low")

	c := contractOf(nil, "high", "low")
	c.IgnoreImports = []DirectImport{{Importer: "low", Imported: "nowhere"}}

	report, err := Check(g, c, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(report.Warnings))
	}
	if report.Warnings[0] != "Ignored import low -> nowhere not present in the graph." {
		t.Errorf("unexpected warning: %q", report.Warnings[0])
	}
}

func TestCheckEdgeWithoutDetailsGetsPlaceholder(t *testing.T) {
	g := graph.New()
	g.AddImport("low", "high") // no metadata recorded

	report, err := Check(g, contractOf(nil, "high", "low"), Options{Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	chains := report.InvalidChains[0].Chains
	if len(chains) != 1 {
		t.Fatalf("got %d chains, want 1", len(chains))
	}
	if !reflect.DeepEqual(chains[0].Chain[0].LineNumbers, []int{0}) {
		t.Errorf("placeholder line numbers = %v, want [0]", chains[0].Chain[0].LineNumbers)
	}
}

func TestCheckContainers(t *testing.T) {
	g := graph.New()
	for _, m := range []string{"p.one.high", "p.one.low", "p.two.high", "p.two.low"} {
		g.AddModule(m)
	}
	detail(g, "p.one.low", "p.one.high", 12)
	// p.two is clean; p.one.low importing p.two.high is not a layer
	// violation within either container.
	detail(g, "p.one.low", "p.two.high", 20)

	c := contractOf([]string{"p.one", "p.two"}, "high", "low")
	report, err := Check(g, c, Options{RootPackages: []string{"p"}, Workers: 1})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if len(report.InvalidChains) != 1 {
		t.Fatalf("got %d LayerChainData, want 1: %+v", len(report.InvalidChains), report.InvalidChains)
	}
	data := report.InvalidChains[0]
	if data.HigherLayer != "p.one.high" || data.LowerLayer != "p.one.low" {
		t.Errorf("pair = (%s, %s), want (p.one.high, p.one.low)", data.HigherLayer, data.LowerLayer)
	}
}
