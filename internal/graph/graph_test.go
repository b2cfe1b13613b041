package graph

import (
	"reflect"
	"testing"
)

func TestAddAndRemoveImports(t *testing.T) {
	g := New()
	g.AddDetailedImport(ImportDetail{Importer: "app.views", Imported: "app.models", LineNumber: 3, LineContents: "from app import models"})
	g.AddDetailedImport(ImportDetail{Importer: "app.views", Imported: "app.models", LineNumber: 10, LineContents: "from app.models import User"})
	g.AddImport("app.models", "app.db")

	if !g.HasImport("app.views", "app.models") {
		t.Fatal("expected edge app.views -> app.models")
	}
	if g.CountImports() != 2 {
		t.Errorf("CountImports = %d, want 2", g.CountImports())
	}

	details := g.GetImportDetails("app.views", "app.models")
	if len(details) != 2 {
		t.Fatalf("GetImportDetails returned %d details, want 2", len(details))
	}
	if details[0].LineNumber != 3 || details[1].LineNumber != 10 {
		t.Errorf("details not ordered by line number: %+v", details)
	}

	// Edge added without metadata has no details but still exists.
	if got := g.GetImportDetails("app.models", "app.db"); len(got) != 0 {
		t.Errorf("expected no details for metadata-free edge, got %+v", got)
	}

	g.RemoveImport("app.views", "app.models")
	if g.HasImport("app.views", "app.models") {
		t.Error("edge should be gone after RemoveImport")
	}
	if !g.Contains("app.views") || !g.Contains("app.models") {
		t.Error("RemoveImport must not remove modules")
	}
}

func TestRemoveModule(t *testing.T) {
	g := New()
	g.AddImport("a", "b")
	g.AddImport("b", "c")
	g.AddImport("c", "a")

	g.RemoveModule("b")

	if g.Contains("b") {
		t.Error("module b should be gone")
	}
	if got := g.FindModulesDirectlyImportedBy("a"); len(got) != 0 {
		t.Errorf("a should import nothing after removing b, got %v", got)
	}
	if got := g.FindModulesThatDirectlyImport("c"); len(got) != 0 {
		t.Errorf("c should have no importers after removing b, got %v", got)
	}
	if !g.HasImport("c", "a") {
		t.Error("unrelated edge c -> a should survive")
	}
}

func TestFindDescendants(t *testing.T) {
	g := New()
	for _, m := range []string{"pkg", "pkg.a", "pkg.a.x", "pkg.b", "pkgother", "unrelated"} {
		g.AddModule(m)
	}

	got := g.FindDescendants("pkg")
	want := []string{"pkg.a", "pkg.a.x", "pkg.b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindDescendants(pkg) = %v, want %v", got, want)
	}

	if got := g.FindDescendants("pkg.a.x"); got != nil {
		t.Errorf("leaf should have no descendants, got %v", got)
	}
}

func TestFindShortestChain(t *testing.T) {
	g := New()
	g.AddImport("low", "mid")
	g.AddImport("mid", "high")
	g.AddImport("low", "other")

	got := g.FindShortestChain("low", "high")
	want := []string{"low", "mid", "high"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindShortestChain = %v, want %v", got, want)
	}

	if got := g.FindShortestChain("high", "low"); got != nil {
		t.Errorf("no reverse path expected, got %v", got)
	}
	if got := g.FindShortestChain("low", "missing"); got != nil {
		t.Errorf("missing endpoint should yield nil, got %v", got)
	}
}

func TestFindShortestChainDeterministic(t *testing.T) {
	// Two equal-length paths; the lexicographically smaller neighbor wins.
	g := New()
	g.AddImport("start", "bbb")
	g.AddImport("start", "aaa")
	g.AddImport("aaa", "end")
	g.AddImport("bbb", "end")

	want := []string{"start", "aaa", "end"}
	for i := 0; i < 20; i++ {
		if got := g.FindShortestChain("start", "end"); !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: FindShortestChain = %v, want %v", i, got, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	g.AddDetailedImport(ImportDetail{Importer: "a", Imported: "b", LineNumber: 1})

	c := g.Clone()
	c.RemoveModule("b")
	c.AddImport("a", "z")

	if !g.Contains("b") || !g.HasImport("a", "b") {
		t.Error("mutating the clone must not affect the original")
	}
	if g.Contains("z") {
		t.Error("module added to clone leaked into original")
	}
	if len(g.GetImportDetails("a", "b")) != 1 {
		t.Error("original details lost after clone mutation")
	}
}

func TestSquashModule(t *testing.T) {
	g := New()
	g.AddImport("blue.alpha", "green.beta")
	g.AddImport("yellow", "blue.alpha")
	g.AddImport("blue", "blue.alpha") // internal edge, must not self-loop
	g.AddModule("green")

	g.SquashModule("blue")

	if g.Contains("blue.alpha") {
		t.Error("descendant should be removed by squash")
	}
	if !g.HasImport("blue", "green.beta") {
		t.Error("outbound boundary edge should be re-pointed at blue")
	}
	if !g.HasImport("yellow", "blue") {
		t.Error("inbound boundary edge should be re-pointed at blue")
	}
	if g.HasImport("blue", "blue") {
		t.Error("squash must not create a self edge")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := New()
	g.AddDetailedImport(ImportDetail{Importer: "a.x", Imported: "b.y", LineNumber: 7, LineContents: "import b.y"})
	g.AddImport("b.y", "c")
	g.AddModule("lonely")

	rebuilt := FromSnapshot(g.Snapshot())

	if !reflect.DeepEqual(rebuilt.Modules(), g.Modules()) {
		t.Errorf("modules differ: %v vs %v", rebuilt.Modules(), g.Modules())
	}
	if !rebuilt.HasImport("a.x", "b.y") || !rebuilt.HasImport("b.y", "c") {
		t.Error("edges lost in round trip")
	}
	if !reflect.DeepEqual(rebuilt.GetImportDetails("a.x", "b.y"), g.GetImportDetails("a.x", "b.y")) {
		t.Error("details lost in round trip")
	}
}

func TestModuleHelpers(t *testing.T) {
	if Root("a.b.c") != "a" || Root("a") != "a" {
		t.Error("Root misbehaves")
	}
	if !IsDescendant("a.b", "a") || IsDescendant("a", "a") || IsDescendant("ab.c", "a") {
		t.Error("IsDescendant misbehaves")
	}
	if !IsSameOrDescendant("a", "a") || !IsSameOrDescendant("a.b.c", "a") {
		t.Error("IsSameOrDescendant misbehaves")
	}
	if Join("", "x") != "x" || Join("a", "x") != "a.x" {
		t.Error("Join misbehaves")
	}
}
