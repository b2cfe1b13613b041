// Package scan builds an import graph from source files by matching
// import statements with per-language regex patterns.
package scan

import (
	"bufio"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"layerlint/internal/config"
	lerrors "layerlint/internal/errors"
	"layerlint/internal/graph"
	"layerlint/internal/paths"
)

// sourceFile is one scannable file discovered during the collect pass.
type sourceFile struct {
	absPath   string
	canonical string
	module    string
	isPackage bool
	pattern   *LanguagePattern
}

// Scanner discovers source files under a repo's root packages and scans
// them for import statements.
type Scanner struct {
	cfg    *config.ScanConfig
	logger *slog.Logger
}

// NewScanner creates a scanner with the given scan limits.
func NewScanner(cfg *config.ScanConfig, logger *slog.Logger) *Scanner {
	return &Scanner{cfg: cfg, logger: logger}
}

// ScanRoot walks every root package under repoRoot and returns the import
// graph between internal modules. Imports that do not resolve to a module
// inside one of the root packages are dropped.
func (s *Scanner) ScanRoot(repoRoot string, rootPackages []string) (*graph.Graph, error) {
	if len(rootPackages) == 0 {
		return nil, lerrors.New(lerrors.ScanFailed, "no root packages configured")
	}

	g := graph.New()
	var files []sourceFile

	// First pass: collect files and register every internal module, so the
	// second pass can resolve imports against the complete module set.
	for _, rootPkg := range rootPackages {
		dir := paths.JoinRepoPath(repoRoot, strings.ReplaceAll(rootPkg, ".", "/"))
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, lerrors.Newf(lerrors.ScanFailed,
				"root package %s not found under %s", rootPkg, repoRoot)
		}

		pkgFiles, err := s.collectFiles(repoRoot, dir, len(files))
		if err != nil {
			return nil, err
		}
		files = append(files, pkgFiles...)

		g.AddModule(rootPkg)
	}

	for _, f := range files {
		g.AddModule(f.module)
		// Intermediate packages may have no file of their own.
		for parent := parentModule(f.module); parent != ""; parent = parentModule(parent) {
			g.AddModule(parent)
		}
	}

	// Second pass: extract imports and resolve them to internal modules.
	for _, f := range files {
		if err := s.scanFile(g, f); err != nil {
			s.logger.Warn("Error scanning file", "file", f.canonical, "error", err)
		}
	}

	s.logger.Info("Import scan completed",
		"filesScanned", len(files),
		"modules", g.CountModules(),
		"imports", g.CountImports())

	return g, nil
}

func (s *Scanner) collectFiles(repoRoot, dir string, alreadyCollected int) ([]sourceFile, error) {
	var files []sourceFile
	count := alreadyCollected

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s.shouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.cfg.MaxFiles > 0 && count >= s.cfg.MaxFiles {
			s.logger.Warn("Reached max files limit during import scan", "maxFiles", s.cfg.MaxFiles)
			return filepath.SkipAll
		}

		pattern := detectLanguage(strings.ToLower(filepath.Ext(path)))
		if pattern == nil {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if s.cfg.MaxFileSizeBytes > 0 && info.Size() > int64(s.cfg.MaxFileSizeBytes) {
			s.logger.Debug("Skipping file: too large", "file", path, "size", info.Size())
			return nil
		}

		canonical, err := paths.Canonicalize(path, repoRoot)
		if err != nil {
			return err
		}
		module, isPackage := moduleForFile(canonical, pattern.Language)
		if module == "" {
			return nil
		}

		files = append(files, sourceFile{
			absPath:   path,
			canonical: canonical,
			module:    module,
			isPackage: isPackage,
			pattern:   pattern,
		})
		count++
		return nil
	})
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ScanFailed, "walking "+dir, err)
	}

	return files, nil
}

func (s *Scanner) shouldIgnore(dirName string) bool {
	for _, ignored := range s.cfg.Ignore {
		if dirName == ignored {
			return true
		}
	}
	return false
}

// scanFile reads one file and adds a detailed edge for every import that
// resolves to a module already present in the graph.
func (s *Scanner) scanFile(g *graph.Graph, f sourceFile) error {
	file, err := os.Open(f.absPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		for _, re := range f.pattern.Patterns {
			match := re.FindStringSubmatch(line)
			if len(match) < 2 {
				continue
			}
			raw := strings.TrimSpace(match[1])
			if raw == "" {
				continue
			}

			imported := resolveImport(g, f, raw)
			if imported == "" || imported == f.module {
				continue
			}

			g.AddDetailedImport(graph.ImportDetail{
				Importer:     f.module,
				Imported:     imported,
				LineNumber:   lineNum,
				LineContents: strings.TrimSpace(line),
			})
		}
	}

	return scanner.Err()
}

// resolveImport turns a raw import string into an internal dotted module
// name, or "" if the import is external.
func resolveImport(g *graph.Graph, f sourceFile, raw string) string {
	var candidate string

	switch f.pattern.Language {
	case LanguagePython:
		candidate = resolvePython(f, raw)
	case LanguageTypeScript:
		candidate = resolveRelativePath(f, raw)
	default:
		candidate = strings.ReplaceAll(raw, "/", ".")
	}

	// Imports often name a symbol inside a module; trim trailing segments
	// until we hit a known module.
	for candidate != "" {
		if g.Contains(candidate) {
			return candidate
		}
		candidate = parentModule(candidate)
	}
	return ""
}

// resolvePython handles absolute and relative (leading-dot) Python imports.
func resolvePython(f sourceFile, raw string) string {
	dots := 0
	for dots < len(raw) && raw[dots] == '.' {
		dots++
	}
	if dots == 0 {
		return raw
	}

	// One dot means the importer's own package; each extra dot goes one
	// package further up.
	base := f.module
	if !f.isPackage {
		base = parentModule(base)
	}
	for i := 1; i < dots; i++ {
		base = parentModule(base)
	}

	rest := raw[dots:]
	if rest == "" {
		return base
	}
	return graph.Join(base, rest)
}

// resolveRelativePath handles "./x" and "../x" style imports by resolving
// them against the importing file's package.
func resolveRelativePath(f sourceFile, raw string) string {
	if !strings.HasPrefix(raw, "./") && !strings.HasPrefix(raw, "../") {
		return strings.ReplaceAll(raw, "/", ".")
	}

	segments := strings.Split(f.module, ".")
	if !f.isPackage {
		segments = segments[:len(segments)-1]
	}

	for _, part := range strings.Split(raw, "/") {
		switch part {
		case ".", "":
		case "..":
			if len(segments) == 0 {
				return ""
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, part)
		}
	}

	// "./dir/index" names the dir package itself.
	if len(segments) > 0 && segments[len(segments)-1] == "index" {
		segments = segments[:len(segments)-1]
	}
	return strings.Join(segments, ".")
}

// moduleForFile maps a canonical repo-relative path to a dotted module
// name. The second return reports whether the file represents a package
// rather than a leaf module.
func moduleForFile(canonical, language string) (string, bool) {
	ext := filepath.Ext(canonical)
	segments := strings.Split(strings.TrimSuffix(canonical, ext), "/")
	if len(segments) == 0 {
		return "", false
	}

	switch language {
	case LanguagePython:
		if segments[len(segments)-1] == "__init__" {
			return strings.Join(segments[:len(segments)-1], "."), true
		}
		return strings.Join(segments, "."), false
	case LanguageGo:
		// Go modules are directory-scoped.
		if len(segments) < 2 {
			return "", false
		}
		return strings.Join(segments[:len(segments)-1], "."), true
	case LanguageTypeScript:
		if segments[len(segments)-1] == "index" {
			return strings.Join(segments[:len(segments)-1], "."), true
		}
		return strings.Join(segments, "."), false
	}
	return "", false
}

func parentModule(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}
