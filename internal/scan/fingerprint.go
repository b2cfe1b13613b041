package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"layerlint/internal/config"
	"layerlint/internal/paths"
)

// Fingerprint hashes the scannable tree under the root packages: canonical
// path, size and mtime of every source file that a scan would visit. Two
// equal fingerprints mean a cached graph is still valid.
func Fingerprint(repoRoot string, rootPackages []string, cfg *config.ScanConfig) (string, error) {
	type entry struct {
		path string
		line string
	}
	var entries []entry

	ignore := make(map[string]bool, len(cfg.Ignore))
	for _, dir := range cfg.Ignore {
		ignore[dir] = true
	}

	for _, rootPkg := range rootPackages {
		dir := paths.JoinRepoPath(repoRoot, strings.ReplaceAll(rootPkg, ".", "/"))
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if ignore[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if detectLanguage(strings.ToLower(filepath.Ext(path))) == nil {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}
			canonical, err := paths.Canonicalize(path, repoRoot)
			if err != nil {
				return err
			}
			entries = append(entries, entry{
				path: canonical,
				line: fmt.Sprintf("%s|%d|%d\n", canonical, info.Size(), info.ModTime().UnixNano()),
			})
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	h := sha256.New()
	fmt.Fprintf(h, "roots:%s\n", strings.Join(rootPackages, ","))
	for _, e := range entries {
		h.Write([]byte(e.line))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
