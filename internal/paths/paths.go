package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ToolDirName is the directory under the repo root where layerlint keeps
// its config and cache.
const ToolDirName = ".layerlint"

// ToolDir returns the layerlint state directory for a repo root.
func ToolDir(repoRoot string) string {
	return filepath.Join(repoRoot, ToolDirName)
}

// Canonicalize converts an absolute path to a repo-relative canonical path:
// symlinks resolved, relative to the repo root, forward slashes.
func Canonicalize(absolutePath string, repoRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	repoRootResolved, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			repoRootResolved = repoRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(repoRootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// IsWithinRepo checks if a path is within the repository root.
func IsWithinRepo(path string, repoRoot string) bool {
	canonical, err := Canonicalize(path, repoRoot)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(canonical, "..")
}

// Normalize converts backslashes to forward slashes.
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// JoinRepoPath joins a repo root with a canonical (slash-separated) path.
func JoinRepoPath(repoRoot string, canonicalPath string) string {
	normalized := strings.ReplaceAll(canonicalPath, "\\", "/")
	parts := strings.Split(normalized, "/")
	return filepath.Join(append([]string{repoRoot}, parts...)...)
}
