package scan

import "regexp"

// Supported language identifiers.
const (
	LanguagePython     = "python"
	LanguageGo         = "go"
	LanguageTypeScript = "typescript"
)

// LanguagePattern defines how imports are recognized for one language.
type LanguagePattern struct {
	// Extensions lists file extensions for this language.
	Extensions []string

	// Patterns contains regex patterns whose first capture group is the
	// raw import target.
	Patterns []*regexp.Regexp

	// Language name.
	Language string
}

var builtinPatterns = map[string]*LanguagePattern{
	LanguagePython: {
		Extensions: []string{".py", ".pyx"},
		Language:   LanguagePython,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*from\s+([^\s]+)\s+import`),
			regexp.MustCompile(`^\s*import\s+([^\s,;#]+)`),
		},
	},
	LanguageGo: {
		Extensions: []string{".go"},
		Language:   LanguageGo,
		Patterns: []*regexp.Regexp{
			// Single line: import "path"
			regexp.MustCompile(`^\s*import\s+"([^"]+)"`),
			// Multi-line block: whitespace + optional alias + "path"
			regexp.MustCompile(`^\s*(?:[\w.]+\s+)?"([^"]+)"\s*$`),
		},
	},
	LanguageTypeScript: {
		Extensions: []string{".ts", ".tsx", ".js", ".jsx", ".mjs"},
		Language:   LanguageTypeScript,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`export\s+.*?from\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
			regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
		},
	},
}

func detectLanguage(ext string) *LanguagePattern {
	for _, pattern := range builtinPatterns {
		for _, patternExt := range pattern.Extensions {
			if ext == patternExt {
				return pattern
			}
		}
	}
	return nil
}
