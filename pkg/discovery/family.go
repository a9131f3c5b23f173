package discovery

import (
	"regexp"
	"strings"
)

// LanguageFamily selects the import-extraction strategy for a source file.
// Adding a family is an explicit variant addition, not a string-dispatch
// fallthrough.
type LanguageFamily int

const (
	// FamilyGeneric matches any quoted path literal with an extension.
	FamilyGeneric LanguageFamily = iota
	// FamilyScript covers the JavaScript/TypeScript import forms.
	FamilyScript
	// FamilyPython covers import and from-import statements.
	FamilyPython
	// FamilyCLike covers #include directives.
	FamilyCLike
)

// String returns the family name for logging.
func (f LanguageFamily) String() string {
	switch f {
	case FamilyScript:
		return "script"
	case FamilyPython:
		return "python"
	case FamilyCLike:
		return "clike"
	default:
		return "generic"
	}
}

// FamilyForExtension maps a file extension to its language family.
func FamilyForExtension(ext string) LanguageFamily {
	switch strings.ToLower(ext) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return FamilyScript
	case ".py":
		return FamilyPython
	case ".c", ".h", ".cc", ".hh", ".cpp", ".hpp", ".cxx":
		return FamilyCLike
	default:
		return FamilyGeneric
	}
}

var (
	scriptPatterns = []*regexp.Regexp{
		// import defaultExport, { named } from 'path'  /  import 'path'
		regexp.MustCompile(`import\s+(?:[\w{}\s,*$]+\s+from\s+)?['"]([^'"]+)['"]`),
		// require('path')
		regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`),
		// dynamic import('path')
		regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`),
	}
	pythonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`),
		regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import`),
	}
	clikePatterns = []*regexp.Regexp{
		regexp.MustCompile(`#include\s*"([^"]+)"`),
		regexp.MustCompile(`#include\s*<([^>]+)>`),
	}
	genericPatterns = []*regexp.Regexp{
		regexp.MustCompile(`['"]([^'"\s]+\.\w{1,4})['"]`),
	}
)

// patterns returns the matcher set for the family.
func (f LanguageFamily) patterns() []*regexp.Regexp {
	switch f {
	case FamilyScript:
		return scriptPatterns
	case FamilyPython:
		return pythonPatterns
	case FamilyCLike:
		return clikePatterns
	default:
		return genericPatterns
	}
}

// extractImports applies every matcher of the family over the full source
// text and collects the captured path literals. Duplicates are allowed at
// this stage; resolution de-duplicates later.
func extractImports(content string, family LanguageFamily) []string {
	var refs []string
	for _, re := range family.patterns() {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if len(m) > 1 && m[1] != "" {
				refs = append(refs, m[1])
			}
		}
	}
	return refs
}

// normalizeImport converts a captured literal into a relative path
// fragment. Python dotted module paths become slash-separated.
func normalizeImport(literal string, family LanguageFamily) string {
	if family == FamilyPython {
		return strings.ReplaceAll(literal, ".", "/")
	}
	return literal
}

// nonLocalPrefixes mark references that cannot resolve to a local file.
var nonLocalPrefixes = []string{"@", "http://", "https://", "node:", "npm:", "jsr:", "data:"}

// isNonLocal reports whether a captured literal points outside the tree.
func isNonLocal(literal string) bool {
	for _, p := range nonLocalPrefixes {
		if strings.HasPrefix(literal, p) {
			return true
		}
	}
	return false
}
