// Package discovery finds and ranks files related to a source file so
// they can be attached as prompt context.
package discovery

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrSourceNotFound is returned when the source file does not exist. It is
// the only error that crosses the discoverer boundary; per-candidate I/O
// failures are logged and the candidate is skipped.
var ErrSourceNotFound = errors.New("source file not found")

// maxCandidateSize is the ceiling above which candidate files are never
// attached as context.
const maxCandidateSize = 1 << 20

// candidate is a file under consideration during one discovery call.
type candidate struct {
	path  string
	score float64
}

// Discoverer ranks files related to a source file.
type Discoverer struct {
	cfg   ScanConfig
	debug bool
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithDebug enables debug logging.
func WithDebug(debug bool) DiscovererOption {
	return func(d *Discoverer) {
		d.debug = debug
	}
}

// NewDiscoverer creates a discoverer with the given scan configuration.
func NewDiscoverer(cfg ScanConfig, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{cfg: cfg}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ContextFiles returns the ranked related files for a source file, capped
// at the configured maximum. Scores are internal; only paths are returned.
func (d *Discoverer) ContextFiles(sourcePath string) ([]string, error) {
	info, err := os.Stat(sourcePath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}

	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}
	source := string(content)

	srcDir := filepath.Dir(sourcePath)
	srcName := filepath.Base(sourcePath)
	srcExt := filepath.Ext(srcName)
	family := FamilyForExtension(srcExt)

	if d.debug {
		log.Printf("[discovery] scanning %s (family=%s)", sourcePath, family)
	}

	var ordered []string
	seen := make(map[string]struct{})
	selfKey := canonical(sourcePath)
	seen[selfKey] = struct{}{}

	add := func(path string) {
		key := canonical(path)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		if d.inExcludedDir(path) {
			return
		}
		ordered = append(ordered, path)
	}

	for _, ref := range extractImports(source, family) {
		if isNonLocal(ref) {
			continue
		}
		if resolved, ok := d.resolveImport(srcDir, ref, srcExt, family); ok {
			add(resolved)
		}
	}
	for _, sib := range d.siblingCandidates(srcDir, srcName, srcExt) {
		add(sib)
	}

	srcKeywords := significantKeywords(source)
	var scored []candidate
	for _, path := range ordered {
		score, ok := d.scoreCandidate(path, srcDir, srcName, source, srcKeywords)
		if !ok {
			continue
		}
		scored = append(scored, candidate{path: path, score: score})
	}

	// Stable sort keeps discovery order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := d.cfg.MaxFiles
	if limit < 0 {
		limit = 0
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	paths := make([]string, 0, len(scored))
	for _, c := range scored {
		paths = append(paths, c.path)
	}
	return paths, nil
}

// resolveImport maps a captured literal to an existing file relative to
// the source directory. Extensionless references try each priority
// extension in order, then an index file named after the source extension.
// Bare module-style references get the same direct resolution but no
// package-directory search.
func (d *Discoverer) resolveImport(srcDir, literal, srcExt string, family LanguageFamily) (string, bool) {
	rel := normalizeImport(literal, family)
	base := filepath.Join(srcDir, rel)

	if isFile(base) {
		return base, true
	}
	if filepath.Ext(rel) != "" {
		return "", false
	}
	for _, ext := range d.cfg.PriorityExtensions {
		if p := base + ext; isFile(p) {
			return p, true
		}
	}
	if p := filepath.Join(base, "index"+srcExt); isFile(p) {
		return p, true
	}
	return "", false
}

// siblingCandidates lists files beside the source whose name or extension
// suggests a relationship.
func (d *Discoverer) siblingCandidates(srcDir, srcName, srcExt string) []string {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		log.Printf("[discovery] cannot list %s: %v", srcDir, err)
		return nil
	}

	srcBase := strings.TrimSuffix(srcName, srcExt)
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == srcName {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)

		related := strings.Contains(base, srcBase) ||
			strings.Contains(srcBase, base) ||
			ext == srcExt ||
			extensionsRelated(srcExt, name)
		if related {
			out = append(out, filepath.Join(srcDir, name))
		}
	}
	return out
}

// scoreCandidate accumulates evidence for one candidate. Scores are never
// subtractive. Returns false when the candidate must be skipped entirely.
func (d *Discoverer) scoreCandidate(path, srcDir, srcName, source string, srcKeywords map[string]struct{}) (float64, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > maxCandidateSize {
		if err != nil {
			log.Printf("[discovery] skipping %s: %v", path, err)
		}
		return 0, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[discovery] skipping %s: %v", path, err)
		return 0, false
	}
	text := string(content)

	var score float64
	if d.cfg.isPriorityExtension(filepath.Ext(path)) {
		score += 5
	}

	depth := directoryDistance(srcDir, filepath.Dir(path))
	if prox := 10 - 2*depth; prox > 0 {
		score += float64(prox)
	}

	score += 2 * float64(sharedKeywordCount(srcKeywords, significantKeywords(text)))

	if strings.Contains(text, srcName) {
		score += 10
	}
	if strings.Contains(source, filepath.Base(path)) {
		score += 10
	}

	if d.debug {
		log.Printf("[discovery] candidate %s score=%.0f", path, score)
	}
	return score, true
}

// inExcludedDir reports whether any path segment is an excluded directory,
// so imports resolving into vendored trees are never attached as context.
func (d *Discoverer) inExcludedDir(path string) bool {
	dir := filepath.Dir(path)
	for _, seg := range strings.Split(dir, string(filepath.Separator)) {
		if seg != "" && d.cfg.isExcludedDir(seg) {
			return true
		}
	}
	return false
}

// directoryDistance counts path segments between two directories.
func directoryDistance(a, b string) int {
	rel, err := filepath.Rel(a, b)
	if err != nil {
		return 1 << 8
	}
	if rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// relatedExtensions maps a source extension to companion extensions that
// mark a sibling as related. Lookups are symmetric.
var relatedExtensions = map[string][]string{
	".js":  {".jsx", ".ts", ".tsx", ".d.ts", ".js.map"},
	".jsx": {".js", ".ts", ".tsx", ".css"},
	".ts":  {".js", ".tsx", ".jsx", ".d.ts"},
	".tsx": {".ts", ".jsx", ".js", ".css"},
	".py":  {".pyi"},
	".c":   {".h", ".cpp", ".hpp", ".o"},
	".h":   {".c", ".cpp", ".hpp"},
	".cpp": {".hpp", ".h", ".c"},
	".hpp": {".cpp", ".h"},
}

// extensionsRelated checks the relation table in both directions.
func extensionsRelated(srcExt, candName string) bool {
	for _, e := range relatedExtensions[srcExt] {
		if hasExtensionSuffix(candName, e) {
			return true
		}
	}
	for _, e := range relatedExtensions[filepath.Ext(candName)] {
		if e == srcExt {
			return true
		}
	}
	return false
}

// hasExtensionSuffix matches extensions including compound ones such as
// ".d.ts" and ".js.map".
func hasExtensionSuffix(name, ext string) bool {
	return strings.HasSuffix(name, ext)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
