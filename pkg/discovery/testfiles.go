package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// testDirNames are the conventional test directory names scanned beside
// the source and in its parent.
var testDirNames = []string{"tests", "test", "__tests__"}

// TestFiles returns test files associated with the source by naming
// convention. Pure existence and pattern matching; no scoring.
func (d *Discoverer) TestFiles(sourcePath string) ([]string, error) {
	if !isFile(sourcePath) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}

	srcDir := filepath.Dir(sourcePath)
	srcName := filepath.Base(sourcePath)
	srcExt := filepath.Ext(srcName)
	srcBase := strings.TrimSuffix(srcName, srcExt)

	var out []string
	seen := make(map[string]struct{})
	add := func(path string) {
		key := canonical(path)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, path)
	}

	// Direct naming conventions beside the source.
	for _, name := range []string{
		srcBase + ".test" + srcExt,
		srcBase + ".spec" + srcExt,
		"test_" + srcBase + srcExt,
		srcBase + "_test" + srcExt,
	} {
		if p := filepath.Join(srcDir, name); isFile(p) {
			add(p)
		}
	}

	// Conventional test directories in the source dir and its parent.
	for _, dir := range conventionalDirs(srcDir, testDirNames) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.Contains(name, srcBase) || d.cfg.isExcludedExtension(name) {
				continue
			}
			add(filepath.Join(dir, name))
		}
	}

	return out, nil
}

// conventionalDirs returns the existing directories with any of the given
// names, looking in base and its parent.
func conventionalDirs(base string, names []string) []string {
	parents := []string{base, filepath.Dir(base)}
	var out []string
	for _, parent := range parents {
		for _, name := range names {
			dir := filepath.Join(parent, name)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				out = append(out, dir)
			}
		}
	}
	return out
}
