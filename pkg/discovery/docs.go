package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// docDirNames are the conventional documentation directory names scanned
// beside the source and in its parent.
var docDirNames = []string{"docs", "doc", "documentation"}

// docExtensions are the extensions considered documentation.
var docExtensions = []string{".md", ".txt", ".pdf", ".html", ".rst", ".adoc"}

// DocFiles returns documentation files associated with the source. A
// README beside the source is always included; doc-directory files match
// on the source base name, with index.md included unconditionally.
func (d *Discoverer) DocFiles(sourcePath string) ([]string, error) {
	if !isFile(sourcePath) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}

	srcDir := filepath.Dir(sourcePath)
	srcName := filepath.Base(sourcePath)
	srcBase := strings.TrimSuffix(srcName, filepath.Ext(srcName))
	srcBaseLower := strings.ToLower(srcBase)

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

	for _, name := range []string{"README.md", "README.txt"} {
		if p := filepath.Join(srcDir, name); isFile(p) {
			add(p)
		}
	}

	for _, dir := range conventionalDirs(srcDir, docDirNames) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if name == "index.md" {
				add(filepath.Join(dir, name))
				continue
			}
			if !isDocExtension(name) {
				continue
			}
			if strings.Contains(strings.ToLower(name), srcBaseLower) {
				add(filepath.Join(dir, name))
			}
		}
	}

	return out, nil
}

func isDocExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range docExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
