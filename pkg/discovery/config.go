package discovery

// ScanConfig controls one discovery session. The value is immutable for
// the duration of a call.
type ScanConfig struct {
	// MaxFiles caps the number of context files returned.
	MaxFiles int `yaml:"max_files"`

	// MaxDepth is reserved for future recursive scans. It is loaded and
	// carried but not consulted by the current scoring algorithm.
	MaxDepth int `yaml:"max_depth"`

	// ExcludeDirs are directory names never scanned for candidates.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludeExtensions are extensions filtered out of directory scans.
	ExcludeExtensions []string `yaml:"exclude_extensions"`

	// PriorityExtensions are tried, in order, when resolving extensionless
	// imports, and earn candidates a scoring bonus.
	PriorityExtensions []string `yaml:"priority_extensions"`
}

// DefaultScanConfig returns the default discovery configuration.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxFiles:          10,
		MaxDepth:          3,
		ExcludeDirs:       []string{"node_modules", "dist", "build", ".git", "coverage"},
		ExcludeExtensions: []string{".log", ".map", ".d.ts"},
		PriorityExtensions: []string{
			".ts", ".tsx", ".js", ".jsx",
			".py", ".go", ".rs",
			".c", ".h", ".cpp", ".hpp",
		},
	}
}

func (c ScanConfig) isPriorityExtension(ext string) bool {
	for _, e := range c.PriorityExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (c ScanConfig) isExcludedExtension(name string) bool {
	for _, e := range c.ExcludeExtensions {
		if hasExtensionSuffix(name, e) {
			return true
		}
	}
	return false
}

func (c ScanConfig) isExcludedDir(name string) bool {
	for _, d := range c.ExcludeDirs {
		if d == name {
			return true
		}
	}
	return false
}
