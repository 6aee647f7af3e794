package analyzer

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sightline-dev/sightline/internal/analyzer/parsers"
)

// DefaultIgnorePatterns excludes package-manager caches and build output.
var DefaultIgnorePatterns = []string{
	"node_modules/**",
	"bower_components/**",
	"dist/**",
	"build/**",
	"out/**",
	".next/**",
	"coverage/**",
	".git/**",
	"vendor/**",
}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery enumerates eligible source files under a root.
type Discovery struct {
	rootDir        string
	ignorePatterns []compiledPattern
}

// NewDiscovery creates a discovery instance. Empty ignorePatterns means
// DefaultIgnorePatterns.
func NewDiscovery(rootDir string, ignorePatterns []string) (*Discovery, error) {
	if len(ignorePatterns) == 0 {
		ignorePatterns = DefaultIgnorePatterns
	}

	d := &Discovery{rootDir: rootDir}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// DiscoverFiles walks the tree and returns project-relative slash paths of
// files with a supported extension, sorted for deterministic downstream
// output. Unreadable subtrees below the root are skipped, not fatal.
func (d *Discovery) DiscoverFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(d.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == d.rootDir {
				return err
			}
			return fs.SkipDir
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if entry.IsDir() {
			if relPath != "." && d.shouldIgnore(relPath) {
				return fs.SkipDir
			}
			return nil
		}

		if d.shouldIgnore(relPath) {
			return nil
		}
		if !parsers.IsSupported(filepath.Ext(relPath)) {
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// shouldIgnore checks a relative path against the ignore patterns, including
// the directory form ("node_modules" matching "node_modules/**").
func (d *Discovery) shouldIgnore(relPath string) bool {
	if d.matchesAny(relPath) {
		return true
	}
	if !strings.HasSuffix(relPath, "/**") {
		return d.matchesAny(relPath + "/**")
	}
	return false
}

func (d *Discovery) matchesAny(path string) bool {
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(path) {
			return true
		}
	}
	return false
}
