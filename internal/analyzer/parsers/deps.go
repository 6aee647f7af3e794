package parsers

import (
	"regexp"
	"strings"

	"github.com/sightline-dev/sightline/internal/ir"
)

// Dependency references are scanned from raw text rather than the AST: the
// three recognized forms are regular enough that pattern matching survives
// files the grammar cannot fully parse.
var (
	importFromRe    = regexp.MustCompile(`import\s+(?:[^'"();]+?\s+from\s+)?['"]([^'"]+)['"]`)
	requireCallRe   = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	dynamicImportRe = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

// extractScriptDependencies appends one DependencyRef per matched static
// import, require() call, and dynamic import().
func extractScriptDependencies(rec *ir.FileRecord, content []byte) {
	text := string(content)
	appendMatches(rec, text, importFromRe, ir.DepImport)
	appendMatches(rec, text, requireCallRe, ir.DepRequire)
	appendMatches(rec, text, dynamicImportRe, ir.DepDynamicImport)
}

func appendMatches(rec *ir.FileRecord, text string, re *regexp.Regexp, kind ir.DependencyKind) {
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		target := text[m[2]:m[3]]
		rec.Dependencies = append(rec.Dependencies, ir.DependencyRef{
			Kind:       kind,
			Target:     target,
			IsExternal: IsExternalTarget(target),
			Line:       lineOfOffset(text, m[0]),
		})
	}
}

// IsExternalTarget reports whether a dependency target points outside the
// project: anything that does not start with a relative-path marker.
func IsExternalTarget(target string) bool {
	return !strings.HasPrefix(target, ".")
}

// lineOfOffset converts a byte offset into a 1-indexed line number.
func lineOfOffset(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
