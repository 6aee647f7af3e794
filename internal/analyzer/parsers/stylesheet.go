package parsers

import (
	"regexp"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"github.com/sightline-dev/sightline/internal/ir"
)

// @import targets are matched over raw text, covering both the bare string
// and url(...) forms regardless of how the rule tree parsed.
var styleImportRe = regexp.MustCompile(`@import\s+(?:url\(\s*)?["']?([^"')\s;]+)`)

// parseStylesheet parses the file into a CSS rule tree (recording syntax
// errors) and extracts @import targets as style-import dependencies.
func parseStylesheet(rec *ir.FileRecord, content []byte) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(sitter.NewLanguage(tree_sitter_css.Language()))

	tree := parser.Parse(content, nil)
	if tree == nil {
		rec.ParseErrors = append(rec.ParseErrors, ir.ParseError{
			Message: "stylesheet grammar produced no tree",
			Line:    1,
		})
	} else {
		defer tree.Close()
		collectSyntaxErrors(tree.RootNode(), rec, "stylesheet")
	}

	text := string(content)
	for _, m := range styleImportRe.FindAllStringSubmatchIndex(text, -1) {
		target := text[m[2]:m[3]]
		rec.Dependencies = append(rec.Dependencies, ir.DependencyRef{
			Kind:       ir.DepStyleImport,
			Target:     target,
			IsExternal: IsExternalTarget(target),
			Line:       lineOfOffset(text, m[0]),
		})
	}
}
