package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"

	"github.com/sightline-dev/sightline/internal/ir"
)

// parseMarkup extracts dependencies from an HTML document: script elements
// with a src attribute and stylesheet links. Inline <script> and <style>
// blocks stay structural children of the tree and are not parsed further.
func parseMarkup(rec *ir.FileRecord, content []byte) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(sitter.NewLanguage(tree_sitter_html.Language()))

	tree := parser.Parse(content, nil)
	if tree == nil {
		rec.ParseErrors = append(rec.ParseErrors, ir.ParseError{
			Message: "markup grammar produced no tree",
			Line:    1,
		})
		return
	}
	defer tree.Close()

	root := tree.RootNode()
	collectSyntaxErrors(root, rec, "markup")

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "script_element":
			if src, ok := elementAttributes(n, content)["src"]; ok && src != "" {
				rec.Dependencies = append(rec.Dependencies, ir.DependencyRef{
					Kind:       ir.DepScript,
					Target:     src,
					IsExternal: IsExternalTarget(src),
					Line:       startLine(n),
				})
			}
			return false
		case "element":
			attrs := elementAttributes(n, content)
			if tagName(n, content) == "link" && attrs["rel"] == "stylesheet" && attrs["href"] != "" {
				rec.Dependencies = append(rec.Dependencies, ir.DependencyRef{
					Kind:       ir.DepStylesheet,
					Target:     attrs["href"],
					IsExternal: IsExternalTarget(attrs["href"]),
					Line:       startLine(n),
				})
			}
		}
		return true
	})
}

// tagName returns the element's tag name from its start tag.
func tagName(element *sitter.Node, source []byte) string {
	start := findChildByKind(element, "start_tag")
	if start == nil {
		start = findChildByKind(element, "self_closing_tag")
	}
	if start == nil {
		return ""
	}
	return nodeText(findChildByKind(start, "tag_name"), source)
}

// elementAttributes collects the element's start-tag attributes into a map.
func elementAttributes(element *sitter.Node, source []byte) map[string]string {
	attrs := map[string]string{}

	start := findChildByKind(element, "start_tag")
	if start == nil {
		start = findChildByKind(element, "self_closing_tag")
	}
	if start == nil {
		return attrs
	}

	for _, attr := range findChildrenByKind(start, "attribute") {
		name := nodeText(findChildByKind(attr, "attribute_name"), source)
		if name == "" {
			continue
		}
		value := ""
		if quoted := findChildByKind(attr, "quoted_attribute_value"); quoted != nil {
			value = nodeText(findChildByKind(quoted, "attribute_value"), source)
		} else if bare := findChildByKind(attr, "attribute_value"); bare != nil {
			value = nodeText(bare, source)
		}
		attrs[name] = value
	}
	return attrs
}
