package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/sightline-dev/sightline/internal/ir"
)

// maxRecordedSyntaxErrors caps how many ERROR nodes from one tree end up in
// ParseErrors; beyond this they add noise without adding information.
const maxRecordedSyntaxErrors = 10

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startLine returns the 1-indexed source line of a node.
func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// endLine returns the 1-indexed last source line of a node.
func endLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false from the visitor prunes the subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByKind finds the first direct child with the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// findChildrenByKind finds all direct children with the given kind.
func findChildrenByKind(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// hasChildToken reports whether a direct child token of the given kind exists
// (used for "async", "default", "*" keyword tokens).
func hasChildToken(node *sitter.Node, token string) bool {
	return findChildByKind(node, token) != nil
}

// collectSyntaxErrors records tree-sitter ERROR nodes as non-fatal parse
// errors on the record, capped at maxRecordedSyntaxErrors.
func collectSyntaxErrors(root *sitter.Node, rec *ir.FileRecord, context string) {
	count := 0
	walkTree(root, func(n *sitter.Node) bool {
		if count >= maxRecordedSyntaxErrors {
			return false
		}
		if n.Kind() == "ERROR" || n.IsMissing() {
			rec.ParseErrors = append(rec.ParseErrors, ir.ParseError{
				Message: context + " syntax error",
				Line:    startLine(n),
				Column:  int(n.StartPosition().Column) + 1,
			})
			count++
			return false
		}
		return true
	})
}
