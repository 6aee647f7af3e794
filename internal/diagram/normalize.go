package diagram

import "strings"

// shapeCollapses rewrites known-invalid nested shape delimiters, produced
// when two shape wrappers end up composed, into the inner valid shape. The
// open and close rewrites are applied as a pair so brackets stay balanced.
var shapeCollapses = []struct {
	badOpen, goodOpen   string
	badClose, goodClose string
}{
	{`{("`, `("`, `")}`, `")`},
	{`{["`, `["`, `"]}`, `"]`},
	{`[{"`, `{"`, `"}]`, `"}`},
	{`({"`, `{"`, `"})`, `"}`},
	{`[[["`, `[["`, `"]]]`, `"]]`},
}

// normalizeShapes self-heals nested-shape artifacts before validation.
func normalizeShapes(text string) string {
	for _, c := range shapeCollapses {
		if !strings.Contains(text, c.badOpen) {
			continue
		}
		text = strings.ReplaceAll(text, c.badOpen, c.goodOpen)
		text = strings.ReplaceAll(text, c.badClose, c.goodClose)
	}
	return text
}
