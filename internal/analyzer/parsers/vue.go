package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sightline-dev/sightline/internal/ir"
)

// Single-file components are split on delimiter markers, not parsed as one
// grammar: at most one script block, one template block, and any number of
// style blocks. The template match is greedy so nested <template> elements
// stay inside the outer block.
var (
	vueScriptRe   = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)
	vueTemplateRe = regexp.MustCompile(`(?is)<template[^>]*>(.*)</template>`)
	vueStyleRe    = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)
)

// parseComposite splits a single-file component into blocks and delegates to
// the script, markup, and stylesheet sub-parsers. A failure in one block is
// recorded and does not abort the others.
func parseComposite(rec *ir.FileRecord, content []byte) {
	text := string(content)

	templateMatch := vueTemplateRe.FindStringSubmatchIndex(text)

	// The script block is the first <script> element outside the template;
	// inline script tags inside the template markup do not count.
	for _, m := range vueScriptRe.FindAllStringSubmatchIndex(text, -1) {
		if templateMatch != nil && m[0] >= templateMatch[0] && m[1] <= templateMatch[1] {
			continue
		}
		parseCompositeBlock(rec, "script", text[m[2]:m[3]], lineOfOffset(text, m[2])-1, func(sub *ir.FileRecord, block []byte) {
			parseScript(sub, block)
		})
		break
	}

	if m := templateMatch; m != nil {
		parseCompositeBlock(rec, "template", text[m[2]:m[3]], lineOfOffset(text, m[2])-1, func(sub *ir.FileRecord, block []byte) {
			parseMarkup(sub, block)
			// Only dependencies propagate from the template block.
			sub.Functions = sub.Functions[:0]
			sub.Classes = sub.Classes[:0]
			sub.Components = sub.Components[:0]
			sub.Exports = sub.Exports[:0]
		})
	}

	for _, m := range vueStyleRe.FindAllStringSubmatchIndex(text, -1) {
		parseCompositeBlock(rec, "style", text[m[2]:m[3]], lineOfOffset(text, m[2])-1, func(sub *ir.FileRecord, block []byte) {
			parseStylesheet(sub, block)
		})
	}
}

// parseCompositeBlock runs one sub-parser over a block and merges its output
// into the outer record, shifting line numbers by the block's offset in the
// original file. Panics in a sub-parser become parse errors on the block.
func parseCompositeBlock(rec *ir.FileRecord, blockName, block string, lineOffset int, parse func(*ir.FileRecord, []byte)) {
	defer func() {
		if r := recover(); r != nil {
			rec.ParseErrors = append(rec.ParseErrors, ir.ParseError{
				Message: fmt.Sprintf("%s block failed: %v", blockName, r),
				Line:    lineOffset + 1,
			})
		}
	}()

	ext := map[string]string{"script": ".ts", "template": ".html", "style": ".css"}[blockName]
	if blockName == "script" && strings.Contains(block, "</") {
		// JSX-ish content inside the script block still parses under TSX.
		ext = ".tsx"
	}

	sub := ir.NewFileRecord(rec.Path, ext)
	parse(sub, []byte(block))

	for _, dep := range sub.Dependencies {
		dep.Line += lineOffset
		rec.Dependencies = append(rec.Dependencies, dep)
	}
	for _, fn := range sub.Functions {
		fn.Line += lineOffset
		if fn.EndLine > 0 {
			fn.EndLine += lineOffset
		}
		rec.Functions = append(rec.Functions, fn)
	}
	for _, cls := range sub.Classes {
		cls.Line += lineOffset
		if cls.EndLine > 0 {
			cls.EndLine += lineOffset
		}
		rec.Classes = append(rec.Classes, cls)
	}
	for _, comp := range sub.Components {
		comp.Line += lineOffset
		rec.Components = append(rec.Components, comp)
	}
	for _, exp := range sub.Exports {
		exp.Line += lineOffset
		rec.Exports = append(rec.Exports, exp)
	}
	for _, perr := range sub.ParseErrors {
		if perr.Line > 0 {
			perr.Line += lineOffset
		}
		perr.Message = blockName + " block: " + perr.Message
		rec.ParseErrors = append(rec.ParseErrors, perr)
	}
}
