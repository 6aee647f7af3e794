package diagram

import (
	"fmt"
	"strings"

	"github.com/sightline-dev/sightline/internal/ir"
)

// classSpanFallback bounds method attribution when a class has no recorded
// end line. No real scope boundary is tracked; this is an approximation.
const classSpanFallback = 100

// Class renders one class block per captured class declaration, attributing
// a file's functions to the class whose line span contains them. Inheritance
// arrows connect subclass to superclass by sanitized name.
func Class(records []ir.FileRecord) string {
	type classBlock struct {
		name       string
		superclass string
		methods    []string
	}

	var blocks []classBlock
	for i := range records {
		rec := &records[i]
		for _, cls := range rec.Classes {
			end := cls.EndLine
			if end <= 0 {
				end = cls.Line + classSpanFallback
			}

			block := classBlock{
				name:       SanitizeID(cls.Name),
				superclass: cls.SuperclassName,
			}
			for _, fn := range rec.Functions {
				if fn.Line > cls.Line && fn.Line <= end && fn.Name != "" {
					block.methods = append(block.methods, fn.Name)
				}
			}
			blocks = append(blocks, block)
		}
	}

	if len(blocks) == 0 {
		return classPlaceholder()
	}

	var b strings.Builder
	b.WriteString("classDiagram\n")

	for _, block := range blocks {
		fmt.Fprintf(&b, "  class %s {\n", block.name)
		for _, method := range block.methods {
			fmt.Fprintf(&b, "    +%s()\n", SanitizeID(method))
		}
		b.WriteString("  }\n")
	}

	for _, block := range blocks {
		if block.superclass == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s <|-- %s\n", SanitizeID(block.superclass), block.name)
	}

	return b.String()
}

func classPlaceholder() string {
	var b strings.Builder
	b.WriteString("classDiagram\n")
	b.WriteString("  class NoClasses {\n")
	b.WriteString("    +note() no class declarations found\n")
	b.WriteString("  }\n")
	return b.String()
}
