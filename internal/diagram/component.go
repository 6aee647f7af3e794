package diagram

import (
	"fmt"
	"path"
	"strings"

	"github.com/sightline-dev/sightline/internal/ir"
)

// Component renders one node per detected UI component. Edges are an
// over-approximation: when a file's dependency target names another file
// with components (substring containment on the target's base name), every
// component of the source file points at every component of the target file.
func Component(records []ir.FileRecord, opts Options) string {
	type compNode struct {
		id   string
		name string
		kind ir.ComponentKind
	}

	byPath := map[string][]compNode{}
	var order []string
	total := 0
	for i := range records {
		rec := &records[i]
		for _, comp := range rec.Components {
			node := compNode{
				id:   SanitizeID(rec.Path + "_" + comp.Name),
				name: comp.Name,
				kind: comp.Kind,
			}
			if _, seen := byPath[rec.Path]; !seen {
				order = append(order, rec.Path)
			}
			byPath[rec.Path] = append(byPath[rec.Path], node)
			total++
		}
	}

	if total == 0 {
		return componentPlaceholder(opts.Direction)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", opts.Direction)

	for _, p := range order {
		for _, node := range byPath[p] {
			shape := [2]string{`["`, `"]`}
			if node.kind == ir.ComponentClass {
				shape = [2]string{`[["`, `"]]`}
			}
			fmt.Fprintf(&b, "  %s%s%s%s\n", node.id, shape[0], SanitizeLabel(node.name), shape[1])
		}
	}

	for i := range records {
		rec := &records[i]
		source := byPath[rec.Path]
		if len(source) == 0 {
			continue
		}
		for _, dep := range rec.InternalDependencies() {
			targetBase := strings.TrimSuffix(path.Base(dep.Target), path.Ext(dep.Target))
			if targetBase == "" {
				continue
			}
			for _, targetPath := range order {
				if targetPath == rec.Path || !strings.Contains(targetPath, targetBase) {
					continue
				}
				for _, from := range source {
					for _, to := range byPath[targetPath] {
						fmt.Fprintf(&b, "  %s --> %s\n", from.id, to.id)
					}
				}
			}
		}
	}

	return b.String()
}

func componentPlaceholder(direction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", direction)
	b.WriteString("  none[\"No components detected\"]\n")
	b.WriteString("  hint[\"Components are detected by naming convention\"]\n")
	b.WriteString("  none --> hint\n")
	return b.String()
}
