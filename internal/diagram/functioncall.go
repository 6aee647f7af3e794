package diagram

import (
	"fmt"
	"strings"

	"github.com/sightline-dev/sightline/internal/ir"
)

const (
	maxFunctionNodes    = 20
	maxSynthesizedCalls = 5

	// complexityThreshold splits functions into low/high styling buckets.
	complexityThreshold = 10
)

// entryNameFragments flags functions that look like program entry points.
var entryNameFragments = []string{"main", "init", "start"}

// FunctionCall renders captured functions as an approximate call graph. No
// call-site analysis happens: the first entry-like function (name containing
// main/init/start) is linked to a handful of the other functions, and nodes
// are styled by the complexity estimate.
func FunctionCall(records []ir.FileRecord, opts Options) string {
	type fnNode struct {
		id    string
		label string
		high  bool
		entry bool
	}

	var nodes []fnNode
collect:
	for i := range records {
		rec := &records[i]
		for _, fn := range rec.Functions {
			name := fn.Name
			if name == "" {
				name = "anonymous"
			}
			nodes = append(nodes, fnNode{
				id:    SanitizeID(rec.Path + "_" + name),
				label: name + "()",
				high:  fn.ComplexityScore() >= complexityThreshold,
				entry: isEntryLike(name),
			})
			if len(nodes) == maxFunctionNodes {
				break collect
			}
		}
	}

	if len(nodes) == 0 {
		return functionCallPlaceholder(opts.Direction)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", opts.Direction)
	b.WriteString("  classDef lowComplexity fill:#d4edda,stroke:#28a745\n")
	b.WriteString("  classDef highComplexity fill:#f8d7da,stroke:#dc3545\n")

	for _, node := range nodes {
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", node.id, SanitizeLabel(node.label))
	}

	entryIdx := -1
	for i, node := range nodes {
		if node.entry {
			entryIdx = i
			break
		}
	}
	if entryIdx >= 0 {
		linked := 0
		for i := range nodes {
			if i == entryIdx {
				continue
			}
			if linked == maxSynthesizedCalls {
				break
			}
			fmt.Fprintf(&b, "  %s --> %s\n", nodes[entryIdx].id, nodes[i].id)
			linked++
		}
	}

	for _, node := range nodes {
		bucket := "lowComplexity"
		if node.high {
			bucket = "highComplexity"
		}
		fmt.Fprintf(&b, "  class %s %s\n", node.id, bucket)
	}

	return b.String()
}

func isEntryLike(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range entryNameFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func functionCallPlaceholder(direction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", direction)
	b.WriteString("  none[\"No functions captured\"]\n")
	b.WriteString("  hint[\"Function extraction covers scripts and single-file components\"]\n")
	b.WriteString("  none --> hint\n")
	return b.String()
}
