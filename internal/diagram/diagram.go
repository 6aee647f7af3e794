// Package diagram projects analysis results into textual diagram languages
// (flow graphs, class diagrams, sequence diagrams) and validates the output.
// Every projection is deterministic: the same source and options always
// produce the same text.
package diagram

import (
	"fmt"

	"github.com/sightline-dev/sightline/internal/graph"
	"github.com/sightline-dev/sightline/internal/ir"
)

// Kind selects a diagram projection.
type Kind string

const (
	KindDependencyFlow Kind = "dependency-flow"
	KindComponent      Kind = "component"
	KindFunctionCall   Kind = "function-call"
	KindClass          Kind = "class"
	KindSequence       Kind = "sequence"
)

// Kinds lists every supported projection, in display order.
var Kinds = []Kind{KindDependencyFlow, KindComponent, KindFunctionCall, KindClass, KindSequence}

// ParseKind validates a user-supplied kind string.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown diagram kind %q (supported: %v)", s, Kinds)
}

// Source carries the projection inputs. Graph feeds dependency-flow; Records
// feed the other four kinds.
type Source struct {
	Graph   *graph.DependencyGraph
	Records []ir.FileRecord
}

// Project renders one diagram kind from the source. Degenerate input never
// fails: empty sources produce a fixed placeholder diagram that still
// validates. The returned text has passed shape normalization.
func Project(kind Kind, src Source, opts Options) (string, error) {
	opts = opts.normalized()

	var text string
	switch kind {
	case KindDependencyFlow:
		text = DependencyFlow(src.Graph, opts)
	case KindComponent:
		text = Component(src.Records, opts)
	case KindFunctionCall:
		text = FunctionCall(src.Records, opts)
	case KindClass:
		text = Class(src.Records)
	case KindSequence:
		text = Sequence(src.Records)
	default:
		return "", fmt.Errorf("unknown diagram kind %q", kind)
	}

	return normalizeShapes(text), nil
}
