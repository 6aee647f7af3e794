package diagram

import (
	"fmt"
	"strings"

	"github.com/sightline-dev/sightline/internal/ir"
)

// maxSequenceParticipants caps participant count for readability.
const maxSequenceParticipants = 5

// Sequence renders components as sequence-diagram participants with a
// synthesized message chain: a User participant messages the first
// component, then each component messages the next. There is no real
// interaction tracing behind the arrows.
func Sequence(records []ir.FileRecord) string {
	var participants []string
collect:
	for i := range records {
		for _, comp := range records[i].Components {
			participants = append(participants, SanitizeID(comp.Name))
			if len(participants) == maxSequenceParticipants {
				break collect
			}
		}
	}

	var b strings.Builder
	b.WriteString("sequenceDiagram\n")
	b.WriteString("  participant User\n")

	if len(participants) == 0 {
		b.WriteString("  participant App\n")
		b.WriteString("  User->>App: No components detected\n")
		return b.String()
	}

	for _, p := range participants {
		fmt.Fprintf(&b, "  participant %s\n", p)
	}

	fmt.Fprintf(&b, "  User->>%s: interact\n", participants[0])
	for i := 0; i+1 < len(participants); i++ {
		fmt.Fprintf(&b, "  %s->>%s: update\n", participants[i], participants[i+1])
	}

	return b.String()
}
