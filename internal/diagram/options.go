package diagram

// Direction tokens accepted for flow layouts.
var validDirections = map[string]bool{
	"LR": true,
	"RL": true,
	"TD": true,
	"TB": true,
	"BT": true,
}

// Options controls diagram projection. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// Direction is the flow layout direction (LR, RL, TD, TB, BT).
	Direction string `json:"direction"`
	// IncludeExternal keeps nodes that look like third-party packages.
	IncludeExternal bool `json:"include_external"`
	// MaxNodes caps flow diagrams by prefix truncation.
	MaxNodes int `json:"max_nodes"`
	// GroupByDirectory wraps flow nodes in per-directory subgraphs.
	GroupByDirectory bool `json:"group_by_directory"`
}

// DefaultOptions returns the standard projection settings.
func DefaultOptions() Options {
	return Options{
		Direction:        "LR",
		IncludeExternal:  false,
		MaxNodes:         50,
		GroupByDirectory: true,
	}
}

// normalized replaces out-of-range values with defaults so every projection
// works from a valid option set.
func (o Options) normalized() Options {
	if !validDirections[o.Direction] {
		o.Direction = "LR"
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = 50
	}
	return o
}
