// Package ir defines the per-file intermediate representation produced by the
// source parsers. A FileRecord is created once per analysis run and is
// immutable afterward; every downstream consumer (graph building, diagram
// projection, search) only reads it.
package ir

import "time"

// DependencyKind classifies how a file references another module.
type DependencyKind string

const (
	DepImport        DependencyKind = "import"
	DepRequire       DependencyKind = "require"
	DepDynamicImport DependencyKind = "dynamicImport"
	DepScript        DependencyKind = "script"
	DepStylesheet    DependencyKind = "stylesheet"
	DepStyleImport   DependencyKind = "styleImport"
)

// DependencyRef is a single outgoing module reference.
type DependencyRef struct {
	Kind   DependencyKind `json:"kind"`
	Target string         `json:"target"`
	// IsExternal is true when Target does not start with a relative-path
	// marker (leading dot). Heuristic, not verified against any registry.
	IsExternal bool `json:"is_external"`
	Line       int  `json:"line,omitempty"`
}

// ExportKind distinguishes default from named exports.
type ExportKind string

const (
	ExportDefault ExportKind = "default"
	ExportNamed   ExportKind = "named"
)

// ExportRef is a single exported binding.
type ExportRef struct {
	Kind ExportKind `json:"kind"`
	Name string     `json:"name"`
	Line int        `json:"line"`
}

// FunctionKind classifies the syntactic form a function was declared with.
type FunctionKind string

const (
	FuncDeclaration FunctionKind = "declaration"
	FuncExpression  FunctionKind = "expression"
	FuncArrow       FunctionKind = "arrow"
)

// FunctionRef is one captured function. Parameters holds identifier names, or
// the parameter's node kind for destructuring/non-identifier patterns.
type FunctionRef struct {
	Name        string       `json:"name"`
	Kind        FunctionKind `json:"kind"`
	Parameters  []string     `json:"parameters"`
	Line        int          `json:"line"`
	EndLine     int          `json:"end_line,omitempty"`
	IsAsync     bool         `json:"is_async"`
	IsGenerator bool         `json:"is_generator"`
}

// ComplexityScore is a rough size estimate used for diagram styling: line span
// plus a weight per parameter. It has no documented accuracy target.
func (f FunctionRef) ComplexityScore() int {
	span := 0
	if f.EndLine > f.Line {
		span = f.EndLine - f.Line
	}
	return span + 2*len(f.Parameters)
}

// ClassRef is one captured class declaration.
type ClassRef struct {
	Name           string `json:"name"`
	SuperclassName string `json:"superclass_name,omitempty"`
	Line           int    `json:"line"`
	EndLine        int    `json:"end_line,omitempty"`
}

// ComponentKind distinguishes functional from class components.
type ComponentKind string

const (
	ComponentFunctional ComponentKind = "functional"
	ComponentClass      ComponentKind = "class"
)

// ComponentRef is a heuristically detected UI component. Props is a coarse
// existence flag (["props"] when the function takes a parameter), not real
// prop introspection.
type ComponentRef struct {
	Name  string        `json:"name"`
	Kind  ComponentKind `json:"kind"`
	Line  int           `json:"line"`
	Props []string      `json:"props"`
}

// ParseError is a non-fatal grammar or tree-construction failure.
type ParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// FileRecord is the structural summary of one source file.
//
// Invariant: a record with FatalError set carries empty derived collections.
// Path is unique within one analysis run.
type FileRecord struct {
	Path         string          `json:"path"`
	Extension    string          `json:"extension"`
	Size         int             `json:"size"`
	LineCount    int             `json:"line_count"`
	Dependencies []DependencyRef `json:"dependencies"`
	Exports      []ExportRef     `json:"exports"`
	Functions    []FunctionRef   `json:"functions"`
	Classes      []ClassRef      `json:"classes"`
	Components   []ComponentRef  `json:"components"`
	ParseErrors  []ParseError    `json:"parse_errors"`
	FatalError   string          `json:"fatal_error,omitempty"`
}

// NewFileRecord returns a record with all collections initialized empty.
func NewFileRecord(path, extension string) *FileRecord {
	return &FileRecord{
		Path:         path,
		Extension:    extension,
		Dependencies: []DependencyRef{},
		Exports:      []ExportRef{},
		Functions:    []FunctionRef{},
		Classes:      []ClassRef{},
		Components:   []ComponentRef{},
		ParseErrors:  []ParseError{},
	}
}

// NewFatalRecord returns a record carrying only a fatal error. Derived
// collections stay empty per the FileRecord invariant.
func NewFatalRecord(path, extension, message string) *FileRecord {
	rec := NewFileRecord(path, extension)
	rec.FatalError = message
	return rec
}

// InternalDependencies returns the refs that point inside the project tree.
func (r *FileRecord) InternalDependencies() []DependencyRef {
	refs := make([]DependencyRef, 0, len(r.Dependencies))
	for _, dep := range r.Dependencies {
		if !dep.IsExternal {
			refs = append(refs, dep)
		}
	}
	return refs
}

// AnalysisStats summarizes one analysis run for reporting.
type AnalysisStats struct {
	FilesProcessed int           `json:"files_processed"`
	FunctionCount  int           `json:"function_count"`
	ClassCount     int           `json:"class_count"`
	ComponentCount int           `json:"component_count"`
	ParseErrors    int           `json:"parse_errors"`
	FatalFiles     int           `json:"fatal_files"`
	Elapsed        time.Duration `json:"-"`
}

// CollectStats aggregates counters over a record list.
func CollectStats(records []FileRecord) *AnalysisStats {
	stats := &AnalysisStats{FilesProcessed: len(records)}
	for i := range records {
		rec := &records[i]
		stats.FunctionCount += len(rec.Functions)
		stats.ClassCount += len(rec.Classes)
		stats.ComponentCount += len(rec.Components)
		stats.ParseErrors += len(rec.ParseErrors)
		if rec.FatalError != "" {
			stats.FatalFiles++
		}
	}
	return stats
}
