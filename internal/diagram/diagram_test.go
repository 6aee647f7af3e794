package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightline-dev/sightline/internal/ir"
)

// Test Plan for Projection Dispatch and Record-Backed Kinds:
// - Every kind with empty input emits a placeholder that validates
// - Component nodes key on file path plus component name
// - Component edges over-approximate via substring containment
// - Function-call diagrams cap nodes and link entry-like functions
// - Complexity styling separates low and high buckets
// - Class diagrams attribute methods by line span and draw inheritance
// - Sequence diagrams chain participants after a synthetic User
// - Unknown kinds and kind parsing behave predictably

func TestProject_EmptyInputPlaceholders(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds {
		text, err := Project(kind, Source{}, Options{})
		require.NoError(t, err, "kind %s", kind)
		require.NotEmpty(t, text, "kind %s", kind)

		result := Validate(text)
		assert.True(t, result.IsValid, "kind %s: %v", kind, result.Errors)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseKind("dependency-flow")
	require.NoError(t, err)
	assert.Equal(t, KindDependencyFlow, kind)

	_, err = ParseKind("pie-chart")
	assert.Error(t, err)
}

func TestComponent_NodesAndEdges(t *testing.T) {
	t.Parallel()

	header := ir.NewFileRecord("src/Header.jsx", ".jsx")
	header.Components = []ir.ComponentRef{{Name: "Header", Kind: ir.ComponentFunctional, Props: []string{"props"}}}

	app := ir.NewFileRecord("src/App.jsx", ".jsx")
	app.Components = []ir.ComponentRef{{Name: "App", Kind: ir.ComponentFunctional}}
	app.Dependencies = []ir.DependencyRef{{Kind: ir.DepImport, Target: "./Header"}}

	text := Component([]ir.FileRecord{*app, *header}, DefaultOptions())

	assert.Contains(t, text, `src_App_jsx_App["App"]`)
	assert.Contains(t, text, `src_Header_jsx_Header["Header"]`)
	assert.Contains(t, text, "src_App_jsx_App --> src_Header_jsx_Header")
	assert.True(t, Validate(text).IsValid)
}

func TestComponent_ClassShape(t *testing.T) {
	t.Parallel()

	rec := ir.NewFileRecord("src/Widget.jsx", ".jsx")
	rec.Components = []ir.ComponentRef{{Name: "Widget", Kind: ir.ComponentClass}}

	text := Component([]ir.FileRecord{*rec}, DefaultOptions())
	assert.Contains(t, text, `src_Widget_jsx_Widget[["Widget"]]`)
}

func TestFunctionCall_EntryLinking(t *testing.T) {
	t.Parallel()

	rec := ir.NewFileRecord("src/app.js", ".js")
	rec.Functions = []ir.FunctionRef{
		{Name: "helper", Line: 1, EndLine: 2},
		{Name: "main", Line: 4, EndLine: 6},
		{Name: "render", Line: 8, EndLine: 9},
	}

	text := FunctionCall([]ir.FileRecord{*rec}, DefaultOptions())

	assert.Contains(t, text, `src_app_js_main["main()"]`)
	assert.Contains(t, text, "src_app_js_main --> src_app_js_helper")
	assert.Contains(t, text, "src_app_js_main --> src_app_js_render")
	assert.True(t, Validate(text).IsValid)
}

func TestFunctionCall_NodeCap(t *testing.T) {
	t.Parallel()

	rec := ir.NewFileRecord("src/big.js", ".js")
	for i := 0; i < 30; i++ {
		rec.Functions = append(rec.Functions, ir.FunctionRef{
			Name: "fn" + string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Line: i + 1,
		})
	}

	text := FunctionCall([]ir.FileRecord{*rec}, DefaultOptions())
	assert.Equal(t, maxFunctionNodes, strings.Count(text, "class src_big_js_fn"))
}

func TestFunctionCall_ComplexityBuckets(t *testing.T) {
	t.Parallel()

	rec := ir.NewFileRecord("src/mix.js", ".js")
	rec.Functions = []ir.FunctionRef{
		{Name: "tiny", Line: 1, EndLine: 2},
		{Name: "huge", Line: 10, EndLine: 40, Parameters: []string{"a", "b", "c"}},
	}

	text := FunctionCall([]ir.FileRecord{*rec}, DefaultOptions())
	assert.Contains(t, text, "class src_mix_js_tiny lowComplexity")
	assert.Contains(t, text, "class src_mix_js_huge highComplexity")
}

func TestClass_MethodsAndInheritance(t *testing.T) {
	t.Parallel()

	rec := ir.NewFileRecord("src/model.js", ".js")
	rec.Classes = []ir.ClassRef{
		{Name: "Animal", Line: 1, EndLine: 10},
		{Name: "Dog", SuperclassName: "Animal", Line: 12, EndLine: 20},
	}
	rec.Functions = []ir.FunctionRef{
		{Name: "speak", Line: 3},
		{Name: "bark", Line: 14},
		{Name: "unrelated", Line: 40},
	}

	text := Class([]ir.FileRecord{*rec})

	require.True(t, strings.HasPrefix(text, "classDiagram"))
	assert.Contains(t, text, "class Animal {")
	assert.Contains(t, text, "+speak()")
	assert.Contains(t, text, "class Dog {")
	assert.Contains(t, text, "+bark()")
	assert.NotContains(t, text, "unrelated")
	assert.Contains(t, text, "Animal <|-- Dog")
	assert.True(t, Validate(text).IsValid)
}

func TestClass_FallbackSpan(t *testing.T) {
	t.Parallel()

	// No recorded end line: methods within 100 lines attribute to the class.
	rec := ir.NewFileRecord("src/legacy.js", ".js")
	rec.Classes = []ir.ClassRef{{Name: "Legacy", Line: 1}}
	rec.Functions = []ir.FunctionRef{
		{Name: "near", Line: 50},
		{Name: "far", Line: 200},
	}

	text := Class([]ir.FileRecord{*rec})
	assert.Contains(t, text, "+near()")
	assert.NotContains(t, text, "far")
}

func TestSequence_ChainAndUser(t *testing.T) {
	t.Parallel()

	app := ir.NewFileRecord("src/App.jsx", ".jsx")
	app.Components = []ir.ComponentRef{{Name: "App"}, {Name: "Sidebar"}}
	card := ir.NewFileRecord("src/Card.jsx", ".jsx")
	card.Components = []ir.ComponentRef{{Name: "Card"}}

	text := Sequence([]ir.FileRecord{*app, *card})

	require.True(t, strings.HasPrefix(text, "sequenceDiagram"))
	assert.Contains(t, text, "participant User")
	assert.Contains(t, text, "User->>App: interact")
	assert.Contains(t, text, "App->>Sidebar: update")
	assert.Contains(t, text, "Sidebar->>Card: update")
	assert.True(t, Validate(text).IsValid)
}

func TestSequence_ParticipantCap(t *testing.T) {
	t.Parallel()

	rec := ir.NewFileRecord("src/all.jsx", ".jsx")
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		rec.Components = append(rec.Components, ir.ComponentRef{Name: name})
	}

	text := Sequence([]ir.FileRecord{*rec})
	// User plus the capped five.
	assert.Equal(t, maxSequenceParticipants+1, strings.Count(text, "participant "))
	assert.NotContains(t, text, "participant F")
}

func TestOptions_Normalized(t *testing.T) {
	t.Parallel()

	opts := Options{Direction: "XX", MaxNodes: -1}.normalized()
	assert.Equal(t, "LR", opts.Direction)
	assert.Equal(t, 50, opts.MaxNodes)

	opts = Options{Direction: "BT", MaxNodes: 10}.normalized()
	assert.Equal(t, "BT", opts.Direction)
	assert.Equal(t, 10, opts.MaxNodes)
}
