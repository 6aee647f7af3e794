package parsers

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/sightline-dev/sightline/internal/ir"
)

// scriptLanguage picks the grammar for a script-family extension. The TSX
// grammar handles inline component markup; the plain TypeScript grammar
// covers .js and .ts.
func scriptLanguage(ext string) *sitter.Language {
	switch ext {
	case ".jsx", ".tsx":
		return sitter.NewLanguage(typescript.LanguageTSX())
	default:
		return sitter.NewLanguage(typescript.LanguageTypescript())
	}
}

// parseScript extracts structure from a script-family file. Dependencies are
// scanned from raw text (see deps.go); functions, classes, components, and
// exports come from the AST. Grammar trouble degrades to ParseErrors.
func parseScript(rec *ir.FileRecord, content []byte) {
	extractScriptDependencies(rec, content)

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(scriptLanguage(rec.Extension))

	tree := parser.Parse(content, nil)
	if tree == nil {
		rec.ParseErrors = append(rec.ParseErrors, ir.ParseError{
			Message: "script grammar produced no tree",
			Line:    1,
		})
		return
	}
	defer tree.Close()

	root := tree.RootNode()
	collectSyntaxErrors(root, rec, "script")

	extractScriptStructure(root, content, rec)
	detectComponents(rec)
}

// extractScriptStructure walks the AST and records functions, classes, and
// exports. Declarations nested inside export statements are picked up by
// their own cases since the walk descends into every node.
func extractScriptStructure(root *sitter.Node, source []byte, rec *ir.FileRecord) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_declaration", "generator_function_declaration":
			extractFunctionDeclaration(n, source, rec)
		case "class_declaration":
			extractClass(n, source, rec)
		case "lexical_declaration", "variable_declaration":
			extractVariableFunctions(n, source, rec)
		case "export_statement":
			extractExport(n, source, rec)
		}
		return true
	})
}

// extractFunctionDeclaration records a named function declaration.
func extractFunctionDeclaration(node *sitter.Node, source []byte, rec *ir.FileRecord) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	rec.Functions = append(rec.Functions, ir.FunctionRef{
		Name:        nodeText(nameNode, source),
		Kind:        ir.FuncDeclaration,
		Parameters:  extractParameters(node.ChildByFieldName("parameters"), source),
		Line:        startLine(node),
		EndLine:     endLine(node),
		IsAsync:     hasChildToken(node, "async"),
		IsGenerator: node.Kind() == "generator_function_declaration" || hasChildToken(node, "*"),
	})
}

// extractVariableFunctions records variables initialized to a function or
// arrow expression; the variable name becomes the function name.
func extractVariableFunctions(node *sitter.Node, source []byte, rec *ir.FileRecord) {
	for _, decl := range findChildrenByKind(node, "variable_declarator") {
		nameNode := decl.ChildByFieldName("name")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil || nameNode.Kind() != "identifier" {
			continue
		}

		var kind ir.FunctionKind
		switch valueNode.Kind() {
		case "arrow_function":
			kind = ir.FuncArrow
		case "function_expression", "function", "generator_function":
			kind = ir.FuncExpression
		default:
			continue
		}

		params := extractParameters(valueNode.ChildByFieldName("parameters"), source)
		if len(params) == 0 {
			// Single-parameter arrows may omit parens: const f = x => x
			if p := valueNode.ChildByFieldName("parameter"); p != nil {
				params = []string{nodeText(p, source)}
			}
		}

		rec.Functions = append(rec.Functions, ir.FunctionRef{
			Name:        nodeText(nameNode, source),
			Kind:        kind,
			Parameters:  params,
			Line:        startLine(decl),
			EndLine:     endLine(decl),
			IsAsync:     hasChildToken(valueNode, "async"),
			IsGenerator: valueNode.Kind() == "generator_function" || hasChildToken(valueNode, "*"),
		})
	}
}

// extractParameters returns parameter identifier names, or the parameter
// node's kind for destructuring and other non-identifier patterns.
func extractParameters(paramsNode *sitter.Node, source []byte) []string {
	params := []string{}
	if paramsNode == nil {
		return params
	}

	for i := 0; i < int(paramsNode.ChildCount()); i++ {
		child := paramsNode.Child(uint(i))
		switch child.Kind() {
		case "identifier":
			params = append(params, nodeText(child, source))
		case "required_parameter", "optional_parameter":
			// TypeScript wraps the pattern; unwrap one level.
			pattern := child.ChildByFieldName("pattern")
			if pattern == nil {
				continue
			}
			if pattern.Kind() == "identifier" {
				params = append(params, nodeText(pattern, source))
			} else {
				params = append(params, pattern.Kind())
			}
		case "rest_pattern", "object_pattern", "array_pattern", "assignment_pattern":
			params = append(params, child.Kind())
		}
	}
	return params
}

// extractClass records a class declaration with its superclass source name.
func extractClass(node *sitter.Node, source []byte, rec *ir.FileRecord) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	rec.Classes = append(rec.Classes, ir.ClassRef{
		Name:           nodeText(nameNode, source),
		SuperclassName: extractSuperclass(node, source),
		Line:           startLine(node),
		EndLine:        endLine(node),
	})
}

// extractSuperclass pulls the extends expression out of a class heritage
// clause. Member accesses keep their full text (React.Component).
func extractSuperclass(classNode *sitter.Node, source []byte) string {
	heritage := findChildByKind(classNode, "class_heritage")
	if heritage == nil {
		return ""
	}

	var super string
	walkTree(heritage, func(n *sitter.Node) bool {
		if super != "" {
			return false
		}
		switch n.Kind() {
		case "member_expression", "identifier":
			super = nodeText(n, source)
			return false
		}
		return true
	})
	return super
}

// extractExport records default and named exports. The wrapped declarations
// themselves are captured by the structural walk, not here.
func extractExport(node *sitter.Node, source []byte, rec *ir.FileRecord) {
	isDefault := hasChildToken(node, "default")
	line := startLine(node)

	kind := ir.ExportNamed
	if isDefault {
		kind = ir.ExportDefault
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "function_declaration", "generator_function_declaration", "class_declaration":
			name := nodeText(child.ChildByFieldName("name"), source)
			if name == "" {
				name = "default"
			}
			rec.Exports = append(rec.Exports, ir.ExportRef{Kind: kind, Name: name, Line: line})
			return
		case "lexical_declaration", "variable_declaration":
			for _, decl := range findChildrenByKind(child, "variable_declarator") {
				if nameNode := decl.ChildByFieldName("name"); nameNode != nil {
					rec.Exports = append(rec.Exports, ir.ExportRef{
						Kind: ir.ExportNamed,
						Name: nodeText(nameNode, source),
						Line: line,
					})
				}
			}
			return
		case "export_clause":
			for _, spec := range findChildrenByKind(child, "export_specifier") {
				name := nodeText(spec.ChildByFieldName("alias"), source)
				if name == "" {
					name = nodeText(spec.ChildByFieldName("name"), source)
				}
				if name != "" {
					rec.Exports = append(rec.Exports, ir.ExportRef{
						Kind: ir.ExportNamed,
						Name: name,
						Line: startLine(spec),
					})
				}
			}
			return
		case "identifier":
			if isDefault {
				rec.Exports = append(rec.Exports, ir.ExportRef{
					Kind: ir.ExportDefault,
					Name: nodeText(child, source),
					Line: line,
				})
				return
			}
		}
	}

	if isDefault {
		// export default <anonymous expression>
		rec.Exports = append(rec.Exports, ir.ExportRef{Kind: ir.ExportDefault, Name: "default", Line: line})
	}
}

// detectComponents applies the capital-letter convention over the captured
// functions and classes. Props is an existence flag only.
func detectComponents(rec *ir.FileRecord) {
	for _, fn := range rec.Functions {
		if !startsUpper(fn.Name) {
			continue
		}
		props := []string{}
		if len(fn.Parameters) > 0 {
			props = []string{"props"}
		}
		rec.Components = append(rec.Components, ir.ComponentRef{
			Name:  fn.Name,
			Kind:  ir.ComponentFunctional,
			Line:  fn.Line,
			Props: props,
		})
	}

	for _, cls := range rec.Classes {
		if !isComponentBase(cls.SuperclassName) {
			continue
		}
		rec.Components = append(rec.Components, ir.ComponentRef{
			Name:  cls.Name,
			Kind:  ir.ComponentClass,
			Line:  cls.Line,
			Props: []string{},
		})
	}
}

// isComponentBase matches a superclass against the component base identifiers
// by name or .Component-style member access.
func isComponentBase(super string) bool {
	if super == "" {
		return false
	}
	return super == "Component" || super == "PureComponent" ||
		strings.HasSuffix(super, ".Component") || strings.HasSuffix(super, ".PureComponent")
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
