package analyzer

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// defaultExportName stands in for anonymous default exports.
const defaultExportName = "default"

// ClassifyExports walks a module's top-level statements once and buckets
// each exported declaration into functions, constants, types, or classes.
// Non-export statements are ignored.
func ClassifyExports(root *ts.Node, source []byte) *ExportAnalysis {
	ea := NewExportAnalysis()
	if root == nil {
		return ea
	}

	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "export_statement" {
			continue
		}
		isDefault := hasTokenChild(stmt, "default")

		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			classifyDeclaration(decl, source, ea, isDefault)
			continue
		}
		if isDefault {
			if val := stmt.ChildByFieldName("value"); val != nil {
				classifyDefaultValue(val, source, ea)
			}
		}
	}
	return ea
}

// classifyDeclaration dispatches on the declaration node kind. Each arm
// appends declared names in source order.
func classifyDeclaration(decl *ts.Node, source []byte, ea *ExportAnalysis, isDefault bool) {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration", "function_signature":
		if name := decl.ChildByFieldName("name"); name != nil {
			ea.Functions = append(ea.Functions, name.Utf8Text(source))
		} else if isDefault {
			ea.Functions = append(ea.Functions, defaultExportName)
		}

	case "lexical_declaration", "variable_declaration":
		for i := uint(0); i < uint(decl.NamedChildCount()); i++ {
			d := decl.NamedChild(i)
			if d.Kind() != "variable_declarator" {
				continue
			}
			name := d.ChildByFieldName("name")
			if name == nil {
				continue
			}
			value := d.ChildByFieldName("value")
			if value != nil && isFunctionValue(value.Kind()) {
				ea.Functions = append(ea.Functions, name.Utf8Text(source))
			} else {
				ea.Constants = append(ea.Constants, name.Utf8Text(source))
			}
		}

	case "type_alias_declaration", "interface_declaration":
		if name := decl.ChildByFieldName("name"); name != nil {
			ea.Types = append(ea.Types, name.Utf8Text(source))
		}

	case "class_declaration", "abstract_class_declaration":
		if name := decl.ChildByFieldName("name"); name != nil {
			ea.Classes = append(ea.Classes, name.Utf8Text(source))
		} else if isDefault {
			ea.Classes = append(ea.Classes, defaultExportName)
		}
	}
}

// classifyDefaultValue handles `export default <expression>`: function and
// class expressions land in their buckets under the name "default", a bare
// identifier reference lands in constants under its own name.
func classifyDefaultValue(val *ts.Node, source []byte, ea *ExportAnalysis) {
	switch val.Kind() {
	case "identifier":
		ea.Constants = append(ea.Constants, val.Utf8Text(source))
	case "arrow_function", "function_expression", "function", "generator_function":
		ea.Functions = append(ea.Functions, defaultExportName)
	case "class":
		if name := val.ChildByFieldName("name"); name != nil {
			ea.Classes = append(ea.Classes, name.Utf8Text(source))
		} else {
			ea.Classes = append(ea.Classes, defaultExportName)
		}
	}
}

func isFunctionValue(kind string) bool {
	switch kind {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}
