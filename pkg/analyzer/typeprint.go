package analyzer

import (
	"strconv"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// PrintType renders a type node as a canonical human-readable string.
//
// Recognized node kinds are printed structurally; anything else falls back
// to the node's verbatim source slice, so the printer is total over whatever
// the grammar hands it. Recursion depth is bounded by the type expression's
// nesting depth.
func PrintType(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "predefined_type":
		// number, string, boolean, void, any, unknown, never, object, symbol...
		return node.Utf8Text(source)

	case "array_type":
		elem := node.NamedChild(0)
		if elem == nil {
			return node.Utf8Text(source)
		}
		return PrintType(elem, source) + "[]"

	case "function_type":
		return printFunctionType(node, source)

	case "literal_type":
		return printLiteralType(node, source)

	case "type_identifier":
		return node.Utf8Text(source)

	case "generic_type":
		return printGenericType(node, source)

	case "union_type":
		members := flattenTypeMembers(node, "union_type")
		parts := make([]string, 0, len(members))
		for _, m := range members {
			parts = append(parts, PrintType(m, source))
		}
		return strings.Join(parts, " | ")

	case "intersection_type":
		members := flattenTypeMembers(node, "intersection_type")
		parts := make([]string, 0, len(members))
		for _, m := range members {
			parts = append(parts, PrintType(m, source))
		}
		return strings.Join(parts, " & ")

	case "object_type":
		return printObjectType(node, source)

	default:
		// Verbatim span: the universal escape hatch for unhandled kinds.
		return node.Utf8Text(source)
	}
}

// printFunctionType renders "(name: type, ...) => returnType". Parameters
// whose name or type cannot be resolved are omitted.
func printFunctionType(node *ts.Node, source []byte) string {
	var parts []string
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < uint(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if p.Kind() != "required_parameter" && p.Kind() != "optional_parameter" {
				continue
			}
			pattern := p.ChildByFieldName("pattern")
			anno := p.ChildByFieldName("type")
			if pattern == nil || anno == nil {
				continue
			}
			printed := typeFromAnnotation(anno, source)
			if printed == "" {
				continue
			}
			parts = append(parts, pattern.Utf8Text(source)+": "+printed)
		}
	}

	ret := ""
	if r := node.ChildByFieldName("return_type"); r != nil {
		ret = PrintType(r, source)
	}
	return "(" + strings.Join(parts, ", ") + ") => " + ret
}

// printLiteralType renders literal types in their canonical JSON-like form:
// strings quoted, numbers and booleans bare. Literals without a structured
// value fall back to the source slice.
func printLiteralType(node *ts.Node, source []byte) string {
	lit := node.NamedChild(0)
	if lit == nil {
		return node.Utf8Text(source)
	}
	switch lit.Kind() {
	case "string":
		return strconv.Quote(unquote(lit.Utf8Text(source)))
	case "number", "true", "false", "null", "undefined", "unary_expression":
		return lit.Utf8Text(source)
	default:
		return node.Utf8Text(source)
	}
}

// printGenericType renders Name<Arg1, Arg2>. A reference whose name is not a
// simple identifier falls back to the source slice.
func printGenericType(node *ts.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil || name.Kind() != "type_identifier" {
		return node.Utf8Text(source)
	}

	args := node.ChildByFieldName("type_arguments")
	if args == nil || uint(args.NamedChildCount()) == 0 {
		return name.Utf8Text(source)
	}

	parts := make([]string, 0, uint(args.NamedChildCount()))
	for i := uint(0); i < uint(args.NamedChildCount()); i++ {
		parts = append(parts, PrintType(args.NamedChild(i), source))
	}
	return name.Utf8Text(source) + "<" + strings.Join(parts, ", ") + ">"
}

// printObjectType renders "{ name: type; other?: type }". Members that are
// not named property signatures are skipped.
func printObjectType(node *ts.Node, source []byte) string {
	var parts []string
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		member := node.NamedChild(i)
		if member.Kind() != "property_signature" {
			continue
		}
		name := member.ChildByFieldName("name")
		if name == nil {
			continue
		}

		rendered := name.Utf8Text(source)
		if hasTokenChild(member, "?") {
			rendered += "?"
		}
		rendered += ": "
		if anno := member.ChildByFieldName("type"); anno != nil {
			rendered += typeFromAnnotation(anno, source)
		}
		parts = append(parts, rendered)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// flattenTypeMembers flattens the left-recursive binary tree the grammar
// builds for multi-member unions/intersections into its leaf types.
func flattenTypeMembers(node *ts.Node, kind string) []*ts.Node {
	if node == nil {
		return nil
	}
	if node.Kind() != kind {
		return []*ts.Node{node}
	}
	var members []*ts.Node
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		members = append(members, flattenTypeMembers(node.NamedChild(i), kind)...)
	}
	return members
}

// typeFromAnnotation unwraps a type_annotation node (": T") and prints T.
func typeFromAnnotation(anno *ts.Node, source []byte) string {
	inner := anno.NamedChild(0)
	if inner == nil {
		return ""
	}
	return PrintType(inner, source)
}

// hasTokenChild reports whether node has an anonymous child token of the
// given kind, e.g. the "?" marking an optional property.
func hasTokenChild(node *ts.Node, kind string) bool {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if node.Child(i).Kind() == kind {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}
