package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// definePropsCallee is the declarative "define component parameters" call
// the extractor recognizes.
const definePropsCallee = "defineProps"

// withDefaultsCallee optionally wraps a defineProps call and supplies
// default values for its parameters.
const withDefaultsCallee = "withDefaults"

// ExtractProps finds every defineProps call carrying exactly one inline
// object-type generic argument and emits one PropItem per named property
// signature of that object type. Calls of any other shape — wrong callee,
// no type argument, a named type alias instead of an inline object — are
// skipped, not reported. A withDefaults wrapper contributes default values.
func ExtractProps(root *ts.Node, source []byte) []PropItem {
	props := make([]PropItem, 0)
	if root == nil {
		return props
	}

	var visit func(n *ts.Node)
	visit = func(n *ts.Node) {
		if n == nil {
			return
		}
		if n.Kind() == "call_expression" {
			switch calleeName(n, source) {
			case withDefaultsCallee:
				if items, ok := propsFromWithDefaults(n, source); ok {
					props = append(props, items...)
					return
				}
			case definePropsCallee:
				if obj := definePropsTypeArg(n, source); obj != nil {
					props = append(props, propsFromObjectType(obj, source)...)
					return
				}
			}
		}
		for i := uint(0); i < uint(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(root)

	return props
}

// calleeName returns the bare identifier a call invokes, "" for member or
// computed callees.
func calleeName(call *ts.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" {
		return ""
	}
	return fn.Utf8Text(source)
}

// definePropsTypeArg returns the inline object type of a defineProps call,
// or nil when the call does not match the recognized shape: exactly one
// generic type argument of object-type kind.
func definePropsTypeArg(call *ts.Node, source []byte) *ts.Node {
	targs := call.ChildByFieldName("type_arguments")
	if targs == nil || uint(targs.NamedChildCount()) != 1 {
		return nil
	}
	arg := targs.NamedChild(0)
	if arg.Kind() != "object_type" {
		return nil
	}
	return arg
}

// propsFromWithDefaults handles withDefaults(defineProps<{...}>(), {...}).
// Returns ok=false when the wrapped call is not a recognizable defineProps.
func propsFromWithDefaults(call *ts.Node, source []byte) ([]PropItem, bool) {
	args := call.ChildByFieldName("arguments")
	if args == nil || uint(args.NamedChildCount()) == 0 {
		return nil, false
	}
	inner := args.NamedChild(0)
	if inner.Kind() != "call_expression" || calleeName(inner, source) != definePropsCallee {
		return nil, false
	}
	obj := definePropsTypeArg(inner, source)
	if obj == nil {
		return nil, false
	}

	props := propsFromObjectType(obj, source)

	if uint(args.NamedChildCount()) >= 2 {
		defaults := objectLiteralValues(args.NamedChild(1), source)
		for i := range props {
			if def, ok := defaults[props[i].Name]; ok {
				props[i].Default = def
			}
		}
	}
	return props, true
}

// propsFromObjectType emits one PropItem per named property signature. A
// comment directly above a property becomes its description.
func propsFromObjectType(obj *ts.Node, source []byte) []PropItem {
	props := make([]PropItem, 0)
	pendingComment := ""

	for i := uint(0); i < uint(obj.NamedChildCount()); i++ {
		member := obj.NamedChild(i)

		if member.Kind() == "comment" {
			pendingComment = commentText(member.Utf8Text(source))
			continue
		}
		if member.Kind() != "property_signature" {
			pendingComment = ""
			continue
		}

		name := member.ChildByFieldName("name")
		if name == nil || name.Kind() != "property_identifier" {
			pendingComment = ""
			continue
		}

		item := PropItem{
			Name:        name.Utf8Text(source),
			Required:    !hasTokenChild(member, "?"),
			Description: pendingComment,
		}
		pendingComment = ""

		if anno := member.ChildByFieldName("type"); anno != nil {
			item.Type = typeFromAnnotation(anno, source)
		}
		props = append(props, item)
	}
	return props
}

// objectLiteralValues maps the keys of an object literal to the raw text of
// their values, string literals unquoted.
func objectLiteralValues(obj *ts.Node, source []byte) map[string]string {
	values := make(map[string]string)
	if obj == nil || obj.Kind() != "object" {
		return values
	}
	for i := uint(0); i < uint(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair.Kind() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		text := value.Utf8Text(source)
		if value.Kind() == "string" {
			text = unquote(text)
		}
		values[unquote(key.Utf8Text(source))] = text
	}
	return values
}

// commentText strips comment markers and JSDoc stars, keeping plain prose.
func commentText(comment string) string {
	comment = strings.TrimSpace(comment)
	switch {
	case strings.HasPrefix(comment, "//"):
		return strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	case strings.HasPrefix(comment, "/*"):
		comment = strings.TrimPrefix(comment, "/**")
		comment = strings.TrimPrefix(comment, "/*")
		comment = strings.TrimSuffix(comment, "*/")
	default:
		return ""
	}

	var parts []string
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
