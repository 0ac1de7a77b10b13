package analyzer

import (
	"testing"

	ts "github.com/tree-sitter/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// aliasedType parses `type T = <expr>;` and returns the value node of the
// alias, i.e. the type expression under test.
func aliasedType(t *testing.T, typeExpr string) (*ts.Node, []byte) {
	t.Helper()

	source := "type T = " + typeExpr + ";"
	root := parseTS(t, source)

	alias := root.NamedChild(0)
	require.NotNil(t, alias)
	require.Equal(t, "type_alias_declaration", alias.Kind())

	value := alias.ChildByFieldName("value")
	require.NotNil(t, value, "alias should have a value node")
	return value, []byte(source)
}

func TestPrintType(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"predefined", "string", "string"},
		{"predefined number", "number", "number"},
		{"array", "string[]", "string[]"},
		{"nested array", "number[][]", "number[][]"},
		{"type reference", "MouseEvent", "MouseEvent"},
		{"generic", "Array<string>", "Array<string>"},
		{"nested generic", "Map<string, number[]>", "Map<string, number[]>"},
		{"string literal union", "'small' | 'large'", `"small" | "large"`},
		{"mixed union", "string | null | undefined", "string | null | undefined"},
		{"number literal", "42", "42"},
		{"negative literal", "-1", "-1"},
		{"boolean literal", "true", "true"},
		{"intersection", "Base & Extra", "Base & Extra"},
		{"object type", "{ label: string; count?: number }", "{ label: string; count?: number }"},
		{"nested object", "{ pos: { x: number; y: number } }", "{ pos: { x: number; y: number } }"},
		{"function type", "(e: MouseEvent) => void", "(e: MouseEvent) => void"},
		{"zero-arg function", "() => string", "() => string"},
		{"multi-arg function", "(a: string, b: number) => boolean", "(a: string, b: number) => boolean"},
		{"union of objects", "{ a: string } | { b: number }", "{ a: string } | { b: number }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, source := aliasedType(t, tc.expr)
			assert.Equal(t, tc.want, PrintType(node, source))
		})
	}
}

func TestPrintType_MultiMemberUnionStaysFlat(t *testing.T) {
	// The grammar parses a | b | c as nested binaries; the printed form
	// must not carry parentheses or nesting artifacts.
	node, source := aliasedType(t, "'a' | 'b' | 'c' | 'd'")
	assert.Equal(t, `"a" | "b" | "c" | "d"`, PrintType(node, source))
}

func TestPrintType_FallbackIsVerbatim(t *testing.T) {
	// Unhandled kinds print their source span instead of failing.
	node, source := aliasedType(t, "keyof Config")
	assert.Equal(t, "keyof Config", PrintType(node, source))

	tuple, tupleSource := aliasedType(t, "[string, number]")
	assert.Equal(t, "[string, number]", PrintType(tuple, tupleSource))
}

func TestPrintType_NilNode(t *testing.T) {
	assert.Equal(t, "", PrintType(nil, nil))
}
