package analyzer

import (
	"testing"

	ts "github.com/tree-sitter/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"github.com/sfcmap/sfcmap/pkg/parser"
)

// parseTS parses TypeScript source and returns the program root. The tree
// is closed via t.Cleanup so node lifetimes cover the whole test.
func parseTS(t *testing.T, source string) *ts.Node {
	t.Helper()

	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	tree, err := pm.Parse([]byte(source), parser.LanguageTypeScript, false)
	require.NoError(t, err, "Parse should succeed")
	require.NotNil(t, tree, "Tree should not be nil")
	t.Cleanup(tree.Close)

	root := tree.RootNode()
	require.Equal(t, "program", root.Kind(), "Root should be a program node")
	return root
}

// parseJS is parseTS for the JavaScript grammar.
func parseJS(t *testing.T, source string) *ts.Node {
	t.Helper()

	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	tree, err := pm.Parse([]byte(source), parser.LanguageJavaScript, false)
	require.NoError(t, err, "Parse should succeed")
	require.NotNil(t, tree, "Tree should not be nil")
	t.Cleanup(tree.Close)

	return tree.RootNode()
}
