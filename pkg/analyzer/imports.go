package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ClassifyImports emits one ImportItem per binding introduced by the
// module's import declarations: named, default, and namespace imports all
// count, renamed imports use the local name. Side-effect imports introduce
// no bindings and yield nothing.
func ClassifyImports(root *ts.Node, source []byte) []ImportItem {
	items := make([]ImportItem, 0)
	if root == nil {
		return items
	}

	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "import_statement" {
			continue
		}

		spec := ""
		if src := stmt.ChildByFieldName("source"); src != nil {
			spec = strings.Trim(src.Utf8Text(source), "\"'`")
		}

		clause := namedChildOfKind(stmt, "import_clause")
		if clause == nil {
			continue
		}
		items = append(items, clauseBindings(clause, spec, source)...)
	}
	return items
}

// clauseBindings expands an import clause into its individual bindings.
func clauseBindings(clause *ts.Node, spec string, source []byte) []ImportItem {
	var items []ImportItem
	for i := uint(0); i < uint(clause.NamedChildCount()); i++ {
		c := clause.NamedChild(i)
		switch c.Kind() {
		case "identifier":
			// import Foo from 'mod'
			items = append(items, ImportItem{ImportedItem: c.Utf8Text(source), Source: spec})

		case "namespace_import":
			// import * as ns from 'mod'
			if id := namedChildOfKind(c, "identifier"); id != nil {
				items = append(items, ImportItem{ImportedItem: id.Utf8Text(source), Source: spec})
			}

		case "named_imports":
			// import { a, b as c } from 'mod'
			for j := uint(0); j < uint(c.NamedChildCount()); j++ {
				sp := c.NamedChild(j)
				if sp.Kind() != "import_specifier" {
					continue
				}
				local := sp.ChildByFieldName("alias")
				if local == nil {
					local = sp.ChildByFieldName("name")
				}
				if local != nil {
					items = append(items, ImportItem{ImportedItem: local.Utf8Text(source), Source: spec})
				}
			}
		}
	}
	return items
}

func namedChildOfKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}
