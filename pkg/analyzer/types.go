// Package analyzer distills parsed syntax trees into typed summaries:
// imports, exports, component props, and style selectors. Every function in
// this package is pure over the tree and source bytes it is given; parse
// failure containment lives with the callers in pkg/scanner.
package analyzer

// ImportItem records one imported binding. A statement importing three
// names yields three items. ImportedItem is the locally bound name after
// any rename; Source is the statement's module specifier.
type ImportItem struct {
	ImportedItem string `json:"importedItem" yaml:"importedItem"`
	Source       string `json:"source" yaml:"source"`
}

// ExportAnalysis buckets a module's top-level declared names. List order
// mirrors declaration order in the source. Names are not deduplicated
// across lists.
type ExportAnalysis struct {
	Functions []string `json:"functions" yaml:"functions"`
	Constants []string `json:"constants" yaml:"constants"`
	Types     []string `json:"types" yaml:"types"`
	Classes   []string `json:"classes" yaml:"classes"`
}

// NewExportAnalysis returns an ExportAnalysis with every list allocated, so
// consumers and serialized output never see a nil list.
func NewExportAnalysis() *ExportAnalysis {
	return &ExportAnalysis{
		Functions: make([]string, 0),
		Constants: make([]string, 0),
		Types:     make([]string, 0),
		Classes:   make([]string, 0),
	}
}

// PropItem is one declared component parameter. Type is the printed type
// annotation, absent when the declaration has none. Required is true unless
// the declaration marks the parameter optional.
type PropItem struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SelectorType categorizes a simple-selector token.
type SelectorType string

const (
	SelectorClass   SelectorType = "class"
	SelectorElement SelectorType = "element"
	SelectorPseudo  SelectorType = "pseudo"
	SelectorOther   SelectorType = "other"
)

// Selector pairs a raw selector token with its category. Within one file's
// analysis, Name values are unique.
type Selector struct {
	Type SelectorType `json:"type" yaml:"type"`
	Name string       `json:"name" yaml:"name"`
}
