// Package scanner discovers component and module files under a root
// directory and orchestrates their analysis into a report.
package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"
	"golang.org/x/net/html"

	"github.com/sfcmap/sfcmap/pkg/parser"
	"github.com/sfcmap/sfcmap/pkg/sfc"
)

// ScanConfig controls file discovery and worker sizing.
type ScanConfig struct {
	// Include glob patterns, doublestar syntax, relative to the scan root.
	Include []string
	// Exclude glob patterns; matching directories are skipped whole.
	Exclude []string
	// Workers overrides the analysis worker count; 0 selects the
	// CPU-derived default shared with the parser pools.
	Workers int
}

// DefaultScanConfig covers component files plus every module extension the
// parser understands, and skips the usual build/dependency directories.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Include: []string{
			"**/*.vue",
			"**/*.ts",
			"**/*.tsx",
			"**/*.js",
			"**/*.jsx",
			"**/*.mts",
			"**/*.cts",
			"**/*.mjs",
			"**/*.cjs",
		},
		Exclude: []string{
			"node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			".nuxt/**",
			".output/**",
			"coverage/**",
			"**/*.test.*",
			"**/*.spec.*",
			"**/__tests__/**",
			"**/__mocks__/**",
		},
	}
}

// SourceParser is the parsing capability the orchestrators consume. The
// production implementation is parser.Manager; tests substitute failing
// stubs to exercise containment.
type SourceParser interface {
	ParseStrict(source []byte, lang parser.Language, tsx bool) (*ts.Tree, error)
}

// Decomposer splits component-file text into sections.
type Decomposer interface {
	Decompose(source []byte) (*sfc.File, error)
}

// TemplateParser turns template markup into a node tree.
type TemplateParser interface {
	ParseTemplate(content string) ([]*html.Node, error)
}

// FileReader supplies file contents; backed by the mmap file cache in
// production.
type FileReader interface {
	Get(path string) ([]byte, error)
}

// Adapters over the package-level sfc functions.

type sfcDecomposer struct{}

func (sfcDecomposer) Decompose(source []byte) (*sfc.File, error) {
	return sfc.Decompose(source)
}

type sfcTemplateParser struct{}

func (sfcTemplateParser) ParseTemplate(content string) ([]*html.Node, error) {
	return sfc.ParseTemplate(content)
}
