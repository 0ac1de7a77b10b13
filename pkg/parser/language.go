package parser

import (
	"path/filepath"
	"strings"
)

// Language identifies a grammar used to parse script sources.
type Language int

const (
	// LanguageTypeScript covers .ts/.mts/.cts and typed component scripts.
	LanguageTypeScript Language = iota
	// LanguageJavaScript covers .js/.jsx/.mjs/.cjs.
	LanguageJavaScript
	// LanguageUnknown marks unsupported sources.
	LanguageUnknown
)

// String returns the lowercase language name.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// FileKind classifies a discovered file for analysis purposes.
type FileKind string

const (
	// FileKindComponent is a single-file component bundling template,
	// script, and style sections (.vue).
	FileKindComponent FileKind = "component"
	// FileKindModule is a plain script module (.ts, .js, ...).
	FileKindModule FileKind = "module"
	// FileKindUnknown is anything else; such files are not analyzed.
	FileKindUnknown FileKind = "unknown"
)

// DetectLanguage maps a script file extension to its grammar.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// DetectFileKind classifies a path as component file, module file, or neither.
func DetectFileKind(filePath string) FileKind {
	if strings.EqualFold(filepath.Ext(filePath), ".vue") {
		return FileKindComponent
	}
	if DetectLanguage(filePath) != LanguageUnknown {
		return FileKindModule
	}
	return FileKindUnknown
}

// IsTSXFile reports whether filePath needs the TSX grammar variant.
func IsTSXFile(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".tsx")
}

// ScriptLanguage maps a component script block's lang attribute to a grammar.
// Blocks without a lang attribute default to TypeScript: the typed grammar
// accepts plain JavaScript and keeps type annotations parseable.
func ScriptLanguage(langAttr string) Language {
	switch strings.ToLower(langAttr) {
	case "", "ts", "typescript":
		return LanguageTypeScript
	case "js", "javascript":
		return LanguageJavaScript
	case "tsx", "jsx":
		return LanguageTypeScript
	default:
		return LanguageUnknown
	}
}

// ScriptNeedsTSX reports whether a component script block's lang attribute
// requires the TSX grammar variant. JSX blocks also use it: the TSX grammar
// parses JSX expressions the plain TypeScript grammar rejects.
func ScriptNeedsTSX(langAttr string) bool {
	switch strings.ToLower(langAttr) {
	case "tsx", "jsx":
		return true
	default:
		return false
	}
}
