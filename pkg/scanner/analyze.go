package scanner

import (
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/sfcmap/sfcmap/pkg/analyzer"
	"github.com/sfcmap/sfcmap/pkg/parser"
	"github.com/sfcmap/sfcmap/pkg/report"
	"github.com/sfcmap/sfcmap/pkg/sfc"
)

// Analyzer orchestrates per-file analysis. Its collaborators are injected
// rather than reached through package globals, so failure behavior is
// testable and there is no ambient debug state.
type Analyzer struct {
	parser    SourceParser
	decompose Decomposer
	templates TemplateParser
	reader    FileReader
	logger    *slog.Logger

	// failures counts contained per-file failures, for scan stats.
	failures atomic.Int64
}

// NewAnalyzer wires an Analyzer with the production collaborators.
func NewAnalyzer(pm SourceParser, reader FileReader, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		parser:    pm,
		decompose: sfcDecomposer{},
		templates: sfcTemplateParser{},
		reader:    reader,
		logger:    logger,
	}
}

// AnalyzeFile dispatches on the path's file kind. Unknown kinds return nil.
func (a *Analyzer) AnalyzeFile(path string) *report.FileAnalysis {
	switch parser.DetectFileKind(path) {
	case parser.FileKindComponent:
		return a.AnalyzeComponentFile(path)
	case parser.FileKindModule:
		return a.AnalyzeModuleFile(path)
	default:
		return nil
	}
}

// AnalyzeComponentFile reads and decomposes a component file, then runs the
// template, style, and script analyses over its sections. Every failure —
// unreadable file, broken decomposition, unparseable script — is contained:
// logged once, and the file degrades to the all-empty record.
func (a *Analyzer) AnalyzeComponentFile(path string) *report.FileAnalysis {
	fa := report.NewFileAnalysis(path, parser.FileKindComponent)

	source, err := a.reader.Get(path)
	if err != nil {
		a.logger.Warn("component file unreadable", "path", path, "error", err)
		a.failures.Add(1)
		return fa
	}

	file, err := a.decompose.Decompose(source)
	if err != nil {
		a.logger.Warn("component decomposition failed", "path", path, "error", err)
		a.failures.Add(1)
		return fa
	}

	if file.Template != nil && strings.TrimSpace(file.Template.Content) != "" {
		nodes, err := a.templates.ParseTemplate(file.Template.Content)
		if err != nil {
			a.logger.Warn("template parse failed", "path", path, "error", err)
			a.failures.Add(1)
			return report.NewFileAnalysis(path, parser.FileKindComponent)
		}
		fa.TemplateTags = sfc.CollectTags(nodes)
	}

	if len(file.Styles) > 0 {
		blocks := make([]string, 0, len(file.Styles))
		for _, s := range file.Styles {
			blocks = append(blocks, s.Content)
		}
		fa.Selectors = analyzer.ClassifySelectors(blocks)
	}

	if script := activeScript(file); script != nil {
		lang := parser.ScriptLanguage(script.Lang)
		if lang == parser.LanguageUnknown {
			a.logger.Warn("unsupported script lang attribute", "path", path, "lang", script.Lang)
			a.failures.Add(1)
			return report.NewFileAnalysis(path, parser.FileKindComponent)
		}
		scriptSource := []byte(script.Content)
		tree, err := a.parser.ParseStrict(scriptSource, lang, parser.ScriptNeedsTSX(script.Lang))
		if err != nil {
			a.logger.Warn("script parse failed", "path", path, "error", err)
			a.failures.Add(1)
			return report.NewFileAnalysis(path, parser.FileKindComponent)
		}
		defer tree.Close()

		root := tree.RootNode()
		fa.Imports = analyzer.ClassifyImports(root, scriptSource)
		fa.Props = analyzer.ExtractProps(root, scriptSource)
	}

	return fa
}

// AnalyzeModuleFile parses a plain module file and classifies its imports
// and exports. Same containment policy as component analysis.
func (a *Analyzer) AnalyzeModuleFile(path string) *report.FileAnalysis {
	fa := report.NewFileAnalysis(path, parser.FileKindModule)

	source, err := a.reader.Get(path)
	if err != nil {
		a.logger.Warn("module file unreadable", "path", path, "error", err)
		a.failures.Add(1)
		return fa
	}

	lang := parser.DetectLanguage(path)
	tree, err := a.parser.ParseStrict(source, lang, parser.IsTSXFile(path))
	if err != nil {
		a.logger.Warn("module parse failed", "path", path, "error", err)
		a.failures.Add(1)
		return fa
	}
	defer tree.Close()

	root := tree.RootNode()
	fa.Imports = analyzer.ClassifyImports(root, source)
	fa.Exports = analyzer.ClassifyExports(root, source)
	return fa
}

// activeScript picks the first non-empty of the script and script-setup
// sections.
func activeScript(file *sfc.File) *sfc.Block {
	for _, b := range []*sfc.Block{file.Script, file.ScriptSetup} {
		if b != nil && strings.TrimSpace(b.Content) != "" {
			return b
		}
	}
	return nil
}

// Failures returns the number of contained per-file failures so far.
func (a *Analyzer) Failures() int64 {
	return a.failures.Load()
}
