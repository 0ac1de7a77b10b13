// Package report defines the inventory produced by a scan and its
// serialized forms.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sfcmap/sfcmap/pkg/analyzer"
	"github.com/sfcmap/sfcmap/pkg/parser"
)

// FileAnalysis is the per-file inventory record. One record per discovered
// file; never mutated after construction.
//
// List fields are always allocated, so consumers need no nil checks.
// Exports is set only for module files; component files carry template
// tags, props, and selectors instead.
type FileAnalysis struct {
	Path         string                   `json:"path" yaml:"path"`
	Kind         parser.FileKind          `json:"kind" yaml:"kind"`
	Imports      []analyzer.ImportItem    `json:"imports" yaml:"imports"`
	TemplateTags []string                 `json:"templateTags" yaml:"templateTags"`
	Exports      *analyzer.ExportAnalysis `json:"exports,omitempty" yaml:"exports,omitempty"`
	Props        []analyzer.PropItem      `json:"props" yaml:"props"`
	Selectors    []analyzer.Selector      `json:"selectors" yaml:"selectors"`
}

// NewFileAnalysis returns the all-empty-defaults record for a file. Module
// files additionally get an empty ExportAnalysis, which is also the shape a
// contained per-file failure degrades to.
func NewFileAnalysis(path string, kind parser.FileKind) *FileAnalysis {
	fa := &FileAnalysis{
		Path:         path,
		Kind:         kind,
		Imports:      make([]analyzer.ImportItem, 0),
		TemplateTags: make([]string, 0),
		Props:        make([]analyzer.PropItem, 0),
		Selectors:    make([]analyzer.Selector, 0),
	}
	if kind == parser.FileKindModule {
		fa.Exports = analyzer.NewExportAnalysis()
	}
	return fa
}

// Stats records scan phase timing and counters.
type Stats struct {
	FilesDiscovered int   `json:"filesDiscovered" yaml:"filesDiscovered"`
	FilesAnalyzed   int   `json:"filesAnalyzed" yaml:"filesAnalyzed"`
	FilesFailed     int   `json:"filesFailed" yaml:"filesFailed"`
	CacheHits       int   `json:"cacheHits" yaml:"cacheHits"`
	DiscoveryTimeMs int64 `json:"discoveryTimeMs" yaml:"discoveryTimeMs"`
	AnalysisTimeMs  int64 `json:"analysisTimeMs" yaml:"analysisTimeMs"`
	TotalTimeMs     int64 `json:"totalTimeMs" yaml:"totalTimeMs"`
}

// Report is a full scan result: one FileAnalysis per discovered file, in
// discovery order.
type Report struct {
	Root        string         `json:"root" yaml:"root"`
	GeneratedAt time.Time      `json:"generatedAt" yaml:"generatedAt"`
	Stats       Stats          `json:"stats" yaml:"stats"`
	Files       []FileAnalysis `json:"files" yaml:"files"`
}

// Format names a report encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want json or yaml)", s)
	}
}

// Write encodes the report to w in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report json: %w", err)
		}
		return nil
	}
}

// Save writes the report to path, creating or truncating the file.
func (r *Report) Save(path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := r.Write(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a JSON report from path.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes decodes a JSON report.
func LoadBytes(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
