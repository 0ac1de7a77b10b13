package report

import (
	"sort"
	"strings"

	"github.com/sfcmap/sfcmap/pkg/parser"
)

// QueryService provides read-only queries over a loaded report.
type QueryService struct {
	report *Report
	byPath map[string]*FileAnalysis
}

// NewQueryService indexes the report for lookup by path.
func NewQueryService(r *Report) *QueryService {
	byPath := make(map[string]*FileAnalysis, len(r.Files))
	for i := range r.Files {
		byPath[r.Files[i].Path] = &r.Files[i]
	}
	return &QueryService{report: r, byPath: byPath}
}

// LoadAndQuery loads a report file and returns a ready QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	r, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(r), nil
}

// Report returns the underlying report.
func (q *QueryService) Report() *Report {
	return q.report
}

// ListFiles returns the analyzed file paths, optionally filtered by kind
// ("component" or "module"; empty keeps everything). Order matches the report.
func (q *QueryService) ListFiles(kind string) []FileAnalysis {
	files := make([]FileAnalysis, 0, len(q.report.Files))
	for _, f := range q.report.Files {
		if kind != "" && f.Kind != parser.FileKind(kind) {
			continue
		}
		files = append(files, f)
	}
	return files
}

// GetFile looks up one file's analysis by its report-relative path.
func (q *QueryService) GetFile(path string) (*FileAnalysis, bool) {
	f, ok := q.byPath[path]
	return f, ok
}

// ImportersOf returns the files whose imports reference the given module
// specifier, matched case-insensitively as a substring. This is the reverse
// edge of the project's import graph.
func (q *QueryService) ImportersOf(module string) []FileAnalysis {
	module = strings.ToLower(module)
	out := make([]FileAnalysis, 0)
	for _, f := range q.report.Files {
		for _, imp := range f.Imports {
			if strings.Contains(strings.ToLower(imp.Source), module) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// TagCount pairs a template tag with the number of component files using it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagUsage aggregates template tag usage across all component files,
// most-used first, ties broken alphabetically.
func (q *QueryService) TagUsage() []TagCount {
	counts := make(map[string]int)
	for _, f := range q.report.Files {
		for _, tag := range f.TemplateTags {
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
