package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals v as indented JSON into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// fileSummary is the compact per-file shape returned by list_files;
// full records come from get_file_analysis.
type fileSummary struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Imports int    `json:"imports"`
	Props   int    `json:"props"`
	Tags    int    `json:"tags"`
}

func (s *Server) handleListFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := req.GetString("kind", "")
	if kind != "" && kind != "component" && kind != "module" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q: expected 'component' or 'module'", kind)), nil
	}

	files := s.query.ListFiles(kind)
	summaries := make([]fileSummary, 0, len(files))
	for _, fa := range files {
		summaries = append(summaries, fileSummary{
			Path:    fa.Path,
			Kind:    string(fa.Kind),
			Imports: len(fa.Imports),
			Props:   len(fa.Props),
			Tags:    len(fa.TemplateTags),
		})
	}
	return jsonResult(summaries)
}

func (s *Server) handleGetFileAnalysis(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fa, ok := s.query.GetFile(path)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no analysis for %q: check list_files for valid paths", path)), nil
	}
	return jsonResult(fa)
}

func (s *Server) handleSearchImports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, err := req.RequireString("module")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := s.query.ImportersOf(module)
	type importer struct {
		Path     string   `json:"path"`
		Imported []string `json:"imported"`
	}
	out := make([]importer, 0, len(matches))
	for _, fa := range matches {
		items := make([]string, 0, len(fa.Imports))
		for _, imp := range fa.Imports {
			items = append(items, imp.ImportedItem)
		}
		out = append(out, importer{Path: fa.Path, Imported: items})
	}
	return jsonResult(out)
}

func (s *Server) handleTagUsage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.query.TagUsage())
}
