package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfcmap/sfcmap/pkg/analyzer"
	"github.com/sfcmap/sfcmap/pkg/parser"
	"github.com/sfcmap/sfcmap/pkg/report"
)

func testServer() *Server {
	app := report.NewFileAnalysis("src/App.vue", parser.FileKindComponent)
	app.Imports = []analyzer.ImportItem{{ImportedItem: "ref", Source: "vue"}}
	app.TemplateTags = []string{"div", "header"}
	app.Props = []analyzer.PropItem{{Name: "title", Type: "string", Required: true}}

	button := report.NewFileAnalysis("src/Button.vue", parser.FileKindComponent)
	button.TemplateTags = []string{"button", "div"}

	api := report.NewFileAnalysis("src/api.ts", parser.FileKindModule)
	api.Imports = []analyzer.ImportItem{{ImportedItem: "axios", Source: "axios"}}
	api.Exports.Functions = []string{"getUser"}

	qs := report.NewQueryService(&report.Report{
		Root:  "/work/app",
		Files: []report.FileAnalysis{*app, *button, *api},
	})
	return NewServer(qs, "test", nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "list_files":
		handler = s.handleListFiles
	case "get_file_analysis":
		handler = s.handleGetFileAnalysis
	case "search_imports":
		handler = s.handleSearchImports
	case "tag_usage":
		handler = s.handleTagUsage
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

func TestHandleListFiles_All(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_files", nil))
	assert.False(t, result.IsError)

	var files []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &files))
	require.Len(t, files, 3)
	assert.Equal(t, "src/App.vue", files[0]["path"])
	assert.Equal(t, "component", files[0]["kind"])
	assert.Equal(t, float64(1), files[0]["imports"])
}

func TestHandleListFiles_KindFilter(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_files", map[string]any{"kind": "module"}))

	var files []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "src/api.ts", files[0]["path"])
}

func TestHandleListFiles_BadKind(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_files", map[string]any{"kind": "widget"}))
	assert.True(t, result.IsError)
}

func TestHandleGetFileAnalysis(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_file_analysis", map[string]any{"path": "src/App.vue"}))
	assert.False(t, result.IsError)

	var fa map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &fa))
	assert.Equal(t, "src/App.vue", fa["path"])
	props := fa["props"].([]any)
	require.Len(t, props, 1)
	assert.Equal(t, "title", props[0].(map[string]any)["name"])
}

func TestHandleGetFileAnalysis_NotFound(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_file_analysis", map[string]any{"path": "src/Nope.vue"}))
	assert.True(t, result.IsError)
}

func TestHandleGetFileAnalysis_MissingArg(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_file_analysis", nil))
	assert.True(t, result.IsError)
}

func TestHandleSearchImports(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_imports", map[string]any{"module": "vue"}))
	assert.False(t, result.IsError)

	var matches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "src/App.vue", matches[0]["path"])
}

func TestHandleTagUsage(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("tag_usage", nil))
	assert.False(t, result.IsError)

	var usage []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &usage))
	require.Len(t, usage, 3)
	assert.Equal(t, "div", usage[0]["tag"])
	assert.Equal(t, float64(2), usage[0]["count"])
}
