package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List analyzed files, optionally filtered by kind (component or module)"),
		mcp.WithString("kind",
			mcp.Description("Filter by file kind: 'component' or 'module'. Omit for all files."),
		),
	)
}

func getFileAnalysisTool() mcp.Tool {
	return mcp.NewTool("get_file_analysis",
		mcp.WithDescription("Full analysis record for one file: imports, exports, props, template tags, selectors"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Root-relative slash path as shown by list_files"),
		),
	)
}

func searchImportsTool() mcp.Tool {
	return mcp.NewTool("search_imports",
		mcp.WithDescription("Find files that import from a given module (case-insensitive substring match on import sources)"),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module source to search for, e.g. 'vue' or '@/components'"),
		),
	)
}

func tagUsageTool() mcp.Tool {
	return mcp.NewTool("tag_usage",
		mcp.WithDescription("Template tag usage counts across all components, most used first"),
	)
}
