package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfcmap/sfcmap/pkg/analyzer"
	"github.com/sfcmap/sfcmap/pkg/parser"
)

func sampleReport() *Report {
	comp := NewFileAnalysis("src/Button.vue", parser.FileKindComponent)
	comp.Imports = []analyzer.ImportItem{{ImportedItem: "ref", Source: "vue"}}
	comp.TemplateTags = []string{"button", "span"}
	comp.Props = []analyzer.PropItem{{Name: "label", Type: "string", Required: true}}
	comp.Selectors = []analyzer.Selector{{Type: analyzer.SelectorClass, Name: ".btn"}}

	mod := NewFileAnalysis("src/util.ts", parser.FileKindModule)
	mod.Imports = []analyzer.ImportItem{{ImportedItem: "axios", Source: "axios"}}
	mod.Exports.Functions = []string{"fetchData"}
	mod.Exports.Constants = []string{"BASE_URL"}

	return &Report{
		Root:        "/work/app",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Stats:       Stats{FilesDiscovered: 2, FilesAnalyzed: 2},
		Files:       []FileAnalysis{*comp, *mod},
	}
}

func TestNewFileAnalysis_Defaults(t *testing.T) {
	comp := NewFileAnalysis("a.vue", parser.FileKindComponent)
	assert.NotNil(t, comp.Imports)
	assert.NotNil(t, comp.TemplateTags)
	assert.NotNil(t, comp.Props)
	assert.NotNil(t, comp.Selectors)
	assert.Nil(t, comp.Exports, "component records carry no export section")

	mod := NewFileAnalysis("a.ts", parser.FileKindModule)
	require.NotNil(t, mod.Exports)
	assert.NotNil(t, mod.Exports.Functions)
}

func TestReport_JSONRoundTrip(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf, FormatJSON))

	loaded, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, rep.Root, loaded.Root)
	require.Len(t, loaded.Files, 2)
	assert.Equal(t, rep.Files[0], loaded.Files[0])
	assert.Equal(t, rep.Files[1], loaded.Files[1])
}

func TestReport_ListFieldsAlwaysPresentInJSON(t *testing.T) {
	rep := &Report{Files: []FileAnalysis{*NewFileAnalysis("empty.vue", parser.FileKindComponent)}}

	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf, FormatJSON))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	files := raw["files"].([]any)
	entry := files[0].(map[string]any)

	for _, key := range []string{"imports", "templateTags", "props", "selectors"} {
		v, ok := entry[key]
		require.True(t, ok, "key %q must be present", key)
		assert.NotNil(t, v, "key %q must encode as [] not null", key)
	}
	_, hasExports := entry["exports"]
	assert.False(t, hasExports, "component entries omit the exports section")
}

func TestReport_SaveAndLoad(t *testing.T) {
	rep := sampleReport()
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, rep.Save(path, FormatJSON))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rep.Files, loaded.Files)
}

func TestReport_YAMLWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Write(&buf, FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "path: src/Button.vue")
	assert.Contains(t, out, "kind: component")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
		} else {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got)
		}
	}
}
