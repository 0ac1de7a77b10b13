package mcplog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeParams(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		wantKeys []string
		skipKeys []string
	}{
		{
			name:     "nil map returns empty",
			input:    nil,
			wantKeys: nil,
		},
		{
			name:     "short string passes through",
			input:    map[string]any{"kind": "component"},
			wantKeys: []string{"kind"},
		},
		{
			name:     "long string replaced with length key",
			input:    map[string]any{"path": string(make([]byte, 200))},
			wantKeys: []string{"path_len"},
			skipKeys: []string{"path"},
		},
		{
			name:     "non-strings pass through",
			input:    map[string]any{"limit": 5, "deep": true},
			wantKeys: []string{"limit", "deep"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := SanitizeParams(tc.input)
			for _, k := range tc.wantKeys {
				assert.Contains(t, out, k)
			}
			for _, k := range tc.skipKeys {
				assert.NotContains(t, out, k)
			}
		})
	}
}

func TestResponseBytes_Nil(t *testing.T) {
	assert.Equal(t, 0, ResponseBytes(nil))
}

func TestNew_EmptyPathDisabled(t *testing.T) {
	logger, err := New("")
	require.NoError(t, err)
	assert.Nil(t, logger, "empty path means logging disabled")
}

func TestLoggerWriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tools.jsonl")

	logger, err := New(path)
	require.NoError(t, err)
	defer logger.Close()

	entries := []Entry{
		{Ts: time.Now().UTC().Format(time.RFC3339), Tool: "list_files", Params: map[string]any{}, DurationMs: 2, ResponseBytes: 120},
		{Ts: time.Now().UTC().Format(time.RFC3339), Tool: "search_imports", Params: map[string]any{"module": "vue"}, DurationMs: 1, ResponseBytes: 64},
	}
	for _, e := range entries {
		require.NoError(t, logger.Write(e))
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var read []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		read = append(read, e)
	}
	require.NoError(t, sc.Err())

	require.Len(t, read, 2)
	assert.Equal(t, "list_files", read[0].Tool)
	assert.Equal(t, "search_imports", read[1].Tool)
	assert.Nil(t, read[1].Error)
}
