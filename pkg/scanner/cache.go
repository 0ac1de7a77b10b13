package scanner

import (
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sfcmap/sfcmap/pkg/report"
)

// defaultCacheSize bounds the number of retained per-file analyses.
const defaultCacheSize = 4096

// AnalysisCache memoizes per-file analyses keyed by absolute path and
// validated against (mtime, size), so rescans and watch mode skip files
// that have not changed on disk.
type AnalysisCache struct {
	entries *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	modTime  time.Time
	size     int64
	analysis report.FileAnalysis
}

// NewAnalysisCache creates a cache. size <= 0 selects the default.
func NewAnalysisCache(size int) (*AnalysisCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &AnalysisCache{entries: entries}, nil
}

// Get returns the cached analysis for path if the file on disk still has
// the recorded mtime and size.
func (c *AnalysisCache) Get(path string) (*report.FileAnalysis, bool) {
	entry, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	info, err := os.Stat(path)
	if err != nil || !info.ModTime().Equal(entry.modTime) || info.Size() != entry.size {
		c.entries.Remove(path)
		return nil, false
	}
	fa := entry.analysis
	return &fa, true
}

// Put records an analysis against the file's current stat. Files that
// cannot be stat'd are not cached.
func (c *AnalysisCache) Put(path string, fa *report.FileAnalysis) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	c.entries.Add(path, cacheEntry{
		modTime:  info.ModTime(),
		size:     info.Size(),
		analysis: *fa,
	})
}

// Invalidate drops the entry for path.
func (c *AnalysisCache) Invalidate(path string) {
	c.entries.Remove(path)
}

// Len returns the number of cached entries.
func (c *AnalysisCache) Len() int {
	return c.entries.Len()
}
