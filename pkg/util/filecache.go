// Package util holds shared infrastructure: logging, pool sizing, and
// memory-mapped file access.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache serves file contents through memory-mapped regions, falling back
// to os.ReadFile when mapping fails (empty files, exotic filesystems).
//
// Mappings stay live until Close, so the byte slices returned by Get must not
// be used after the cache is closed. Safe for concurrent use: reads share an
// RWMutex, loads take the write lock.
type FileCache struct {
	mu       sync.RWMutex
	files    map[string]mmap.MMap
	maxFiles int
	logger   *slog.Logger

	stats FileCacheStats
}

// FileCacheStats reports cache behavior counters.
type FileCacheStats struct {
	Hits      int64
	Misses    int64
	Fallbacks int64
}

// DefaultMaxCachedFiles bounds open mappings to keep file descriptors in check.
const DefaultMaxCachedFiles = 10000

// NewFileCache creates a FileCache. maxFiles <= 0 selects DefaultMaxCachedFiles.
func NewFileCache(maxFiles int, logger *slog.Logger) *FileCache {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxCachedFiles
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCache{
		files:    make(map[string]mmap.MMap),
		maxFiles: maxFiles,
		logger:   logger,
	}
}

// Get returns the mapped contents of path, mapping it on first access.
// The returned slice is valid until Close and must be treated as read-only.
func (c *FileCache) Get(path string) ([]byte, error) {
	c.mu.RLock()
	if m, ok := c.files[path]; ok {
		c.mu.RUnlock()
		c.bump(func(s *FileCacheStats) { s.Hits++ })
		return m, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have loaded it while we waited.
	if m, ok := c.files[path]; ok {
		c.stats.Hits++
		return m, nil
	}
	c.stats.Misses++

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// mmap fails for zero-length files, among others.
		c.stats.Fallbacks++
		c.logger.Debug("mmap failed, reading directly", "path", path, "error", err)
		return os.ReadFile(path)
	}

	if len(c.files) >= c.maxFiles {
		// Over budget: serve a copy without retaining the mapping.
		data := make([]byte, len(m))
		copy(data, m)
		if err := m.Unmap(); err != nil {
			c.logger.Warn("unmap failed", "path", path, "error", err)
		}
		return data, nil
	}

	c.files[path] = m
	return m, nil
}

// Invalidate drops the mapping for path, if present. Watch mode calls this
// when a file changes on disk.
func (c *FileCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.files[path]; ok {
		if err := m.Unmap(); err != nil {
			c.logger.Warn("unmap failed", "path", path, "error", err)
		}
		delete(c.files, path)
	}
}

// Size returns the number of live mappings.
func (c *FileCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// Stats returns a snapshot of the cache counters.
func (c *FileCache) Stats() FileCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Close unmaps every cached file. The cache is unusable afterwards.
func (c *FileCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for path, m := range c.files {
		if err := m.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmap %s: %w", path, err)
		}
	}
	c.files = make(map[string]mmap.MMap)
	return firstErr
}

func (c *FileCache) bump(f func(*FileCacheStats)) {
	c.mu.Lock()
	f(&c.stats)
	c.mu.Unlock()
}
