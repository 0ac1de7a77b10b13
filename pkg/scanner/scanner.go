package scanner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/sfcmap/sfcmap/pkg/parser"
	"github.com/sfcmap/sfcmap/pkg/report"
	"github.com/sfcmap/sfcmap/pkg/util"
)

// Scanner runs the scan pipeline: discovery, concurrent per-file analysis,
// report assembly.
type Scanner struct {
	pm       *parser.Manager
	files    *util.FileCache
	analyzer *Analyzer
	cache    *AnalysisCache
	log      *slog.Logger
}

// NewScanner creates a scanner with all dependencies wired. Close must be
// called to release parser pools and file mappings.
func NewScanner(logger *slog.Logger) (*Scanner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pm := parser.NewManager(logger)
	files := util.NewFileCache(0, logger)
	cache, err := NewAnalysisCache(0)
	if err != nil {
		pm.Close()
		files.Close()
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	return &Scanner{
		pm:       pm,
		files:    files,
		analyzer: NewAnalyzer(pm, files, logger),
		cache:    cache,
		log:      logger,
	}, nil
}

// Run executes a full scan of rootDir and returns the assembled report.
// Per-file failures degrade that file's record; only discovery errors are
// fatal.
func (s *Scanner) Run(rootDir string, cfg ScanConfig) (*report.Report, error) {
	totalStart := time.Now()
	stats := report.Stats{}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	discoveryStart := time.Now()
	files, err := DiscoverFiles(absRoot, cfg)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(files)
	stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()
	s.log.Info("discovery complete", "files", len(files), "ms", stats.DiscoveryTimeMs)

	analysisStart := time.Now()
	failuresBefore := s.analyzer.Failures()
	analyses, cacheHits := s.analyzeAll(files, cfg.Workers)
	stats.AnalysisTimeMs = time.Since(analysisStart).Milliseconds()
	stats.CacheHits = cacheHits
	stats.FilesFailed = int(s.analyzer.Failures() - failuresBefore)

	// Assemble in discovery order with root-relative paths.
	result := make([]report.FileAnalysis, 0, len(analyses))
	for i, fa := range analyses {
		if fa == nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, files[i])
		if err != nil {
			rel = files[i]
		}
		fa.Path = filepath.ToSlash(rel)
		result = append(result, *fa)
	}
	stats.FilesAnalyzed = len(result)
	stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	s.log.Info("analysis complete",
		"analyzed", stats.FilesAnalyzed,
		"cache_hits", cacheHits,
		"ms", stats.AnalysisTimeMs)

	return &report.Report{
		Root:        absRoot,
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Files:       result,
	}, nil
}

// analyzeAll fans file paths out to a bounded worker pool and collects
// results indexed by discovery position, so output order never depends on
// completion order.
func (s *Scanner) analyzeAll(files []string, workers int) ([]*report.FileAnalysis, int) {
	if len(files) == 0 {
		return nil, 0
	}

	numWorkers := util.GetOptimalPoolSizeWithOverride(workers)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	results := make([]*report.FileAnalysis, len(files))
	var hits sync.Map
	jobs := make(chan int, numWorkers*2)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path := files[idx]
				if fa, ok := s.cache.Get(path); ok {
					results[idx] = fa
					hits.Store(idx, true)
					continue
				}
				fa := s.analyzer.AnalyzeFile(path)
				if fa != nil {
					s.cache.Put(path, fa)
				}
				results[idx] = fa
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	cacheHits := 0
	hits.Range(func(_, _ any) bool {
		cacheHits++
		return true
	})
	return results, cacheHits
}

// AnalyzeOne analyzes a single absolute path, bypassing the cache. Watch
// mode uses it after invalidating the changed file.
func (s *Scanner) AnalyzeOne(path string) *report.FileAnalysis {
	s.files.Invalidate(path)
	s.cache.Invalidate(path)
	fa := s.analyzer.AnalyzeFile(path)
	if fa != nil {
		s.cache.Put(path, fa)
	}
	return fa
}

// Close releases parser pools and file mappings.
func (s *Scanner) Close() {
	s.pm.Close()
	if err := s.files.Close(); err != nil {
		s.log.Warn("file cache close", "error", err)
	}
}
