// Package parser wraps tree-sitter parsing behind per-language parser pools.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// poolKey identifies a parser pool: language plus the TSX grammar variant.
type poolKey struct {
	lang Language
	tsx  bool
}

// ParseError reports that a source could not be parsed into a usable tree.
// Analysis treats it as a per-file condition, never as a fatal error.
type ParseError struct {
	Lang Language
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Lang, e.Msg)
}

// Manager owns tree-sitter parser pools, created lazily per language.
//
// Trees returned by Parse/ParseStrict are owned by the caller and must be
// closed via tree.Close(). The Manager itself must be closed when done.
// Safe for concurrent use; each pool allows multiple simultaneous parses.
type Manager struct {
	mu     sync.RWMutex
	pools  map[poolKey]*parserPool
	logger *slog.Logger

	parsesCalled int
}

// NewManager creates a parser manager. A nil logger selects slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the given grammar. Sources with syntax errors
// still yield a tree containing error nodes; callers that need to reject
// malformed input use ParseStrict.
func (m *Manager) Parse(source []byte, lang Language, tsx bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mu.Lock()
	m.parsesCalled++
	m.mu.Unlock()

	pool, err := m.getOrCreatePool(lang, tsx)
	if err != nil {
		return nil, fmt.Errorf("get pool for %s: %w", lang, err)
	}

	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("acquire parser: %w", err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	return tree, nil
}

// ParseStrict parses source and rejects trees whose root contains syntax
// errors, returning a *ParseError. On error the tree is closed before return.
func (m *Manager) ParseStrict(source []byte, lang Language, tsx bool) (*ts.Tree, error) {
	tree, err := m.Parse(source, lang, tsx)
	if err != nil {
		return nil, err
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, &ParseError{Lang: lang, Msg: "source contains syntax errors"}
	}
	return tree, nil
}

// Close releases every pooled parser. The Manager is unusable afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("closing parser manager", "parses_called", m.parsesCalled)
	for key, pool := range m.pools {
		if pool != nil {
			pool.close()
			m.logger.Debug("closed parser pool", "language", key.lang.String(), "tsx", key.tsx)
		}
	}
	m.pools = make(map[poolKey]*parserPool)
	return nil
}

// getOrCreatePool returns the pool for (lang, tsx), creating it on first use.
// Double-checked locking keeps the fast path on the read lock.
func (m *Manager) getOrCreatePool(lang Language, tsx bool) (*parserPool, error) {
	key := poolKey{lang: lang, tsx: tsx}

	m.mu.RLock()
	pool, ok := m.pools[key]
	m.mu.RUnlock()
	if ok {
		return pool, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if pool, ok = m.pools[key]; ok {
		return pool, nil
	}

	langPtr, err := grammarPointer(lang, tsx)
	if err != nil {
		return nil, err
	}

	pool = newParserPool(lang, langPtr, tsx, getDefaultPoolSize(), m.logger)
	m.pools[key] = pool

	m.logger.Debug("created parser pool",
		"language", lang.String(), "tsx", tsx, "maxSize", pool.maxSize)
	return pool, nil
}

// grammarPointer returns the tree-sitter grammar for the language.
func grammarPointer(lang Language, tsx bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if tsx {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}
