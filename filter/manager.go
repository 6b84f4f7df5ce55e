package filter

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownFilter is returned when a filter name has not been registered
var ErrUnknownFilter = errors.New("unknown filter")

// namedFilter keeps the source next to the compiled program so callers can
// show what a saved query filters on
type namedFilter struct {
	expression string
	compiled   CompiledFilter
}

// Manager holds the named "where" clauses of saved queries
type Manager struct {
	compiler  Compiler
	evaluator BatchEvaluator

	mu      sync.RWMutex
	entries map[string]namedFilter
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithCompiler replaces the default caching expr compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) { m.compiler = compiler }
}

// WithEvaluator replaces the default concurrent evaluator
func WithEvaluator(evaluator BatchEvaluator) ManagerOption {
	return func(m *Manager) { m.evaluator = evaluator }
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{entries: make(map[string]namedFilter)}
	for _, opt := range opts {
		opt(m)
	}
	if m.compiler == nil {
		m.compiler = NewExprCompiler(WithCache(100))
	}
	if m.evaluator == nil {
		m.evaluator = NewConcurrentEvaluator()
	}
	return m
}

func (m *Manager) compile(name, expression string) (namedFilter, error) {
	if name == "" {
		return namedFilter{}, errors.New("filter name must not be empty")
	}
	compiled, err := m.compiler.Compile(expression)
	if err != nil {
		return namedFilter{}, fmt.Errorf("filter %q: %w", name, err)
	}
	return namedFilter{expression: expression, compiled: compiled}, nil
}

// RegisterFilter compiles expression and stores it under name, replacing any
// previous filter of that name
func (m *Manager) RegisterFilter(name, expression string) error {
	entry, err := m.compile(name, expression)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = entry
	return nil
}

// RegisterFilters stores every filter or none of them
func (m *Manager) RegisterFilters(filters map[string]string) error {
	staged := make(map[string]namedFilter, len(filters))
	// sorted so the reported error does not depend on map order
	for _, name := range slices.Sorted(maps.Keys(filters)) {
		entry, err := m.compile(name, filters[name])
		if err != nil {
			return err
		}
		staged[name] = entry
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.entries, staged)
	return nil
}

// GetFilter returns the compiled filter registered under name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[name]
	return entry.compiled, ok
}

// Expression returns the source of the filter registered under name
func (m *Manager) Expression(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[name]
	return entry.expression, ok
}

// ListFilters returns the registered names in sorted order
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.entries))
}

// EvaluateFilter keeps the records matched by the named filter
func (m *Manager) EvaluateFilter(ctx context.Context, name string, records []Record) ([]Record, error) {
	compiled, ok := m.GetFilter(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return m.evaluator.Evaluate(ctx, compiled, records)
}

// EvaluateAll runs every registered filter over records, keyed by name
func (m *Manager) EvaluateAll(ctx context.Context, records []Record) (map[string][]Record, error) {
	m.mu.RLock()
	filters := make(map[string]CompiledFilter, len(m.entries))
	for name, entry := range m.entries {
		filters[name] = entry.compiled
	}
	m.mu.RUnlock()

	return m.evaluator.EvaluateBatch(ctx, filters, records)
}
