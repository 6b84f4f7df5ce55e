package filter

import (
	"context"
)

// Record is one API result decoded into generic JSON values. Numbers are
// float64, nested objects are Records or map[string]any.
type Record = map[string]any

// Filter defines the basic interface for result filters
type Filter interface {
	// Evaluate checks if a record matches; evaluation errors count as no match
	Evaluate(rec Record) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Match is Evaluate with the evaluation error reported
	Match(rec Record) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// BatchEvaluator evaluates multiple filters concurrently
type BatchEvaluator interface {
	// Evaluate evaluates a filter against all records
	Evaluate(ctx context.Context, filter CompiledFilter, records []Record) ([]Record, error)

	// EvaluateBatch evaluates every filter against the same records
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, records []Record) (map[string][]Record, error)
}
