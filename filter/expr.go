package filter

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CompileFilter compiles expression with the default helpers and no cache
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Record fields are only known at run time
	env := maps.Clone(c.helperFuncs)
	addRecordHelpers(env, nil)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a record
func (f *exprFilter) Evaluate(rec Record) bool {
	ok, err := f.Match(rec)
	return err == nil && ok
}

// Match evaluates the filter and reports evaluation failures, such as
// comparing a field the record does not carry
func (f *exprFilter) Match(rec Record) (bool, error) {
	result, err := expr.Run(f.program, f.environment(rec))
	if err != nil {
		id, _ := rec["id"].(string)
		return false, &EvaluationError{
			Expression: f.expression,
			RecordID:   id,
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// environment exposes the record's top level fields as variables plus the
// helpers. Helpers win on a name clash; the field stays reachable through
// Record or get().
func (f *exprFilter) environment(rec Record) map[string]any {
	env := make(map[string]any, len(rec)+len(f.helpers)+8)
	maps.Copy(env, rec)
	maps.Copy(env, f.helpers)
	addRecordHelpers(env, rec)
	return env
}

// createHelperFunctions creates the static helper functions
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// String helpers
	funcs["containsFold"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}

	// Date helpers
	funcs["parseDate"] = parseDate
	funcs["year"] = func(date string) int {
		return parseDate(date).Year()
	}
	funcs["daysSince"] = func(date string) int {
		t := parseDate(date)
		if t.IsZero() {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	}
	funcs["yearsAgo"] = func(years int) string {
		return time.Now().AddDate(-years, 0, 0).Format(time.DateOnly)
	}

	return funcs
}

// parseDate understands the API's partial dates: "2002-08-29", "2002-08"
// and "2002". Anything else, e.g. "TBA", is the zero time.
func parseDate(s string) time.Time {
	for _, layout := range []string{time.DateOnly, "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// addRecordHelpers adds the helpers bound to one record
func addRecordHelpers(env map[string]any, rec Record) {
	env["Record"] = rec
	env["get"] = func(path string) any {
		return lookup(rec, path)
	}
	env["has"] = func(path string) bool {
		return lookup(rec, path) != nil
	}
	env["hasTag"] = createHasNamedFunc(rec, "tags", "name")
	env["hasTrait"] = createHasNamedFunc(rec, "traits", "name")
	env["hasLanguage"] = createHasNamedFunc(rec, "languages", "lang")
	env["hasPlatform"] = createHasNamedFunc(rec, "platforms", "")
}

// lookup walks a dotted path such as "image.url" or "titles.0.title"
func lookup(rec Record, path string) any {
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[part]
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}

// createHasNamedFunc matches a list that holds either plain strings or
// objects carrying the value under key
func createHasNamedFunc(rec Record, list, key string) func(string) bool {
	var values []string
	items, _ := rec[list].([]any)
	for _, item := range items {
		switch v := item.(type) {
		case string:
			values = append(values, strings.ToLower(v))
		case map[string]any:
			if key == "" {
				continue
			}
			if s, ok := v[key].(string); ok {
				values = append(values, strings.ToLower(s))
			}
		default:
			values = append(values, strings.ToLower(fmt.Sprint(v)))
		}
	}
	return func(name string) bool {
		return slices.Contains(values, strings.ToLower(name))
	}
}
