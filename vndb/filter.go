package vndb

import (
	"bytes"
	"encoding/json"
)

// QueryFilter is an opaque filter expression tree. The zero value is JSON
// null, which the API treats as "match everything". Structure is never
// checked locally; a malformed tree is rejected by the server at send time.
type QueryFilter struct {
	raw json.RawMessage
}

// NewQueryFilter marshals v into a filter, e.g. []any{"id", "=", "v17"}
func NewQueryFilter(v any) (QueryFilter, error) {
	if raw, ok := v.(json.RawMessage); ok {
		return ParseQueryFilter(string(raw))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return QueryFilter{}, newJSONError(err)
	}
	return QueryFilter{raw: data}, nil
}

// ParseQueryFilter parses JSON text into a filter
func ParseQueryFilter(s string) (QueryFilter, error) {
	data := []byte(s)
	if !json.Valid(data) {
		var v any
		return QueryFilter{}, newJSONError(json.Unmarshal(data, &v))
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return QueryFilter{}, newJSONError(err)
	}
	return QueryFilter{raw: buf.Bytes()}, nil
}

// MustQueryFilter is like ParseQueryFilter but panics on invalid JSON
func MustQueryFilter(s string) QueryFilter {
	f, err := ParseQueryFilter(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Eq builds a ["name", "=", value] leaf
func Eq(name string, value any) QueryFilter {
	return Cmp(name, "=", value)
}

// Cmp builds a ["name", op, value] leaf
func Cmp(name, op string, value any) QueryFilter {
	f, err := NewQueryFilter([]any{name, op, value})
	if err != nil {
		return QueryFilter{}
	}
	return f
}

// And combines filters with a conjunction
func And(filters ...QueryFilter) QueryFilter {
	return combine("and", filters)
}

// Or combines filters with a disjunction
func Or(filters ...QueryFilter) QueryFilter {
	return combine("or", filters)
}

func combine(op string, filters []QueryFilter) QueryFilter {
	tree := make([]any, 0, len(filters)+1)
	tree = append(tree, op)
	for _, f := range filters {
		tree = append(tree, f.Raw())
	}
	out, _ := NewQueryFilter(tree)
	return out
}

// Clear resets the filter to null
func (f *QueryFilter) Clear() {
	f.raw = nil
}

func (f QueryFilter) IsNull() bool {
	return len(f.raw) == 0 || bytes.Equal(f.raw, []byte("null"))
}

// Raw returns the JSON encoding of the filter
func (f QueryFilter) Raw() json.RawMessage {
	if len(f.raw) == 0 {
		return json.RawMessage("null")
	}
	return f.raw
}

func (f QueryFilter) String() string {
	return string(f.Raw())
}

func (f QueryFilter) MarshalJSON() ([]byte, error) {
	return f.Raw(), nil
}

func (f *QueryFilter) UnmarshalJSON(data []byte) error {
	parsed, err := ParseQueryFilter(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
