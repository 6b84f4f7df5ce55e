package vndb

import "encoding/json"

// Response is the envelope returned by every list resource.
// More is true when pages exist past the requested one; nothing follows them
// automatically, so callers issue a new query with the next page.
type Response[T any] struct {
	Results           []T             `json:"results"`
	More              bool            `json:"more"`
	Count             *uint32         `json:"count,omitempty"`
	CompactFilters    *string         `json:"compact_filters,omitempty"`
	NormalizedFilters json.RawMessage `json:"normalized_filters,omitempty"`
}

// First returns the first result, if any
func (r *Response[T]) First() (T, bool) {
	var zero T
	if r == nil || len(r.Results) == 0 {
		return zero, false
	}
	return r.Results[0], true
}
