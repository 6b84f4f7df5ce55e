package vndb

import (
	"context"
	"math"
)

// MaxResults is the largest page size the API accepts
const MaxResults = 100

// Query is the JSON body of a POST list request
type Query struct {
	Filters           QueryFilter `json:"filters"`
	Fields            string      `json:"fields,omitempty"`
	Sort              string      `json:"sort,omitempty"`
	Reverse           bool        `json:"reverse"`
	Results           *uint8      `json:"results,omitempty"`
	Page              *uint16     `json:"page,omitempty"`
	User              UserID      `json:"user,omitempty"`
	Count             bool        `json:"count"`
	CompactFilters    bool        `json:"compact_filters"`
	NormalizedFilters bool        `json:"normalized_filters"`
}

// sendFunc performs the exchange for one resource
type sendFunc[V any] func(ctx context.Context, q Query) (*Response[V], error)

// QueryBuilder accumulates the options of one list query. It is single use
// and not safe for concurrent use; Send consumes it.
type QueryBuilder[F Field[F], S SortKey, V any] struct {
	fields            *FieldSet[F]
	filters           QueryFilter
	sort              S
	hasSort           bool
	reverse           bool
	page              *uint16
	results           *uint8
	count             bool
	compactFilters    bool
	normalizedFilters bool
	user              UserID
	send              sendFunc[V]
	sent              bool
}

func newQueryBuilder[F Field[F], S SortKey, V any](send sendFunc[V]) *QueryBuilder[F, S, V] {
	return &QueryBuilder[F, S, V]{send: send}
}

func (b *QueryBuilder[F, S, V]) fieldSet() *FieldSet[F] {
	if b.fields == nil {
		b.fields = NewFieldSet[F]()
	}
	return b.fields
}

// Fields adds fields to the selection
func (b *QueryBuilder[F, S, V]) Fields(fields ...F) *QueryBuilder[F, S, V] {
	b.fieldSet().Extend(fields...)
	return b
}

// FieldSet merges a prepared set into the selection
func (b *QueryBuilder[F, S, V]) FieldSet(set *FieldSet[F]) *QueryBuilder[F, S, V] {
	b.fieldSet().Merge(set)
	return b
}

// RawFields adds tokens the field enum does not cover
func (b *QueryBuilder[F, S, V]) RawFields(tokens ...string) *QueryBuilder[F, S, V] {
	b.fieldSet().ExtendRaw(tokens...)
	return b
}

// Filters replaces the current filter
func (b *QueryBuilder[F, S, V]) Filters(f QueryFilter) *QueryBuilder[F, S, V] {
	b.filters = f
	return b
}

// ClearFilters resets the filter to null
func (b *QueryBuilder[F, S, V]) ClearFilters() *QueryBuilder[F, S, V] {
	b.filters.Clear()
	return b
}

// Sort sets the sort key
func (b *QueryBuilder[F, S, V]) Sort(key S) *QueryBuilder[F, S, V] {
	b.sort = key
	b.hasSort = true
	return b
}

// Reverse sorts in descending order
func (b *QueryBuilder[F, S, V]) Reverse() *QueryBuilder[F, S, V] {
	b.reverse = true
	return b
}

// Page sets the 1-based page number; values below 1 become 1
func (b *QueryBuilder[F, S, V]) Page(n int) *QueryBuilder[F, S, V] {
	n = max(n, 1)
	n = min(n, math.MaxUint16)
	p := uint16(n)
	b.page = &p
	return b
}

// Results sets the page size, clamped to MaxResults
func (b *QueryBuilder[F, S, V]) Results(n int) *QueryBuilder[F, S, V] {
	n = max(n, 0)
	n = min(n, MaxResults)
	r := uint8(n)
	b.results = &r
	return b
}

// Count asks the server for the total number of matches
func (b *QueryBuilder[F, S, V]) Count() *QueryBuilder[F, S, V] {
	b.count = true
	return b
}

// CompactFilters asks the server to echo the filter in compact form
func (b *QueryBuilder[F, S, V]) CompactFilters() *QueryBuilder[F, S, V] {
	b.compactFilters = true
	return b
}

// NormalizedFilters asks the server to echo the normalized filter
func (b *QueryBuilder[F, S, V]) NormalizedFilters() *QueryBuilder[F, S, V] {
	b.normalizedFilters = true
	return b
}

// User scopes the query to one user
func (b *QueryBuilder[F, S, V]) User(id UserID) *QueryBuilder[F, S, V] {
	b.user = id
	return b
}

// Query returns the request body the builder currently describes
func (b *QueryBuilder[F, S, V]) Query() Query {
	q := Query{
		Filters:           b.filters,
		Reverse:           b.reverse,
		Results:           b.results,
		Page:              b.page,
		User:              b.user,
		Count:             b.count,
		CompactFilters:    b.compactFilters,
		NormalizedFilters: b.normalizedFilters,
	}
	if !b.fields.IsEmpty() {
		q.Fields = b.fields.Join()
	}
	if b.hasSort {
		q.Sort = string(b.sort)
	}
	return q
}

// Send performs the query. A builder can only be sent once.
func (b *QueryBuilder[F, S, V]) Send(ctx context.Context) (*Response[V], error) {
	if b.sent {
		return nil, ErrBuilderConsumed
	}
	b.sent = true
	return b.send(ctx, b.Query())
}
