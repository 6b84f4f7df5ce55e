package vndb

import (
	"net/url"
	"slices"
	"strings"
)

// Field is a resource's closed set of field selector tokens.
// Variants returns every token of the set.
type Field[F any] interface {
	~string
	Variants() []F
}

// SortKey is a resource's closed set of sort keys
type SortKey interface {
	~string
}

// FieldSet is a deduplicated set of field tokens for a single resource.
// Raw tokens cover nested paths the enum does not model, e.g. "vns.release.id".
type FieldSet[F Field[F]] struct {
	tokens map[string]struct{}
}

// NewFieldSet creates a set holding the given fields
func NewFieldSet[F Field[F]](fields ...F) *FieldSet[F] {
	s := &FieldSet[F]{tokens: make(map[string]struct{}, len(fields))}
	s.Extend(fields...)
	return s
}

// AllFields returns a set holding every field of the resource
func AllFields[F Field[F]]() *FieldSet[F] {
	var zero F
	return NewFieldSet(zero.Variants()...)
}

// NoFields returns an empty set
func NoFields[F Field[F]]() *FieldSet[F] {
	return NewFieldSet[F]()
}

func (s *FieldSet[F]) init() {
	if s.tokens == nil {
		s.tokens = make(map[string]struct{})
	}
}

// Insert adds a field and reports whether it was newly added
func (s *FieldSet[F]) Insert(field F) bool {
	return s.InsertRaw(string(field))
}

// Extend adds every given field
func (s *FieldSet[F]) Extend(fields ...F) {
	for _, f := range fields {
		s.Insert(f)
	}
}

// InsertRaw adds an arbitrary token and reports whether it was newly added
func (s *FieldSet[F]) InsertRaw(token string) bool {
	s.init()
	if _, ok := s.tokens[token]; ok {
		return false
	}
	s.tokens[token] = struct{}{}
	return true
}

// ExtendRaw adds every given token
func (s *FieldSet[F]) ExtendRaw(tokens ...string) {
	for _, t := range tokens {
		s.InsertRaw(t)
	}
}

// Merge adds every token of other to s
func (s *FieldSet[F]) Merge(other *FieldSet[F]) {
	if other == nil {
		return
	}
	for t := range other.tokens {
		s.InsertRaw(t)
	}
}

// Remove deletes a field and reports whether it was present
func (s *FieldSet[F]) Remove(field F) bool {
	return s.RemoveRaw(string(field))
}

// RemoveRaw deletes a token and reports whether it was present
func (s *FieldSet[F]) RemoveRaw(token string) bool {
	if _, ok := s.tokens[token]; !ok {
		return false
	}
	delete(s.tokens, token)
	return true
}

// Contains reports whether field is in the set
func (s *FieldSet[F]) Contains(field F) bool {
	if s == nil {
		return false
	}
	_, ok := s.tokens[string(field)]
	return ok
}

// Len returns the number of distinct tokens; a nil set has none
func (s *FieldSet[F]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tokens)
}

// IsEmpty reports whether the set has no tokens
func (s *FieldSet[F]) IsEmpty() bool {
	return s.Len() == 0
}

// Tokens returns the tokens in sorted order
func (s *FieldSet[F]) Tokens() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.tokens))
	for t := range s.tokens {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Join returns the sorted tokens separated by commas
func (s *FieldSet[F]) Join() string {
	return strings.Join(s.Tokens(), ",")
}

// URLQuery returns the set as a "fields" query parameter
func (s *FieldSet[F]) URLQuery() url.Values {
	return url.Values{"fields": {s.Join()}}
}

func (s *FieldSet[F]) String() string {
	return s.Join()
}
