package vndb

import (
	"context"
	"encoding/json"
	"net/http"
)

// PostHandle creates query builders for the POST endpoints. It holds a weak
// reference to its client; the reference is only resolved when a query is
// sent.
type PostHandle struct {
	handle
}

func sendTo[V any](h handle, endpoint Endpoint) sendFunc[V] {
	return func(ctx context.Context, q Query) (*Response[V], error) {
		s, err := h.upgrade()
		if err != nil {
			return nil, err
		}
		resp, err := fetch[Response[V]](ctx, s, request{method: http.MethodPost, endpoint: endpoint, body: q})
		if err != nil {
			return nil, err
		}
		return &resp, nil
	}
}

func (p PostHandle) Character() *CharacterQuery {
	return newQueryBuilder[CharacterField, CharacterSort](sendTo[Character](p.handle, EndpointCharacter))
}

func (p PostHandle) Producer() *ProducerQuery {
	return newQueryBuilder[ProducerField, ProducerSort](sendTo[Producer](p.handle, EndpointProducer))
}

func (p PostHandle) Release() *ReleaseQuery {
	return newQueryBuilder[ReleaseField, ReleaseSort](sendTo[Release](p.handle, EndpointRelease))
}

func (p PostHandle) Staff() *StaffQuery {
	return newQueryBuilder[StaffField, StaffSort](sendTo[Staff](p.handle, EndpointStaff))
}

func (p PostHandle) Tag() *TagQuery {
	return newQueryBuilder[TagField, TagSort](sendTo[Tag](p.handle, EndpointTag))
}

func (p PostHandle) Trait() *TraitQuery {
	return newQueryBuilder[TraitField, TraitSort](sendTo[Trait](p.handle, EndpointTrait))
}

func (p PostHandle) VisualNovel() *VisualNovelQuery {
	return newQueryBuilder[VisualNovelField, VisualNovelSort](sendTo[VisualNovel](p.handle, EndpointVisualNovel))
}

// RawField is a free form field token for endpoints without a modelled schema
type RawField string

// Variants is empty: raw endpoints have no closed field list
func (RawField) Variants() []RawField { return nil }

// RawQuery is a query builder whose results are left undecoded
type RawQuery = QueryBuilder[RawField, string, json.RawMessage]

// Raw creates a query for any POST endpoint, e.g. EndpointUList. Results
// are returned as raw JSON objects.
func (p PostHandle) Raw(endpoint Endpoint) *RawQuery {
	return newQueryBuilder[RawField, string](sendTo[json.RawMessage](p.handle, endpoint))
}
