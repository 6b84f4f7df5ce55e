package vndb

import (
	"context"
	"net/http"
)

// GetHandle exposes the GET endpoints. It holds a weak reference to its
// client and is cheap to copy.
type GetHandle struct {
	handle
}

// AuthInfo returns information about the configured token. Without a token
// it fails with ErrTokenNeeded before any request is made.
func (g GetHandle) AuthInfo(ctx context.Context) (*AuthInfo, error) {
	s, err := g.upgrade()
	if err != nil {
		return nil, err
	}
	if s.token == "" {
		return nil, ErrTokenNeeded
	}
	info, err := fetch[AuthInfo](ctx, s, request{method: http.MethodGet, endpoint: EndpointAuthInfo})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Schema returns the API schema
func (g GetHandle) Schema(ctx context.Context) (*Schema, error) {
	s, err := g.upgrade()
	if err != nil {
		return nil, err
	}
	schema, err := fetch[Schema](ctx, s, request{method: http.MethodGet, endpoint: EndpointSchema})
	if err != nil {
		return nil, err
	}
	return &schema, nil
}

// Stats returns the database entry counts
func (g GetHandle) Stats(ctx context.Context) (*Stats, error) {
	s, err := g.upgrade()
	if err != nil {
		return nil, err
	}
	stats, err := fetch[Stats](ctx, s, request{method: http.MethodGet, endpoint: EndpointStats})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Users looks up users by id or name. An empty query or an empty field set
// returns an empty map without contacting the server.
func (g GetHandle) Users(ctx context.Context, query *UserQuery, fields *FieldSet[UserField]) (Users, error) {
	if query.Len() == 0 || fields.IsEmpty() {
		return Users{}, nil
	}

	s, err := g.upgrade()
	if err != nil {
		return nil, err
	}

	params := query.URLQuery()
	params.Set("fields", fields.Join())

	return fetch[Users](ctx, s, request{method: http.MethodGet, endpoint: EndpointUser, params: params})
}
