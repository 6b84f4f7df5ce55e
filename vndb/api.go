package vndb

import (
	"context"
)

// API defines the GET operations of the kana API
type API interface {
	// AuthInfo validates the configured token
	AuthInfo(ctx context.Context) (*AuthInfo, error)

	// Schema retrieves the API schema
	Schema(ctx context.Context) (*Schema, error)

	// Stats retrieves database entry counts
	Stats(ctx context.Context) (*Stats, error)

	// Users looks up users by id or username
	Users(ctx context.Context, query *UserQuery, fields *FieldSet[UserField]) (Users, error)
}

var _ API = GetHandle{}

// Sender is satisfied by every query builder
type Sender[V any] interface {
	Send(ctx context.Context) (*Response[V], error)
}

var _ Sender[Release] = (*ReleaseQuery)(nil)
