package db

import (
	"context"

	v1 "github.com/byxorna/doclib/pkg/types/v1"
)

// Backend is satisfied by anything that can answer the metadata query for a
// collection. Implementations issue exactly one request per call, newest
// modified first, and never retry or cache.
type Backend interface {
	FetchDocuments(ctx context.Context, collection v1.CollectionTarget) ([]v1.RawRecord, error)
}

// BackendFunc adapts a function to a Backend.
type BackendFunc func(ctx context.Context, collection v1.CollectionTarget) ([]v1.RawRecord, error)

func (f BackendFunc) FetchDocuments(ctx context.Context, collection v1.CollectionTarget) ([]v1.RawRecord, error) {
	return f(ctx, collection)
}
