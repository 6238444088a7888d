package db

import (
	"context"
	"time"
)

// Store is the database facade for the pre-built product index.
// prodsearch never writes documents or indexes: the catalog index is
// built and populated by an external loader.
type Store interface {
	Pinger
	KVStore
	Searcher

	// IndexExists probes whether the named FT index is present.
	IndexExists(ctx context.Context, name string) (bool, error)

	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations (embedding cache).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Searcher provides KNN search over the product FT index.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}
