package domain

import "errors"

var (
	// ErrIndexNotFound signals that the catalog FT index is missing from the store.
	ErrIndexNotFound = errors.New("catalog index not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEnhancerUnavailable signals that the query enhancement model could not be reached.
	ErrEnhancerUnavailable = errors.New("query enhancer unavailable")
)
