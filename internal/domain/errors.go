package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable signals that the document store could not be reached or initialized.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationFailed signals a generative completion failure. It is always surfaced to the caller.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrStreamConsumed signals a second attempt to iterate a one-shot answer stream.
	ErrStreamConsumed = errors.New("answer stream already consumed")
)
