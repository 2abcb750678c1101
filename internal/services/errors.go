package services

import "errors"

// Failure taxonomy for the search pipeline. Per-candidate failures
// (embedding, completion, parse) are recovered with fallback scoring and never
// reach the caller; an orchestration failure aborts the whole search.
var (
	// ErrEmbeddingFailure marks an unreachable or non-2xx embedding provider.
	ErrEmbeddingFailure = errors.New("embedding provider failure")

	// ErrCompletionFailure marks an unreachable or non-2xx completion provider.
	ErrCompletionFailure = errors.New("completion provider failure")

	// ErrParseFailure marks an AI response that is not valid JSON or lacks
	// the required fields.
	ErrParseFailure = errors.New("ai response parse failure")

	// ErrOrchestrationFailure marks a job-level failure with no per-item
	// fallback. The caller should retry the whole search.
	ErrOrchestrationFailure = errors.New("search orchestration failure")
)
