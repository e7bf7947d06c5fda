package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrMissingReference marks a node, license or language that could not be
	// resolved while populating the export database.
	ErrMissingReference = errors.New("missing reference")
	// ErrUnsupportedItemType marks an assessment item whose type has no
	// renderer. The whole exercise bundle is abandoned when this happens.
	ErrUnsupportedItemType = errors.New("unsupported assessment item type")
	// ErrTokenExhausted means token generation ran out of retries. This is an
	// environment problem, not a transient failure.
	ErrTokenExhausted = errors.New("token generation exhausted retries")
	// ErrStorageFailure marks a failure to create or copy the export artifact.
	ErrStorageFailure = errors.New("storage failure")
)
