package engine

import "errors"

// Sentinel errors of the engine. Every failure aborts the whole sequence;
// the error returned by Run wraps one of these together with the step and
// sub-operation it occurred in. Nothing is retried internally.
var (
	// ErrShortParameter is reported when a constrained parameter value is
	// shorter than the 32-byte word its constraints are checked against.
	ErrShortParameter = errors.New("parameter value shorter than a word")

	// ErrReadCallFailed is reported when the read-only call backing an
	// input parameter does not succeed.
	ErrReadCallFailed = errors.New("read call failed")

	// ErrAuxiliaryCallFailed is reported when the read-only call backing
	// an output parameter does not succeed.
	ErrAuxiliaryCallFailed = errors.New("auxiliary call failed")

	// ErrShortResult is reported when a call result holds fewer words
	// than an output parameter wants to route.
	ErrShortResult = errors.New("call result too short")

	// ErrUnknownFetcher is reported for a fetcher kind outside the closed
	// enum, which can only originate from untrusted serialized data.
	ErrUnknownFetcher = errors.New("unknown fetcher kind")

	// ErrUnknownDestination is reported when an output names a store the
	// engine is not configured with.
	ErrUnknownDestination = errors.New("unknown destination store")

	// ErrInsufficientAttachedValue is reported as soon as the values
	// committed by the steps executed so far exceed the attached value.
	ErrInsufficientAttachedValue = errors.New("insufficient attached value")

	// ErrCallFailed is reported when the step's own call to its target
	// does not succeed.
	ErrCallFailed = errors.New("call to target failed")
)
