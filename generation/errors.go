package generation

import "errors"

// Sentinel errors for request validation.
//
// Model-side failures are not redeclared here: a failed inference surfaces
// as sdruntime.ErrGenerationFailed and a rejected queue as
// scheduler.ErrSchedulerClosed, both checked with errors.Is.
var (
	// ErrEmptyPrompt rejects an empty or whitespace-only prompt. This is
	// the one validation failure that is fatal to a request; every other
	// out-of-range input is clamped or rewritten instead.
	ErrEmptyPrompt = errors.New("generation: prompt must not be empty")
)
