package nlquery

import "errors"

// Pre-defined errors for the parse pipeline. Parse failures are first-class
// outcomes reported per segment, never panics.
var (
	// ErrNoParse is returned when a segment matches no recognized question
	// form, both before and after the single correction round.
	ErrNoParse = errors.New("question does not match any recognized form")

	// ErrEmptySegment is returned when a segment contains no tokens at all.
	ErrEmptySegment = errors.New("empty question")

	// ErrTooManyClauses is returned when more than two questions are joined
	// in a single segment. Compounding is binary; a third clause is an
	// explicit error rather than a silent drop.
	ErrTooManyClauses = errors.New("at most two questions can be joined in one segment")
)
