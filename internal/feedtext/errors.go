package feedtext

import "github.com/cockroachdb/errors"

// Decode failures fall into a small closed taxonomy. Call sites wrap these
// sentinels with the raw segment and the pattern that was attempted, so a
// drifted feed format surfaces with enough context to diagnose.
var (
	// ErrMalformedSegment reports a field pattern that matched zero times or
	// more than once where exactly one match was required.
	ErrMalformedSegment = errors.New("malformed feed segment")

	// ErrInvalidNumericFormat reports a numeric feed value (games score, odds
	// value) that does not parse.
	ErrInvalidNumericFormat = errors.New("invalid numeric format")
)
