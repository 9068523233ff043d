package feedtext

import (
	"regexp"

	"github.com/cockroachdb/errors"
)

// FieldPattern is a compiled capture bounded between two field codes, e.g.
// ¬WU÷([^¬÷]+)¬AS÷. The capture group excludes the ¬ and ÷ sentinels, so a
// match can never straddle a record boundary.
type FieldPattern struct {
	re  *regexp.Regexp
	raw string
}

// MustPattern compiles expr, panicking on a bad expression. Patterns are
// package-level constants of the decoder; a failure here is a programming
// error, not a data error.
func MustPattern(expr string) FieldPattern {
	return FieldPattern{re: regexp.MustCompile(expr), raw: expr}
}

func (p FieldPattern) String() string { return p.raw }

// Extract returns the single value captured by pat in text. Zero matches or
// more than one match is an ErrMalformedSegment: ambiguity is never silently
// tolerated, this cardinality check is the decoder's guard against a drifted
// feed format being mis-parsed into plausible garbage.
func Extract(text string, pat FieldPattern) (string, error) {
	matches := pat.re.FindAllStringSubmatch(text, -1)
	if len(matches) != 1 {
		return "", errors.Wrapf(ErrMalformedSegment,
			"expected exactly 1 match, found %d for pattern %q in segment %q",
			len(matches), pat.raw, text)
	}
	return matches[0][1], nil
}

// ExtractOptional relaxes only the zero-match case: absence yields ok=false.
// Multiple matches still fail, the field being optional does not make the
// segment any less ambiguous.
func ExtractOptional(text string, pat FieldPattern) (string, bool, error) {
	matches := pat.re.FindAllStringSubmatch(text, -1)
	switch len(matches) {
	case 0:
		return "", false, nil
	case 1:
		return matches[0][1], true, nil
	default:
		return "", false, errors.Wrapf(ErrMalformedSegment,
			"expected at most 1 match, found %d for pattern %q in segment %q",
			len(matches), pat.raw, text)
	}
}

var yearRe = regexp.MustCompile(`(\d{4})`)

// ExtractYear pulls the first 4-digit year out of an archive row title such
// as "ATP Acapulco 2024".
func ExtractYear(text string) (string, error) {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return "", errors.Wrapf(ErrMalformedSegment, "year not found in %q", text)
	}
	return m[1], nil
}
