package feedtext

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Odds movement notation: a bare NUMBER, or NUMBER[u]NUMBER / NUMBER[d]NUMBER
// where the bracketed marker gives the direction and the second number the
// closing value.
var oddsPairRe = MustPattern(`^(\d+(?:\.\d+)?)(?:\[[ud]\](\d+(?:\.\d+)?))?$`).re

// SplitOddsPair decomposes a raw odds value into its (opening, closing) pair.
// A bare number means no movement, so closing defaults to opening.
func SplitOddsPair(raw string) (opening, closing string, err error) {
	m := oddsPairRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", "", errors.Wrapf(ErrInvalidNumericFormat, "odds value %q", raw)
	}
	opening = m[1]
	closing = m[2]
	if closing == "" {
		closing = opening
	}
	return opening, closing, nil
}
