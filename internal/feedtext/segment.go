// Package feedtext implements the primitives of the flashscore wire grammar:
// sentinel-based segmentation, strict one-match field extraction and the
// odds-pair movement notation. The feed is a flat concatenation of
// fieldcode ÷ value ¬ units; structural boundaries are literal ~CODE÷ tokens.
package feedtext

import "strings"

// Segments splits text on a literal sentinel token. The slice element before
// the first sentinel is retained as element zero; callers that know it is a
// header (documented per call site) drop it themselves. Splitting is pure:
// the same text and sentinel always yield the same slices.
func Segments(text, sentinel string) []string {
	return strings.Split(text, sentinel)
}

// Blocks is Segments minus the leading element, for the common case where
// everything before the first sentinel is a header or empty.
func Blocks(text, sentinel string) []string {
	parts := strings.Split(text, sentinel)
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:]
}
