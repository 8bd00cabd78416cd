package analyzer

import (
	"github.com/pmezard/go-difflib/difflib"
)

// SequenceRatio returns the Ratcliff/Obershelp similarity 2*M/T of two
// sequences, where M is the total size of the matching blocks and T the
// combined length. Two empty sequences score 1.0; one empty sequence scores 0.0.
//
// The inputs are put in a canonical order before matching so that
// SequenceRatio(a, b) == SequenceRatio(b, a) holds exactly.
func SequenceRatio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	a, b = canonicalOrder(a, b)
	return newMatcher(a, b).Ratio()
}

// MatchingBlocks returns the matching blocks of a and b in canonical order,
// without difflib's trailing zero-size sentinel.
func MatchingBlocks(a, b []string) []difflib.Match {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	a, b = canonicalOrder(a, b)
	blocks := newMatcher(a, b).GetMatchingBlocks()
	out := make([]difflib.Match, 0, len(blocks))
	for _, m := range blocks {
		if m.Size > 0 {
			out = append(out, m)
		}
	}
	return out
}

// BlockMatchRatio sums the sizes of matching blocks of at least minBlockSize
// elements and divides by the length of the shorter sequence.
// Both empty -> 1.0, exactly one empty -> 0.0.
func BlockMatchRatio(a, b []string, minBlockSize int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	matched := 0
	for _, m := range MatchingBlocks(a, b) {
		if m.Size >= minBlockSize {
			matched += m.Size
		}
	}
	return float64(matched) / float64(minInt(len(a), len(b)))
}

// TextSimilarity compares two strings character by character.
func TextSimilarity(a, b string) float64 {
	return SequenceRatio(splitRunes(a), splitRunes(b))
}

// newMatcher disables the auto-junk heuristic, which would otherwise drop
// frequent elements of long sequences and break ratio(a, a) == 1.
func newMatcher(a, b []string) *difflib.SequenceMatcher {
	return difflib.NewMatcherWithJunk(a, b, false, nil)
}

// canonicalOrder returns the two sequences ordered lexicographically.
func canonicalOrder(a, b []string) ([]string, []string) {
	if lessSequence(b, a) {
		return b, a
	}
	return a, b
}

func lessSequence(a, b []string) bool {
	n := minInt(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
