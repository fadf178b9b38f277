package cluster

import "strings"

// NaturalCompare orders identifiers the way a human reads them: maximal
// runs of digits compare by integer value, all other runs compare by
// codepoint. Leading zeros do not affect the numeric comparison, so the
// raw strings are used as a final tiebreak to keep the order total.
func NaturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ra, ni := digitRun(a, i)
			rb, nj := digitRun(b, j)
			if c := compareDigitRuns(ra, rb); c != 0 {
				return c
			}
			i, j = ni, nj
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digitRun returns the maximal digit run starting at position i and the
// position just past it.
func digitRun(s string, i int) (string, int) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[start:i], i
}

// compareDigitRuns compares two digit runs by integer value without
// converting them, so arbitrarily long runs are safe.
func compareDigitRuns(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	// Equal values compare equal here; NaturalCompare's final raw-string
	// comparison settles differences in zero padding.
	return strings.Compare(ta, tb)
}
