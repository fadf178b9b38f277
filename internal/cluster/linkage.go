package cluster

import (
	"fmt"
	"math"
	"strings"
)

// Linkage selects how similarities are recomputed when two clusters
// merge. The only thing that varies between the methods is the pair of
// pure update formulas below.
//
// Complete produces small, tight clusters. Average produces slightly
// larger clusters and is useful when the data is fuzzy. Single is the
// traditional method, but it is prone to long chains.
type Linkage int

const (
	// Complete takes the similarity of the least similar elements of the two sets.
	Complete Linkage = iota
	// Single takes the similarity of the most similar elements of the two sets.
	Single
	// Average takes the mean similarity between the data points of the two sets.
	Average
)

// String returns the string representation of a Linkage.
func (l Linkage) String() string {
	switch l {
	case Complete:
		return "complete"
	case Single:
		return "single"
	case Average:
		return "average"
	default:
		return "unknown"
	}
}

// ParseLinkage converts a method name into a Linkage.
func ParseLinkage(s string) (Linkage, error) {
	switch strings.ToLower(s) {
	case "complete":
		return Complete, nil
	case "single":
		return Single, nil
	case "average":
		return Average, nil
	default:
		return Complete, fmt.Errorf("invalid linkage method %q, must be one of: complete, single, average", s)
	}
}

// MergedSim computes the similarity between the merged cluster AB and an
// external cluster X. ab is the similarity of A to B, ax of A to X, bx
// of B to X; asz, bsz, and xsz are the pre-merge cluster sizes.
func (l Linkage) MergedSim(ab, ax, bx float64, asz, bsz, xsz int) float64 {
	switch l {
	case Single:
		// AX and BX are already the highest similarity of X to A and
		// the highest of X to B.
		return math.Max(ax, bx)
	case Average:
		// AX is the mean of all elements of A to all elements of X,
		// likewise BX. The set sizes recover the new mean from the old
		// means.
		return (float64(asz)*ax + float64(bsz)*bx) / float64(asz+bsz)
	default:
		// AX and BX are already the lowest similarity of X to A and
		// the lowest of X to B.
		return math.Min(ax, bx)
	}
}

// MergedScore computes the internal similarity of the merged cluster.
// a and b are the pre-merge internal scores of A and B, ab the
// similarity between them, asz and bsz the pre-merge sizes. An internal
// score is only meaningful when the cluster has more than one member,
// which is what the size guards test.
func (l Linkage) MergedScore(a, b, ab float64, asz, bsz int) float64 {
	switch l {
	case Single:
		r := ab
		if asz > 1 {
			r = math.Max(r, a)
		}
		if bsz > 1 {
			r = math.Max(r, b)
		}
		return r
	case Average:
		r := ab
		n := asz * bsz
		if asz > 1 {
			// The A mean is weighted by the number of connections
			// inside A, which is asz*(asz-1)/2.
			triangle := asz * (asz - 1) / 2
			r = (r*float64(n) + a*float64(triangle)) / float64(n+triangle)
			n += triangle
		}
		if bsz > 1 {
			triangle := bsz * (bsz - 1) / 2
			r = (r*float64(n) + b*float64(triangle)) / float64(n+triangle)
		}
		return r
	default:
		return math.Min(math.Min(a, b), ab)
	}
}
