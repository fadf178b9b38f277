package cluster

import (
	"math"
	"sort"
)

// Cluster is a group of data points. At any time it holds an ID (the ID
// of its first representative member), the member IDs in natural order,
// the merge-tree height, an internal cohesion score, and the
// similarities to the other extant clusters it shares an edge with.
//
// Each data point starts in its own cluster. The merge loop groups them
// together until any further merge would dilute the clusters below the
// caller's cutoff.
type Cluster struct {
	id      string
	members []string
	simMap  map[string]*Similarity
	height  int
	score   float64
}

// NewCluster constructs a singleton cluster for one data point. The
// internal score starts at +Inf so singletons sort ahead of scored
// clusters of the same size and among themselves only by ID, and so the
// average-linkage recurrence can ignore them.
func NewCluster(dataID string) *Cluster {
	return &Cluster{
		id:      dataID,
		members: []string{dataID},
		simMap:  make(map[string]*Similarity),
		height:  1,
		score:   math.Inf(1),
	}
}

// ID returns the cluster's ID, stable for its lifetime.
func (c *Cluster) ID() string { return c.id }

// Size returns the number of member data points.
func (c *Cluster) Size() int { return len(c.members) }

// Members returns the member IDs in natural order.
func (c *Cluster) Members() []string { return c.members }

// Height returns the depth of the merge tree rooted at this cluster;
// singletons have height 1.
func (c *Cluster) Height() int { return c.height }

// Score returns the internal cohesion score.
func (c *Cluster) Score() float64 { return c.score }

// AddSim records an edge to another cluster, overwriting any prior edge
// to the same neighbour.
func (c *Cluster) AddSim(sim *Similarity) {
	c.simMap[sim.OtherID(c.id)] = sim
}

// AddSims records a batch of edges.
func (c *Cluster) AddSims(sims []*Similarity) {
	for _, sim := range sims {
		c.AddSim(sim)
	}
}

// RemoveSim drops the edge to the given cluster.
func (c *Cluster) RemoveSim(other *Cluster) {
	delete(c.simMap, other.id)
}

// ScoreTo returns the similarity score to the cluster with the given
// ID, or -Inf when no edge is recorded.
func (c *Cluster) ScoreTo(otherID string) float64 {
	if sim, ok := c.simMap[otherID]; ok {
		return sim.Score()
	}
	return math.Inf(-1)
}

// ScoreToCluster returns the similarity score to the given cluster, or
// -Inf when no edge is recorded.
func (c *Cluster) ScoreToCluster(other *Cluster) float64 {
	return c.ScoreTo(other.id)
}

// Sims returns the current adjacent edges. The slice is a snapshot;
// mutations of the cluster after the call do not affect it.
func (c *Cluster) Sims() []*Similarity {
	sims := make([]*Similarity, 0, len(c.simMap))
	for _, sim := range c.simMap {
		sims = append(sims, sim)
	}
	return sims
}

// SimCount returns the number of adjacent edges.
func (c *Cluster) SimCount() int { return len(c.simMap) }

// merge absorbs the other cluster's membership and bumps the height.
// Scores and adjacencies are the group's responsibility.
func (c *Cluster) merge(other *Cluster) {
	c.members = unionSorted(c.members, other.members)
	c.height = max(c.height, other.height) + 1
}

func (c *Cluster) setScore(newScore float64) {
	c.score = newScore
}

// Less orders clusters for listing: largest first, then highest score,
// then ascending ID in natural order.
func (c *Cluster) Less(o *Cluster) bool {
	if c.Size() != o.Size() {
		return c.Size() > o.Size()
	}
	if c.score != o.score {
		return c.score > o.score
	}
	return NaturalCompare(c.id, o.id) < 0
}

func (c *Cluster) String() string { return c.id }

// unionSorted merges two member slices already in natural order.
// Member sets of distinct clusters are disjoint, but equal IDs are
// deduplicated anyway.
func unionSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := NaturalCompare(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// SortClusters sorts a cluster slice by the listing order.
func SortClusters(clusters []*Cluster) {
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Less(clusters[j])
	})
}
