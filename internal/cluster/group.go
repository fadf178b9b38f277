package cluster

import "math"

// Group manages an agglomerative clustering run. It owns the map of
// extant clusters and the queue of similarities between them.
//
// A group is built by adding the similarity scores of data-point pairs.
// The points are specified by ID only, so each one starts in a cluster
// by itself with the similarities stored in the appropriate places. The
// primary operation is merging the two closest clusters, which requires
// updating all the affected similarities under the group's linkage
// method.
//
// A group is not safe for concurrent use; callers must not read or
// mutate it while Merge is running.
type Group struct {
	clusters map[string]*Cluster
	queue    *simQueue
	method   Linkage
	maxSize  int
}

// NewGroup creates an empty group. size is the estimated number of data
// points, used to presize the cluster map; method selects how merged
// similarities are computed. The size cap defaults to unbounded.
func NewGroup(size int, method Linkage) *Group {
	if size < 0 {
		size = 0
	}
	return &Group{
		clusters: make(map[string]*Cluster, (size+1)*4/3),
		queue:    newSimQueue(),
		method:   method,
		maxSize:  math.MaxInt,
	}
}

// Method returns the group's linkage method.
func (g *Group) Method() Linkage { return g.method }

// AddSim records a similarity observation between two data points,
// creating singleton clusters for IDs seen for the first time. A pair
// seen twice keeps a single edge carrying the latest score, in the
// queue as well as in both adjacency maps. Self-pairs are ignored.
func (g *Group) AddSim(id1, id2 string, score float64) {
	if id1 == id2 {
		return
	}
	cl1 := g.fetch(id1)
	cl2 := g.fetch(id2)
	sim := NewSimilarity(id1, id2, score)
	cl1.AddSim(sim)
	cl2.AddSim(sim)
	g.queue.replace(sim)
}

func (g *Group) fetch(id string) *Cluster {
	cl, ok := g.clusters[id]
	if !ok {
		cl = NewCluster(id)
		g.clusters[id] = cl
	}
	return cl
}

// Size returns the number of extant clusters.
func (g *Group) Size() int { return len(g.clusters) }

// QueueLen returns the number of distinct edges currently queued.
func (g *Group) QueueLen() int { return g.queue.Len() }

// GetCluster returns the extant cluster with the given ID, or nil.
func (g *Group) GetCluster(id string) *Cluster {
	return g.clusters[id]
}

// GetClusters returns all extant clusters, largest first, then highest
// score, then ascending ID in natural order.
func (g *Group) GetClusters() []*Cluster {
	list := make([]*Cluster, 0, len(g.clusters))
	for _, cl := range g.clusters {
		list = append(list, cl)
	}
	SortClusters(list)
	return list
}

// MaxSize returns the maximum permissible cluster size.
func (g *Group) MaxSize() int { return g.maxSize }

// SetMaxSize caps the size of any cluster produced by future merges.
func (g *Group) SetMaxSize(maxSize int) { g.maxSize = maxSize }

// Merge merges the two closest clusters if their similarity is at
// least minSim, returning true on success and false when nothing can
// be merged under the cutoff and size cap. Callers loop until false.
//
// A popped edge is never put back: if it is below the cutoff it was
// the best remaining, so no merge is possible; if it would violate the
// size cap, its endpoints can only grow, so the pair is disqualified
// for good.
func (g *Group) Merge(minSim float64) bool {
	for g.queue.Len() > 0 {
		closest := g.queue.popBest()
		simAB := closest.Score()
		if simAB < minSim {
			// We have run out of permissible similarities.
			return false
		}
		clA := g.clusters[closest.ID1()]
		clB := g.clusters[closest.ID2()]
		if clA.Size()+clB.Size() > g.maxSize {
			continue
		}
		// Remove all the similarities of A and B from the queue. The A
		// similarities come back with new scores; B's are garbage from
		// here on. This must happen before any score changes or the
		// queue's sort positions go stale.
		g.queue.removeAll(clB.Sims())
		g.queue.removeAll(clA.Sims())
		// Drop the A-B edge from A's side so it is not iterated below.
		// B's side disappears wholesale when B is deleted.
		clA.RemoveSim(clB)
		clASims := clA.Sims()
		// Compute the merged internal score now; the edge updates below
		// still need the old sizes and old internal scores.
		newScore := g.method.MergedScore(clA.Score(), clB.Score(), simAB, clA.Size(), clB.Size())
		// Rescore A's outgoing edges as merged-AB edges. Each update
		// reads only pre-merge state of A, B, and X and writes one
		// edge, so the order is irrelevant.
		for _, sim := range clASims {
			clX := g.clusters[sim.OtherID(clA.ID())]
			sim.update(g.method, simAB, clA, clB, clX)
		}
		// Detach B from its neighbours.
		for _, sim := range clB.Sims() {
			if clY := g.clusters[sim.OtherID(clB.ID())]; clY != nil {
				clY.RemoveSim(clB)
			}
		}
		// If the merged cluster is already at the cap, none of its
		// edges can ever be chosen, so they are abandoned.
		if clA.Size()+clB.Size() < g.maxSize {
			g.queue.addAll(clASims)
		}
		// Membership and score changes come last; everything above
		// relied on the old sizes.
		clA.merge(clB)
		delete(g.clusters, clB.ID())
		clA.setScore(newScore)
		return true
	}
	return false
}
