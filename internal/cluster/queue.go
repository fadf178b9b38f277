package cluster

import "sort"

type simKey struct {
	id1 string
	id2 string
}

func keyOf(s *Similarity) simKey {
	return simKey{id1: s.cluster1, id2: s.cluster2}
}

// simQueue is the ordered multiset of candidate merges. Entries are
// kept sorted by compareSims (best score first) with set semantics
// over the endpoint pair: at most one entry per pair of clusters.
//
// Entry scores are mutated during merges, which would corrupt the sort
// order, so the merge algorithm always removes an entry before its
// score changes and reinserts it afterwards.
type simQueue struct {
	entries []*Similarity
	index   map[simKey]*Similarity
}

func newSimQueue() *simQueue {
	return &simQueue{index: make(map[simKey]*Similarity)}
}

func (q *simQueue) Len() int { return len(q.entries) }

// searchFor locates the sorted position for s. The position is exact as
// long as s.score has not changed since any prior insertion.
func (q *simQueue) searchFor(s *Similarity) int {
	return sort.Search(len(q.entries), func(i int) bool {
		return compareSims(q.entries[i], s) >= 0
	})
}

// add inserts the edge unless an entry for the same pair is already
// present.
func (q *simQueue) add(s *Similarity) {
	k := keyOf(s)
	if _, ok := q.index[k]; ok {
		return
	}
	i := q.searchFor(s)
	q.entries = append(q.entries, nil)
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = s
	q.index[k] = s
}

// replace drops any entry over the same pair and inserts the new edge,
// so a re-ingested pair carries the latest score in the queue as well
// as in the adjacencies.
func (q *simQueue) replace(s *Similarity) {
	if old, ok := q.index[keyOf(s)]; ok {
		q.remove(old)
	}
	q.add(s)
}

// popBest removes and returns the highest-scoring entry, or nil when
// the queue is empty.
func (q *simQueue) popBest() *Similarity {
	if len(q.entries) == 0 {
		return nil
	}
	s := q.entries[0]
	q.entries = q.entries[1:]
	delete(q.index, keyOf(s))
	return s
}

// remove drops the entry for s's pair if present. The lookup is by the
// stored entry's own score, so it stays correct even if s is a newer
// edge object for the same pair.
func (q *simQueue) remove(s *Similarity) {
	stored, ok := q.index[keyOf(s)]
	if !ok {
		return
	}
	i := q.searchFor(stored)
	for i < len(q.entries) && q.entries[i] != stored {
		i++
	}
	if i < len(q.entries) {
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
	}
	delete(q.index, keyOf(stored))
}

// removeAll drops every listed edge that is present.
func (q *simQueue) removeAll(sims []*Similarity) {
	for _, s := range sims {
		q.remove(s)
	}
}

// addAll inserts every listed edge, skipping pairs already present.
func (q *simQueue) addAll(sims []*Similarity) {
	for _, s := range sims {
		q.add(s)
	}
}
