package mtree

import (
	"container/heap"
	"math"
)

// parentFilterPasses implements the "parent filter" pruning test shared
// by leaf and internal per-node search: using the cached distance from
// an entry to its parent's routing object plus the triangle inequality,
// it decides whether d(query, entry) could possibly fall inside the
// current search radius without computing it. extraRadius is the
// entry's own covering radius for internal entries, 0 for leaf entries.
// The root has no parent entry to filter against, so it never prunes.
func parentFilterPasses(isRoot bool, dParentQuery, distanceToParent, searchRadius, extraRadius float64) bool {
	if isRoot {
		return true
	}
	return math.Abs(dParentQuery-distanceToParent) <= searchRadius+extraRadius
}

// prEntry is a candidate subtree waiting to be expanded, keyed by dmin:
// a triangle-inequality lower bound on the distance from the query to
// any object the subtree could contain. dQuery is d(query, routing_obj)
// of the entry that pointed at this subtree, cached for reuse when the
// subtree's own entries are examined.
type prEntry[O any] struct {
	subtree *node[O]
	dmin    float64
	dQuery  float64
}

// prQueue is the branch-and-bound priority queue of pending subtrees,
// a container/heap min-heap ordered by dmin.
type prQueue[O any] struct {
	items []*prEntry[O]
}

func (q *prQueue[O]) Len() int            { return len(q.items) }
func (q *prQueue[O]) Less(i, j int) bool  { return q.items[i].dmin < q.items[j].dmin }
func (q *prQueue[O]) Swap(i, j int)       { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *prQueue[O]) Push(x interface{})  { q.items = append(q.items, x.(*prEntry[O])) }
func (q *prQueue[O]) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}

func (q *prQueue[O]) push(e *prEntry[O]) { heap.Push(q, e) }
func (q *prQueue[O]) pop() *prEntry[O]   { return heap.Pop(q).(*prEntry[O]) }

// nnResult is one slot of the bounded result accumulator.
type nnResult[O any] struct {
	obj  O
	has  bool
	dmax float64
}

// nn is the bounded, distance-ordered result accumulator. It is
// initialized to `capacity` sentinel slots at +Inf and keeps exactly
// that many as offerResult inserts real results in ascending-dmax order
// and drops the worst. tightenRadius narrows the pruning frontier
// without adding a result, used when an internal entry's own dmax upper
// bound proves the frontier can shrink (only for a single-slot
// accumulator, see tightenRadius) -- kept as a separate method
// from offerResult rather than one `update(obj, dmax)` overloaded on a
// nil obj, to keep the two kinds of update explicit at each call site.
//
// For a k-NN query the search radius is the k-th smallest dmax seen so
// far, which shrinks as better candidates are found. For a range query
// pinnedRadius holds the caller's fixed radius instead.
type nn[O any] struct {
	elems        []nnResult[O]
	dmax         float64
	pinnedRadius *float64
}

func newKNNAccumulator[O any](k int) *nn[O] {
	elems := make([]nnResult[O], k)
	for i := range elems {
		elems[i].dmax = math.Inf(1)
	}
	return &nn[O]{elems: elems, dmax: math.Inf(1)}
}

func newRangeAccumulator[O any](capacity int, r float64) *nn[O] {
	elems := make([]nnResult[O], capacity)
	for i := range elems {
		elems[i].dmax = math.Inf(1)
	}
	return &nn[O]{elems: elems, dmax: math.Inf(1), pinnedRadius: &r}
}

func (a *nn[O]) searchRadius() float64 {
	if a.pinnedRadius != nil {
		return *a.pinnedRadius
	}
	if len(a.elems) == 0 {
		return a.dmax
	}
	return min(a.elems[len(a.elems)-1].dmax, a.dmax)
}

// tightenRadius narrows the global pruning frontier without adding a
// result to the accumulator. A subtree's dmax only guarantees one object
// within that distance, so it bounds the k-th result only when k is 1;
// for larger accumulators the call has no effect.
func (a *nn[O]) tightenRadius(dmax float64) {
	if len(a.elems) != 1 {
		return
	}
	if dmax < a.dmax {
		a.dmax = dmax
	}
}

// offerResult inserts (obj, dmax) in ascending order and drops the
// worst element, keeping exactly capacity slots.
func (a *nn[O]) offerResult(obj O, dmax float64) {
	if len(a.elems) == 0 {
		return
	}
	a.elems = append(a.elems, nnResult[O]{obj: obj, has: true, dmax: dmax})
	for i := len(a.elems) - 1; i > 0; i-- {
		if a.elems[i].dmax < a.elems[i-1].dmax {
			a.elems[i], a.elems[i-1] = a.elems[i-1], a.elems[i]
		} else {
			break
		}
	}
	a.elems = a.elems[:len(a.elems)-1]
}

func (a *nn[O]) results() []O {
	out := make([]O, 0, len(a.elems))
	for _, e := range a.elems {
		if e.has {
			out = append(out, e.obj)
		}
	}
	return out
}

// runQuery is the branch-and-bound driver shared by KNN and Range: pop
// the subtree with the smallest dmin, expand it, and stop as soon as
// the smallest remaining dmin exceeds the current search radius. Each
// subtree is expanded at most once and PR shrinks in dmin order, so
// this always terminates.
func (t *Tree[O]) runQuery(query O, acc *nn[O]) ([]O, error) {
	pr := &prQueue[O]{}
	pr.push(&prEntry[O]{subtree: t.root, dmin: 0, dQuery: 0})
	for pr.Len() > 0 {
		pe := pr.pop()
		if pe.dmin > acc.searchRadius() {
			break
		}
		if err := pe.subtree.search(query, pr, acc, pe.dQuery); err != nil {
			return nil, err
		}
	}
	return acc.results(), nil
}
