package mtree

// PromotionPolicy chooses two routing objects from the full entry set of
// an overflowing node (the node's own entries plus the one that
// triggered the overflow). current is the entry describing the
// overflowing node inside its own parent, or nil if the node is the
// root. Per the design notes, implementations should be pure functions
// of their arguments plus dist -- they must not capture tree state.
type PromotionPolicy[O any] func(entries []*Entry[O], current *Entry[O], dist checkedDistance[O]) (o1, o2 O, err error)

// MLBDistConfirmed is the default promotion policy. When current is
// non-nil and every entry has a defined distance_to_parent, it reuses
// current's object as one promoted object and picks the entry with
// maximum distance_to_parent as the other, saving a round of distance
// computation. Otherwise it falls back to MLBDistNonConfirmed.
func MLBDistConfirmed[O any](entries []*Entry[O], current *Entry[O], dist checkedDistance[O]) (O, O, error) {
	if current == nil {
		return MLBDistNonConfirmed(entries, current, dist)
	}
	for _, e := range entries {
		if !e.hasDistToParent {
			return MLBDistNonConfirmed(entries, current, dist)
		}
	}
	farthest := entries[0]
	for _, e := range entries[1:] {
		if e.distToParent > farthest.distToParent {
			farthest = e
		}
	}
	return current.obj, farthest.obj, nil
}

// MLBDistNonConfirmed picks the pair of entry objects maximizing d(o1,
// o2) over every unordered pair -- O(len(entries)^2) distance calls.
func MLBDistNonConfirmed[O any](entries []*Entry[O], _ *Entry[O], dist checkedDistance[O]) (O, O, error) {
	assertf(len(entries) >= 1, "promote: empty entry set")
	bestA, bestB := entries[0].obj, entries[0].obj
	bestD := -1.0
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			d, err := dist(entries[i].obj, entries[j].obj)
			if err != nil {
				var zero O
				return zero, zero, err
			}
			if d > bestD {
				bestD = d
				bestA, bestB = entries[i].obj, entries[j].obj
			}
		}
	}
	return bestA, bestB, nil
}
