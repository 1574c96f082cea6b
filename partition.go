package mtree

// PartitionPolicy divides the entries of an overflowing node between two
// already-chosen routing objects. Like PromotionPolicy, implementations
// should be pure functions of their arguments plus dist.
type PartitionPolicy[O any] func(entries []*Entry[O], o1, o2 O, dist checkedDistance[O]) (group1, group2 []*Entry[O], err error)

// GeneralizedHyperplane assigns each entry to whichever routing object
// it is nearer to, ties going to o1. If every entry lands on the same
// side -- only possible when every object is equidistant from both
// (i.e. all identical) -- it falls back to a deterministic positional
// halving rather than leave a side empty.
func GeneralizedHyperplane[O any](entries []*Entry[O], o1, o2 O, dist checkedDistance[O]) ([]*Entry[O], []*Entry[O], error) {
	group1 := make([]*Entry[O], 0, len(entries))
	group2 := make([]*Entry[O], 0, len(entries))
	for _, e := range entries {
		d1, err := dist(e.obj, o1)
		if err != nil {
			return nil, nil, err
		}
		d2, err := dist(e.obj, o2)
		if err != nil {
			return nil, nil, err
		}
		if d1 <= d2 {
			group1 = append(group1, e)
		} else {
			group2 = append(group2, e)
		}
	}
	if len(group1) == 0 || len(group2) == 0 {
		half := len(entries) / 2
		group1 = append([]*Entry[O]{}, entries[:half]...)
		group2 = append([]*Entry[O]{}, entries[half:]...)
	}
	return group1, group2, nil
}
