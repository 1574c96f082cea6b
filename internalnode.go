package mtree

// addInternal picks a descent target: prefer an entry whose covering
// radius already contains obj, minimizing distance; only
// if none qualifies, pick the entry needing the least radius enlargement
// and grow it. distToObj is memoized for the whole call so each entry's
// distance is computed exactly once, regardless of how many times the
// two passes below look at it.
func (n *node[O]) addInternal(obj O) error {
	distToObj := make(map[*Entry[O]]float64, len(n.entries))
	for _, e := range n.entries {
		d, err := n.tree.dist(obj, e.obj)
		if err != nil {
			return err
		}
		distToObj[e] = d
	}

	var best *Entry[O]
	for _, e := range n.entries {
		if distToObj[e] <= e.radius {
			if best == nil || distToObj[e] < distToObj[best] {
				best = e
			}
		}
	}
	if best == nil {
		for _, e := range n.entries {
			if best == nil || (distToObj[e]-e.radius) < (distToObj[best]-best.radius) {
				best = e
			}
		}
		best.radius = distToObj[best]
	}
	assertf(best != nil, "addInternal: node has no entries to descend into")
	return best.subtree.add(obj)
}

func (n *node[O]) internalCoveringRadiusFor(obj O) (float64, error) {
	max := 0.0
	for _, e := range n.entries {
		d, err := n.tree.dist(obj, e.obj)
		if err != nil {
			return 0, err
		}
		if v := d + e.radius; v > max {
			max = v
		}
	}
	return max, nil
}

func (n *node[O]) searchInternal(query O, pr *prQueue[O], acc *nn[O], dParentQuery float64) error {
	for _, e := range n.entries {
		if !parentFilterPasses(n.isRoot(), dParentQuery, e.distToParent, acc.searchRadius(), e.radius) {
			continue
		}
		dEntryQuery, err := n.tree.dist(e.obj, query)
		if err != nil {
			return err
		}
		entryDmin := dEntryQuery - e.radius
		if entryDmin < 0 {
			entryDmin = 0
		}
		if entryDmin <= acc.searchRadius() {
			pr.push(&prEntry[O]{subtree: e.subtree, dmin: entryDmin, dQuery: dEntryQuery})
			entryDmax := dEntryQuery + e.radius
			if entryDmax < acc.searchRadius() {
				acc.tightenRadius(entryDmax)
			}
		}
	}
	return nil
}
