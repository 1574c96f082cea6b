package mtree

// split handles overflow when node n is full and entry x still needs a
// home: promote two routing objects, partition n's entries plus x
// between them, rewrite n and a fresh sibling, then propagate the new
// sibling entry up to n's parent -- growing a new root if n was the
// root, cascading into another split if the parent is itself full.
//
// The two halves are fully rebuilt (via setEntriesAndParentEntry) before
// either touches n's parent, so a DistanceFunctionFault raised by the
// promote/partition calls below leaves n's original entries untouched;
// once setEntriesAndParentEntry returns for both nodes the new state is
// the only state, per the atomicity requirement on distance faults.
func (t *Tree[O]) split(n *node[O], x *Entry[O]) error {
	assertf(n.isFull(), "split called on a node that is not full")

	all := make([]*Entry[O], len(n.entries)+1)
	copy(all, n.entries)
	all[len(n.entries)] = x

	o1, o2, err := t.promote(all, n.parentEntry, t.dist)
	if err != nil {
		return err
	}
	group1, group2, err := t.partition(all, o1, o2, t.dist)
	if err != nil {
		return err
	}
	assertf(len(group1) > 0 && len(group2) > 0, "split produced an empty side")

	sibling := &node[O]{tree: t, leaf: n.leaf}
	existingEntry := newRoutingEntry(o1, n)
	siblingEntry := newRoutingEntry(o2, sibling)
	oldParentEntry := n.parentEntry
	wasRoot := n.isRoot()

	if err := n.setEntriesAndParentEntry(group1, existingEntry); err != nil {
		return err
	}
	if err := sibling.setEntriesAndParentEntry(group2, siblingEntry); err != nil {
		return err
	}

	if wasRoot {
		newRoot := newInternalNode(t)
		n.parentNode = newRoot
		sibling.parentNode = newRoot
		newRoot.addEntryUnchecked(existingEntry)
		newRoot.addEntryUnchecked(siblingEntry)
		t.root = newRoot
		t.logGrowRoot(newRoot)
		return nil
	}

	parent := n.parentNode
	assertf(parent != nil, "split: non-root node has no parent")

	if !parent.isRoot() {
		d1, err := t.dist(o1, parent.parentEntry.obj)
		if err != nil {
			return err
		}
		existingEntry.setDistanceToParent(d1)
		d2, err := t.dist(o2, parent.parentEntry.obj)
		if err != nil {
			return err
		}
		siblingEntry.setDistanceToParent(d2)
	}

	parent.removeEntry(oldParentEntry)
	parent.addEntryUnchecked(existingEntry)

	if !parent.isFull() {
		parent.addEntryUnchecked(siblingEntry)
		sibling.parentNode = parent
		return nil
	}
	t.logSplit(parent)
	return t.split(parent, siblingEntry)
}
