package mtree

import (
	"fmt"
	"io"
	"strings"
)

// TreeStats summarizes tree shape, computed with a single node walk.
type TreeStats struct {
	Size      int // number of indexed objects, same as Len()
	Height    int // number of edges from root to a leaf
	NodeCount int
	LeafCount int
}

// Stats walks the tree once and reports its current shape.
func (t *Tree[O]) Stats() TreeStats {
	stats := TreeStats{Size: t.size}
	t.root.walkNodes(0, func(depth int, n *node[O]) {
		stats.NodeCount++
		if n.leaf {
			stats.LeafCount++
		}
		if depth > stats.Height {
			stats.Height = depth
		}
	})
	return stats
}

// Dump writes a human-readable pre-order rendering of the tree to w,
// a header line per node followed by one line per entry, indented by
// depth with a "." per level.
func (t *Tree[O]) Dump(w io.Writer) error {
	return t.root.dumpRec(w, 0)
}

func (n *node[O]) dumpRec(w io.Writer, depth int) error {
	indent := strings.Repeat(".", depth)
	kind := "LEAF"
	if !n.leaf {
		kind = "INTERNAL"
	}
	if _, err := fmt.Fprintf(w, "%s[%s] depth:%d entries:%d\n", indent, kind, depth, len(n.entries)); err != nil {
		return err
	}
	for _, e := range n.entries {
		if e.IsLeafEntry() {
			if _, err := fmt.Fprintf(w, "%s  obj:%v\n", indent, e.obj); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  obj:%v radius:%v\n", indent, e.obj, e.radius); err != nil {
			return err
		}
		if err := e.subtree.dumpRec(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
