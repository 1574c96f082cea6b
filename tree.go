// Package mtree implements an in-memory M-tree: a height-balanced,
// dynamic index over an arbitrary metric space, supporting incremental
// insertion and k-nearest-neighbor / range similarity queries. Indexing
// is parameterized by a caller-supplied Distance that must satisfy the
// metric axioms (non-negativity, identity of indiscernibles, symmetry,
// triangle inequality); pruning correctness depends on the triangle
// inequality holding.
//
// The package has no notion of persistence, concurrent mutation,
// deletion, true bulk-loading, approximate search, or serialization.
// Callers that need a CSV/tabular loader, an interactive query prompt,
// or an application-specific metric implement those themselves on top
// of this package's Insert/KNN/Range surface.
package mtree

import (
	"fmt"

	"github.com/tormol/mtree/internal/mlog"
)

const defaultMaxNodeSize = 4

// Tree owns the root, size, and the parameters every insert and query
// is performed against.
type Tree[O any] struct {
	root *node[O]
	size int

	d           Distance[O]
	dist        checkedDistance[O]
	maxNodeSize int
	promote     PromotionPolicy[O]
	partition   PartitionPolicy[O]

	log *mlog.Logger
}

// Option configures a Tree at construction time.
type Option[O any] func(*Tree[O])

// WithMaxNodeSize sets M, the maximum number of entries per node.
// Defaults to 4 if not given.
func WithMaxNodeSize[O any](m int) Option[O] {
	return func(t *Tree[O]) { t.maxNodeSize = m }
}

// WithPromotionPolicy overrides the default MLBDistConfirmed policy.
func WithPromotionPolicy[O any](p PromotionPolicy[O]) Option[O] {
	return func(t *Tree[O]) { t.promote = p }
}

// WithPartitionPolicy overrides the default GeneralizedHyperplane policy.
func WithPartitionPolicy[O any](p PartitionPolicy[O]) Option[O] {
	return func(t *Tree[O]) { t.partition = p }
}

// WithLogger wires structured instrumentation (splits that cascade into
// a full parent, and root growth) into an slog.Handler-backed logger.
// Disabled by default.
func WithLogger[O any](l *mlog.Logger) Option[O] {
	return func(t *Tree[O]) { t.log = l }
}

// New builds an empty tree. max_node_size defaults to 4 and must be >=
// 2; d must be non-nil. Both violations return an *InvalidArgumentError.
func New[O any](d Distance[O], opts ...Option[O]) (*Tree[O], error) {
	if d == nil {
		return nil, invalidArgument("d", "distance function must not be nil")
	}
	t := &Tree[O]{
		d:           d,
		dist:        checkDistance(d),
		maxNodeSize: defaultMaxNodeSize,
		promote:     MLBDistConfirmed[O],
		partition:   GeneralizedHyperplane[O],
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxNodeSize < 2 {
		return nil, invalidArgument("max_node_size", fmt.Sprintf("must be >= 2, got %d", t.maxNodeSize))
	}
	t.root = newLeafNode(t)
	return t, nil
}

// Len returns the number of objects held by the tree.
func (t *Tree[O]) Len() int { return t.size }

// Insert adds obj to the tree, descending from the root and splitting
// nodes as needed.
func (t *Tree[O]) Insert(obj O) error {
	if err := t.root.add(obj); err != nil {
		return err
	}
	t.size++
	return nil
}

// BulkInsert inserts every object in objs, in order, stopping at (and
// reporting) the first failure. There is no true bulk-loading
// algorithm; this is repeated Insert.
func (t *Tree[O]) BulkInsert(objs []O) error {
	for i, obj := range objs {
		if err := t.Insert(obj); err != nil {
			return fmt.Errorf("mtree: bulk insert failed at index %d: %w", i, err)
		}
	}
	return nil
}

// KNN returns up to k objects realizing the smallest d(query, ·)
// values, ascending by distance. Returns an empty slice if k is 0 or
// the tree is empty. A negative k is an *InvalidArgumentError.
func (t *Tree[O]) KNN(query O, k int) ([]O, error) {
	if k < 0 {
		return nil, invalidArgument("k", "must be >= 0")
	}
	if k > t.size {
		k = t.size
	}
	if k == 0 {
		return nil, nil
	}
	return t.runQuery(query, newKNNAccumulator[O](k))
}

// Range returns every object within distance r of query, ascending by
// distance. A negative r is an *InvalidArgumentError.
func (t *Tree[O]) Range(query O, r float64) ([]O, error) {
	if r < 0 || isFaultyDistance(r) {
		return nil, invalidArgument("r", "must be a finite value >= 0")
	}
	if t.size == 0 {
		return nil, nil
	}
	return t.runQuery(query, newRangeAccumulator[O](t.size, r))
}

// Walk visits every entry in pre-order: each routing entry is visited
// just before descending into its subtree, and leaf entries are visited
// in place. radius is nil for leaf entries. Stops early if visit returns
// false.
func (t *Tree[O]) Walk(visit func(depth int, radius *float64, obj O) bool) {
	t.root.walk(0, func(depth int, e *Entry[O], isLeafEntry bool) bool {
		if isLeafEntry {
			return visit(depth, nil, e.obj)
		}
		r := e.radius
		return visit(depth, &r, e.obj)
	})
}

func (t *Tree[O]) logSplit(parent *node[O]) {
	if t.log == nil {
		return
	}
	t.log.Debug("mtree: node split", "parent_entry_count", len(parent.entries))
}

func (t *Tree[O]) logGrowRoot(newRoot *node[O]) {
	if t.log == nil {
		return
	}
	t.log.Info("mtree: root grew", "root_entry_count", len(newRoot.entries))
}
