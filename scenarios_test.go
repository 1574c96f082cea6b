package mtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scenario is one row of the end-to-end scenario table: build a tree
// from setup, run op, and check the result against want (as a set,
// ties are not required to break any particular way unless the
// scenario says so).
type scenario struct {
	name  string
	setup []float64
	run   func(t *testing.T, tr *Tree[float64]) []float64
	want  []float64
}

func TestScenarioTable(t *testing.T) {
	scenarios := []scenario{
		{
			name:  "empty tree knn returns nothing",
			setup: nil,
			run: func(t *testing.T, tr *Tree[float64]) []float64 {
				got, err := tr.KNN(42, 3)
				require.NoError(t, err)
				return got
			},
			want: nil,
		},
		{
			name:  "range after five evenly spaced inserts",
			setup: []float64{0, 10, 20, 30, 40},
			run: func(t *testing.T, tr *Tree[float64]) []float64 {
				got, err := tr.Range(15, 6)
				require.NoError(t, err)
				return got
			},
			want: []float64{10, 20},
		},
		{
			name:  "knn three nearest of one through nine in order",
			setup: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
			run: func(t *testing.T, tr *Tree[float64]) []float64 {
				got, err := tr.KNN(5, 3)
				require.NoError(t, err)
				return got
			},
			want: []float64{4, 5, 6},
		},
		{
			name:  "range around fifty over one through a hundred",
			setup: makeRange(1, 100),
			run: func(t *testing.T, tr *Tree[float64]) []float64 {
				got, err := tr.Range(50, 2.5)
				require.NoError(t, err)
				return got
			},
			want: []float64{48, 49, 50, 51, 52},
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			tr := newFloatTree(t, 4)
			for _, v := range sc.setup {
				require.NoError(t, tr.Insert(v))
			}
			checkInvariants(t, tr)
			got := sc.run(t, tr)
			require.ElementsMatch(t, sc.want, got)
		})
	}
}

func TestScenarioAllIdenticalObjectsThenKNN(t *testing.T) {
	tr := newFloatTree(t, 4)
	for i := 0; i < 6; i++ {
		require.NoError(t, tr.Insert(0))
	}
	checkInvariants(t, tr)
	require.Equal(t, 6, tr.Len())

	got, err := tr.KNN(0, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, v := range got {
		require.Equal(t, 0.0, v)
	}
}

func TestScenarioForwardAndReverseInsertAgreeAsSets(t *testing.T) {
	forward := newFloatTree(t, 4)
	for _, v := range makeRange(1, 8) {
		require.NoError(t, forward.Insert(v))
	}
	reverse := newFloatTree(t, 4)
	for _, v := range reverseOf(makeRange(1, 8)) {
		require.NoError(t, reverse.Insert(v))
	}
	checkInvariants(t, forward)
	checkInvariants(t, reverse)

	a, err := forward.KNN(4, 5)
	require.NoError(t, err)
	b, err := reverse.KNN(4, 5)
	require.NoError(t, err)
	require.ElementsMatch(t, a, b)
}

func makeRange(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, float64(i))
	}
	return out
}

func reverseOf(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[len(vals)-1-i] = v
	}
	return out
}
