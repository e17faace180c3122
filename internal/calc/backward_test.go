package calc

import (
	"testing"
)

func TestTopoSort_VisitsSharedNodesOnce(t *testing.T) {
	// Diamond: a feeds both b and c, which join in d.
	a := NewScalar(2)
	b := a.Mul(NewScalar(3))
	c := a.Mul(NewScalar(4))
	d := b.Add(c)

	sorted := topoSort(d)
	seen := make(map[*Node]int)
	for _, node := range sorted {
		seen[node]++
	}
	for node, count := range seen {
		if count != 1 {
			t.Errorf("node %v visited %d times", node, count)
		}
	}
	if sorted[len(sorted)-1] != d {
		t.Error("root must come last in the topological order")
	}
	// Every parent must precede its children.
	index := make(map[*Node]int)
	for i, node := range sorted {
		index[node] = i
	}
	for _, node := range sorted {
		for _, parent := range node.Parents() {
			if index[parent] >= index[node] {
				t.Errorf("parent at %d does not precede child at %d", index[parent], index[node])
			}
		}
	}
}

func TestBackPropagation_SharedSubExpression(t *testing.T) {
	// d = 3a + 4a; both paths must contribute: dd/da = 7.
	a := NewScalar(2)
	d := a.Mul(NewScalar(3)).Add(a.Mul(NewScalar(4)))
	d.BackPropagation()
	if a.GradAt(0) != 7 {
		t.Errorf("grad = %v, want 7", a.GradAt(0))
	}
}

func TestBackPropagation_RezeroesGrads(t *testing.T) {
	a := NewScalar(1)
	out := a.Add(a)
	out.BackPropagation()
	out.BackPropagation()
	// Without re-zeroing the second run would double the gradients.
	if a.GradAt(0) != 2 {
		t.Errorf("grad after second backward = %v, want 2", a.GradAt(0))
	}
}

func TestDescend(t *testing.T) {
	a := NewColVector(1, 2)
	out := a.Sum()
	out.BackPropagation()
	a.Descend(0.5)
	assertFloats(t, a.CopyVals(), []float64{0.5, 1.5}, 0)
}

func TestDescend_RateZeroIsNoOp(t *testing.T) {
	a := NewColVector(1, 2)
	before := a.CopyVals()
	out := a.Sum()
	out.BackPropagation()
	a.Descend(0)
	assertFloats(t, a.CopyVals(), before, 0)
}

func TestReshape_RoundTripPreservesValuesAndGradients(t *testing.T) {
	a := Filled(Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	a.Reshape(Shape{3, 2})
	a.Reshape(Shape{2, 3})
	assertFloats(t, a.CopyVals(), []float64{1, 2, 3, 4, 5, 6}, 0)
	out := a.Sum()
	out.BackPropagation()
	assertFloats(t, a.CopyGrads(), []float64{1, 1, 1, 1, 1, 1}, 0)
}

func TestReshape_SizeChangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewColVector(1, 2).Reshape(Shape{3, 1})
}

func TestNodeKind(t *testing.T) {
	cases := []struct {
		shape Shape
		want  Kind
	}{
		{Shape{1, 1}, KindScalar},
		{Shape{3, 1}, KindColumnVector},
		{Shape{1, 3}, KindRowVector},
		{Shape{2, 2}, KindMatrix},
	}
	for _, tc := range cases {
		if got := FromShape(tc.shape).Kind(); got != tc.want {
			t.Errorf("Kind of %v = %v, want %v", tc.shape, got, tc.want)
		}
	}
}

func TestInvariant_ValueAndGradLengthsMatch(t *testing.T) {
	nodes := []*Node{
		NewScalar(1),
		NewColVector(1, 2, 3),
		NewRowVector(1, 2),
		Rand(Shape{4, 5}),
		FromShape(Shape{2, 2}),
	}
	for _, n := range nodes {
		if len(n.CopyVals()) != n.Len() || len(n.CopyGrads()) != n.Len() {
			t.Errorf("node %v: value/gradient lengths disagree with Len()", n.Shape())
		}
		if n.Shape().Size() != n.Len() {
			t.Errorf("node %v: shape size disagrees with Len()", n.Shape())
		}
	}
}
