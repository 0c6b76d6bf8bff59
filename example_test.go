package cassowary_test

import (
	"fmt"

	cassowary "github.com/go-cassowary/cassowary"
)

// ExampleSolver_AddConstraint lays out a box's right edge flush against a
// container a fixed width away, the classic UI-constraint starting point.
func ExampleSolver_AddConstraint() {
	s := cassowary.NewSolver()

	left := cassowary.NewVariable("left")
	width := cassowary.NewVariable("width")
	right := cassowary.NewVariable("right")

	c1, _ := cassowary.NewConstraint(left, cassowary.EQ, 0.0)
	c2, _ := cassowary.NewConstraint(width, cassowary.EQ, 250.0)
	c3, _ := cassowary.NewConstraint(right, cassowary.EQ, left.Plus(width))

	_ = s.AddConstraint(c1)
	_ = s.AddConstraint(c2)
	_ = s.AddConstraint(c3)

	s.UpdateVariables()
	fmt.Println(right.Value())
	// Output:
	// 250
}

// ExampleSolver_SuggestValue drives a variable through an edit constraint
// and re-reads dependents after each suggestion.
func ExampleSolver_SuggestValue() {
	s := cassowary.NewSolver()

	width := cassowary.NewVariable("width")
	half := cassowary.NewVariable("half")

	c, _ := cassowary.NewConstraint(half, cassowary.EQ, width.Divide(2))
	_ = s.AddConstraint(c)

	_ = s.AddEditVariable(width, cassowary.Strong)

	_ = s.SuggestValue(width, 100)
	s.UpdateVariables()
	fmt.Println(half.Value())

	_ = s.SuggestValue(width, 300)
	s.UpdateVariables()
	fmt.Println(half.Value())

	// Output:
	// 50
	// 150
}

// ExampleSolver_strengths shows a weak preference being met exactly where
// a required constraint leaves room for it.
func ExampleSolver_strengths() {
	s := cassowary.NewSolver()

	a := cassowary.NewVariable("a")
	b := cassowary.NewVariable("b")

	sum, _ := cassowary.NewConstraint(a.Plus(b), cassowary.EQ, 10.0)
	preferA, _ := cassowary.NewConstraint(a, cassowary.EQ, 2.0, cassowary.Weak)

	_ = s.AddConstraint(sum)
	_ = s.AddConstraint(preferA)

	s.UpdateVariables()
	fmt.Println(a.Value(), b.Value())
	// Output:
	// 2 8
}
