package cassowary

import (
	"strconv"
	"sync/atomic"
)

var variableCounter int64

// Variable is an external real-valued unknown. Identity is by id, not by
// name or value: two Variables with the same name are distinct. Variables
// outlive any Solver; removing every constraint that references one does
// not destroy it, and the same Variable may be handed to more than one
// Solver over its lifetime (its value simply reflects whichever Solver
// last ran UpdateVariables against it).
type Variable struct {
	id      int64
	name    string
	context interface{}
	value   float64
}

// NewVariable creates a fresh Variable with a monotonically assigned id and
// an optional display name.
func NewVariable(name ...string) *Variable {
	v := &Variable{id: atomic.AddInt64(&variableCounter, 1)}
	if len(name) > 0 {
		v.name = name[0]
	}
	return v
}

// ID returns the Variable's stable, solver-independent identifier.
func (v *Variable) ID() int64 { return v.id }

// Name returns the Variable's display name, if any.
func (v *Variable) Name() string { return v.name }

// SetName sets the Variable's display name.
func (v *Variable) SetName(name string) { v.name = name }

// Context returns the opaque value previously attached with SetContext.
func (v *Variable) Context() interface{} { return v.context }

// SetContext attaches an opaque caller-owned value to the Variable, e.g. a
// pointer back to the layout node it represents.
func (v *Variable) SetContext(ctx interface{}) { v.context = ctx }

// Value returns the Variable's last value computed by Solver.UpdateVariables.
func (v *Variable) Value() float64 { return v.value }

// SetValue overwrites the Variable's cached value directly. Solvers treat
// this as solver-internal state; callers should generally prefer Value and
// let UpdateVariables maintain it.
func (v *Variable) SetValue(val float64) { v.value = val }

func (v *Variable) String() string {
	if v.name != "" {
		return v.name
	}
	return "v" + strconv.FormatInt(v.id, 10)
}

// Plus returns the Expression v + other, where other is a float64, int,
// *Variable, or Expression.
func (v *Variable) Plus(other interface{}) Expression {
	e, err := NewExpression(v, other)
	if err != nil {
		panic(err)
	}
	return e
}

// Minus returns the Expression v - other.
func (v *Variable) Minus(other interface{}) Expression {
	e, err := NewExpression(v, Pair{K: -1, V: other})
	if err != nil {
		panic(err)
	}
	return e
}

// Multiply returns the Expression coeff * v.
func (v *Variable) Multiply(coeff float64) Expression {
	e, _ := NewExpression(Pair{K: coeff, V: v})
	return e
}

// Divide returns the Expression v / coeff.
func (v *Variable) Divide(coeff float64) Expression {
	return v.Multiply(1 / coeff)
}
