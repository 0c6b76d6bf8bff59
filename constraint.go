package cassowary

import (
	"fmt"
	"sync/atomic"
)

// Op is a constraint's relational operator.
type Op uint8

const (
	LTE Op = iota
	GTE
	EQ
)

var opNames = [...]string{LTE: "<=", GTE: ">=", EQ: "="}

func (o Op) String() string { return opNames[o] }

var constraintCounter int64

// Constraint pairs an Expression — always implicitly compared against zero
// — with an operator and a Strength. Two Constraints are never equal even
// if built from equivalent expressions: identity is by id, assigned once
// at construction.
type Constraint struct {
	id       int64
	expr     Expression
	op       Op
	strength Strength
}

// NewConstraint builds a Constraint of the form "lhs op rhs" at the given
// strength (default Required). lhs is required; rhs and strength are both
// optional and may be supplied in either order in opts. lhs and rhs accept
// anything NewExpression does (float64, int, *Variable, Expression, Pair).
// If rhs is omitted and lhs is already an Expression, it is used as-is;
// otherwise the stored expression is lhs - rhs, with the right-hand side of
// the resulting equation implicitly zero.
func NewConstraint(lhs interface{}, op Op, opts ...interface{}) (*Constraint, error) {
	strength := Required
	var rhs interface{}
	haveRHS := false

	for _, o := range opts {
		if s, ok := o.(Strength); ok {
			strength = s
			continue
		}
		rhs = o
		haveRHS = true
	}

	lhsExpr, err := NewExpression(lhs)
	if err != nil {
		return nil, err
	}

	expr := lhsExpr
	if haveRHS {
		expr = lhsExpr.Minus(rhs)
	}

	return &Constraint{
		id:       atomic.AddInt64(&constraintCounter, 1),
		expr:     expr,
		op:       op,
		strength: strength.Clip(),
	}, nil
}

// ID returns the Constraint's stable identifier.
func (c *Constraint) ID() int64 { return c.id }

// Expression returns the Constraint's stored expression (lhs - rhs, rhs
// implicitly zero).
func (c *Constraint) Expression() Expression { return c.expr }

// Op returns the Constraint's operator.
func (c *Constraint) Op() Op { return c.op }

// Strength returns the Constraint's strength.
func (c *Constraint) Strength() Strength { return c.strength }

func (c *Constraint) String() string {
	return fmt.Sprintf("constraint#%d(%s 0, strength=%s)", c.id, c.op, c.strength)
}
