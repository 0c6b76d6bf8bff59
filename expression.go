package cassowary

import "fmt"

// Pair scales a Variable or Expression by a coefficient. It is the typed
// rendering of the "[k, Variable|Expression]" term NewExpression accepts.
type Pair struct {
	K float64
	V interface{}
}

// ExprTerm is one Variable/coefficient pair read back out of an Expression.
type ExprTerm struct {
	Variable    *Variable
	Coefficient float64
}

// Expression is an immutable linear combination of Variables plus a
// constant. Construction normalizes its input: duplicate Variables are
// summed into a single term, nested Expressions are flattened with their
// constants folded in, and Pair terms are multiplied through.
type Expression struct {
	constant float64
	terms    *indexedMap[*Variable, float64]
}

// NewExpression builds an Expression from any mix of float64, int,
// *Variable, Expression, and Pair arguments. Any other argument type is an
// error.
func NewExpression(args ...interface{}) (Expression, error) {
	e := Expression{terms: newIndexedMap[*Variable, float64]()}
	for _, a := range args {
		if err := e.fold(1.0, a); err != nil {
			return Expression{}, err
		}
	}
	return e, nil
}

func (e *Expression) fold(coeff float64, term interface{}) error {
	switch t := term.(type) {
	case float64:
		e.constant += coeff * t
	case int:
		e.constant += coeff * float64(t)
	case *Variable:
		e.addVar(t, coeff)
	case Expression:
		e.constant += coeff * t.constant
		t.terms.Each(func(v *Variable, c float64) bool {
			e.addVar(v, coeff*c)
			return true
		})
	case Pair:
		return e.fold(coeff*t.K, t.V)
	default:
		return fmt.Errorf("cassowary: %T: %w", term, ErrInvalidTerm)
	}
	return nil
}

func (e *Expression) addVar(v *Variable, coeff float64) {
	if e.terms == nil {
		e.terms = newIndexedMap[*Variable, float64]()
	}
	cur, _ := e.terms.Get(v)
	next := cur + coeff
	if nearZero(next) {
		e.terms.Delete(v)
		return
	}
	e.terms.Set(v, next)
}

// Constant returns the Expression's constant term.
func (e Expression) Constant() float64 { return e.constant }

// Terms returns the Expression's Variable/coefficient pairs in the order
// each Variable was first introduced, except that a term cancelled to zero
// during construction is replaced in place by the then-last term.
func (e Expression) Terms() []ExprTerm {
	if e.terms == nil {
		return nil
	}
	out := make([]ExprTerm, 0, e.terms.Len())
	for i := 0; i < e.terms.Len(); i++ {
		v, c := e.terms.At(i)
		out = append(out, ExprTerm{Variable: v, Coefficient: c})
	}
	return out
}

// Plus returns the Expression e + other.
func (e Expression) Plus(other interface{}) Expression {
	r, err := NewExpression(e, other)
	if err != nil {
		panic(err)
	}
	return r
}

// Minus returns the Expression e - other.
func (e Expression) Minus(other interface{}) Expression {
	r, err := NewExpression(e, Pair{K: -1, V: other})
	if err != nil {
		panic(err)
	}
	return r
}

// Multiply returns the Expression coeff * e.
func (e Expression) Multiply(coeff float64) Expression {
	r, _ := NewExpression(Pair{K: coeff, V: e})
	return r
}

// Divide returns the Expression e / coeff.
func (e Expression) Divide(coeff float64) Expression {
	return e.Multiply(1 / coeff)
}
