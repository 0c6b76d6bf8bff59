package cassowary

// row is a symbolic linear form: a constant plus a mapping from internal
// symbols to nonzero coefficients. No row ever stores a cell within
// epsilon of zero; insertSymbol erases such cells as they arise so that
// allDummies and cell-count checks stay exact.
type row struct {
	constant float64
	cells    *indexedMap[symbol, float64]
}

func newRow(constant float64) *row {
	return &row{constant: constant, cells: newIndexedMap[symbol, float64]()}
}

func (r *row) clone() *row {
	return &row{constant: r.constant, cells: r.cells.clone()}
}

// insertSymbol adds c to the coefficient of s, erasing the cell if the
// result is near zero.
func (r *row) insertSymbol(s symbol, c float64) {
	cur, _ := r.cells.Get(s)
	next := cur + c
	if nearZero(next) {
		r.cells.Delete(s)
		return
	}
	r.cells.Set(s, next)
}

// insertRow adds c*other into this row, cell by cell.
func (r *row) insertRow(other *row, c float64) {
	r.constant += c * other.constant
	other.cells.Each(func(s symbol, oc float64) bool {
		r.insertSymbol(s, c*oc)
		return true
	})
}

// reverseSign negates the constant and every coefficient.
func (r *row) reverseSign() {
	r.constant = -r.constant
	for i := 0; i < r.cells.Len(); i++ {
		k, v := r.cells.At(i)
		r.cells.Set(k, -v)
	}
}

// solveFor rewrites the row, currently expressing "0 = constant + ... +
// coeff*s + ...", as "s = (rest)". s must be present in the row.
func (r *row) solveFor(s symbol) {
	coeff, ok := r.cells.Get(s)
	if !ok || nearZero(coeff) {
		return
	}
	r.cells.Delete(s)
	inv := -1.0 / coeff
	r.constant *= inv
	for i := 0; i < r.cells.Len(); i++ {
		k, v := r.cells.At(i)
		r.cells.Set(k, v*inv)
	}
}

// solveForEx rotates a basic variable out of the row in favor of a
// different symbol: it inserts lhs with coefficient -1, then solves for
// rhs, leaving the row expressing "rhs = (terms including -lhs)".
func (r *row) solveForEx(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1)
	r.solveFor(rhs)
}

// substitute replaces every occurrence of s in this row with other,
// scaled by s's coefficient here. No-op if s is absent.
func (r *row) substitute(s symbol, other *row) {
	coeff, ok := r.cells.Get(s)
	if !ok {
		return
	}
	r.cells.Delete(s)
	r.insertRow(other, coeff)
}

func (r *row) coefficientFor(s symbol) float64 {
	c, _ := r.cells.Get(s)
	return c
}

// allDummies reports whether every symbol present in the row has kind
// Dummy (true vacuously for an empty row).
func (r *row) allDummies() bool {
	all := true
	r.cells.Each(func(s symbol, _ float64) bool {
		if s.kind != symbolDummy {
			all = false
			return false
		}
		return true
	})
	return all
}
