package cassowary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sym(id int64, kind symbolKind) symbol { return symbol{id: id, kind: kind} }

func TestRowInsertSymbolPrunesNearZero(t *testing.T) {
	r := newRow(0)
	s1 := sym(1, symbolSlack)

	r.insertSymbol(s1, 5)
	require.Equal(t, 5.0, r.coefficientFor(s1))

	r.insertSymbol(s1, -5)
	require.Equal(t, 0.0, r.coefficientFor(s1))
	require.Equal(t, 0, r.cells.Len())
}

func TestRowInsertRow(t *testing.T) {
	a := newRow(1)
	s1, s2 := sym(1, symbolSlack), sym(2, symbolSlack)
	a.insertSymbol(s1, 2)

	b := newRow(10)
	b.insertSymbol(s1, 3)
	b.insertSymbol(s2, 4)

	a.insertRow(b, 2)
	require.Equal(t, 21.0, a.constant) // 1 + 2*10
	require.Equal(t, 8.0, a.coefficientFor(s1))
	require.Equal(t, 8.0, a.coefficientFor(s2))
}

func TestRowReverseSign(t *testing.T) {
	r := newRow(5)
	s1 := sym(1, symbolSlack)
	r.insertSymbol(s1, -3)

	r.reverseSign()
	require.Equal(t, -5.0, r.constant)
	require.Equal(t, 3.0, r.coefficientFor(s1))
}

func TestRowSolveFor(t *testing.T) {
	// 0 = 10 + 2*s1  =>  s1 = -5
	r := newRow(10)
	s1 := sym(1, symbolSlack)
	s2 := sym(2, symbolSlack)
	r.insertSymbol(s1, 2)
	r.insertSymbol(s2, 4)

	r.solveFor(s1)
	require.Equal(t, -5.0, r.constant)
	require.Equal(t, -2.0, r.coefficientFor(s2))
	require.False(t, r.cells.Has(s1))
}

func TestRowSubstitute(t *testing.T) {
	r := newRow(0)
	s1, s2 := sym(1, symbolSlack), sym(2, symbolSlack)
	r.insertSymbol(s1, 2)

	sub := newRow(3)
	sub.insertSymbol(s2, 5)

	r.substitute(s1, sub)
	require.Equal(t, 6.0, r.constant) // 0 + 2*3
	require.Equal(t, 10.0, r.coefficientFor(s2))
	require.False(t, r.cells.Has(s1))
}

func TestRowAllDummies(t *testing.T) {
	r := newRow(0)
	require.True(t, r.allDummies())

	r.insertSymbol(sym(1, symbolDummy), 1)
	require.True(t, r.allDummies())

	r.insertSymbol(sym(2, symbolSlack), 1)
	require.False(t, r.allDummies())
}

func TestRowClone(t *testing.T) {
	r := newRow(1)
	r.insertSymbol(sym(1, symbolSlack), 2)

	c := r.clone()
	c.insertSymbol(sym(1, symbolSlack), 100)
	c.constant = 999

	require.Equal(t, 1.0, r.constant)
	require.Equal(t, 2.0, r.coefficientFor(sym(1, symbolSlack)))
}
