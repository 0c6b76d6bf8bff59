package cassowary

// symbolKind classifies an internal tableau symbol.
type symbolKind uint8

const (
	symbolInvalid symbolKind = iota
	symbolExternal
	symbolSlack
	symbolError
	symbolDummy
)

var symbolKindNames = [...]string{
	symbolInvalid:  "Invalid",
	symbolExternal: "External",
	symbolSlack:    "Slack",
	symbolError:    "Error",
	symbolDummy:    "Dummy",
}

func (k symbolKind) String() string { return symbolKindNames[k] }

// restricted reports whether a symbol of this kind is required to stay
// non-negative in a feasible tableau (External symbols are not).
func (k symbolKind) restricted() bool { return k == symbolSlack || k == symbolError }

// symbol is an internal token the tableau pivots on. External symbols back
// user Variables one-to-one; Slack, Error and Dummy symbols are manufactured
// while adding a constraint and never surface to the caller. Symbols are
// compared by identity (id), not by kind.
type symbol struct {
	id   int64
	kind symbolKind
}

// invalidSymbol is the single distinguished sentinel symbol used to signal
// "no symbol found" throughout the solver.
var invalidSymbol = symbol{id: -1, kind: symbolInvalid}

func (s symbol) invalid() bool    { return s == invalidSymbol }
func (s symbol) restricted() bool { return s.kind.restricted() }
