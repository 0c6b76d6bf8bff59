package cassowary

import "errors"

// Sentinel errors raised by Solver's public operations. Every one of them
// is a terminal failure of the call that raised it: the tableau is left
// observably unchanged from the caller's point of view, modulo newly
// minted internal symbols that may linger in the variable table (a known,
// accepted space leak rather than a correctness issue, since symbol ids
// are never reused).
//
// Wrap these with fmt.Errorf("cassowary: <call>: %w", Err...) for context;
// never redefine their text at the call site, so errors.Is keeps matching.
var (
	// ErrDuplicateConstraint is returned when adding a Constraint already
	// present in the solver.
	ErrDuplicateConstraint = errors.New("constraint already present in solver")

	// ErrUnknownConstraint is returned when removing a Constraint not
	// present in the solver.
	ErrUnknownConstraint = errors.New("constraint not present in solver")

	// ErrDuplicateEditVariable is returned by AddEditVariable when the
	// Variable is already registered as an edit variable.
	ErrDuplicateEditVariable = errors.New("variable already registered as an edit variable")

	// ErrUnknownEditVariable is returned by RemoveEditVariable or
	// SuggestValue when the Variable is not registered as an edit variable.
	ErrUnknownEditVariable = errors.New("variable not registered as an edit variable")

	// ErrBadRequiredStrength is returned by AddEditVariable when called
	// with strength Required; edit variables must be weaker than required.
	ErrBadRequiredStrength = errors.New("edit variable strength must be weaker than required")

	// ErrUnsatisfiableConstraint is returned when no pivot can make a
	// newly added constraint's row feasible.
	ErrUnsatisfiableConstraint = errors.New("constraint cannot be satisfied")

	// ErrInternalInvariant covers the three ways the tableau can reach a
	// state the algorithm does not expect: an unbounded Phase-2 objective,
	// a dual-simplex pass with no valid entering symbol, and a constraint
	// removal that finds no leaving row for its marker. Each indicates a
	// solver bug or a precondition violated upstream.
	ErrInternalInvariant = errors.New("internal solver invariant violated")

	// ErrIterationLimitExceeded is returned when a pivot loop exceeds the
	// solver's configured MaxIterations.
	ErrIterationLimitExceeded = errors.New("exceeded maximum pivot iterations")

	// ErrInvalidTerm is returned by NewExpression (and anything built on
	// it) when given an argument that is not a number, *Variable,
	// Expression, or Pair. This is a construction-time error, not one of
	// the Solver's seven runtime error kinds above.
	ErrInvalidTerm = errors.New("invalid expression term")
)
