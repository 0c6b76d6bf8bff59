package cassowary

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// tag records the two bookkeeping symbols attached to each constraint: the
// marker (always present) and the other symbol (Invalid for required
// inequalities, the negative error symbol for non-required equalities).
// They are used to locate the constraint's row during removal and to
// reverse its error-variable contribution to the objective.
type tag struct {
	marker symbol
	other  symbol
}

// editInfo is the per-edit-variable bookkeeping needed to compute deltas on
// successive SuggestValue calls.
type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

// Solver owns the simplex tableau (a mapping from basic symbols to their
// defining rows) plus the objective row, and implements the Cassowary
// add/remove/edit/suggest operations and their underlying Phase-1,
// Phase-2, and dual-simplex pivots.
//
// A Solver is not safe for concurrent use: callers must provide their own
// mutual exclusion around the entire lifetime of any public method call.
type Solver struct {
	nextSymbolID int64

	rowMap  *indexedMap[symbol, *row]
	varMap  *indexedMap[*Variable, symbol]
	cnMap   *indexedMap[*Constraint, tag]
	editMap *indexedMap[*Variable, editInfo]

	objective  *row
	artificial *row

	infeasible []symbol

	// MaxIterations bounds every Phase-2 and dual-simplex pivot loop.
	// Exceeding it is reported as ErrIterationLimitExceeded. The
	// reference implementation this algorithm is drawn from defaults to
	// 1000 at runtime despite documenting a ceiling of 10000; this Solver
	// keeps the 1000 default and exposes WithMaxIterations so callers that
	// need deeper pivot sequences can raise it.
	MaxIterations int

	logger *zap.Logger
}

// NewSolver creates an empty Solver with a MaxIterations ceiling of 1000,
// then applies opts.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		rowMap:        newIndexedMap[symbol, *row](),
		varMap:        newIndexedMap[*Variable, symbol](),
		cnMap:         newIndexedMap[*Constraint, tag](),
		editMap:       newIndexedMap[*Variable, editInfo](),
		objective:     newRow(0),
		MaxIterations: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.nextSymbolID++
	return symbol{id: s.nextSymbolID, kind: kind}
}

func (s *Solver) symbolFor(v *Variable) symbol {
	if sym, ok := s.varMap.Get(v); ok {
		return sym
	}
	sym := s.newSymbol(symbolExternal)
	s.varMap.Set(v, sym)
	return sym
}

// HasConstraint reports whether c is currently installed in the solver.
func (s *Solver) HasConstraint(c *Constraint) bool { return s.cnMap.Has(c) }

// HasEditVariable reports whether v is currently registered as an edit
// variable.
func (s *Solver) HasEditVariable(v *Variable) bool { return s.editMap.Has(v) }

// GetConstraints returns every Constraint currently installed, in the
// order they were added, except that each removal moves the then-last
// Constraint into the removed one's position.
func (s *Solver) GetConstraints() []*Constraint {
	out := make([]*Constraint, 0, s.cnMap.Len())
	for i := 0; i < s.cnMap.Len(); i++ {
		c, _ := s.cnMap.At(i)
		out = append(out, c)
	}
	return out
}

// CreateConstraint is a convenience wrapper around NewConstraint.
func (s *Solver) CreateConstraint(lhs interface{}, op Op, opts ...interface{}) (*Constraint, error) {
	return NewConstraint(lhs, op, opts...)
}

// Val returns the current value the solver computes for v: the constant of
// v's defining row if v's external symbol is basic, or 0 if it is
// non-basic or v has never been mentioned in any constraint. It does not
// require UpdateVariables to have been called.
func (s *Solver) Val(v *Variable) float64 {
	sym, ok := s.varMap.Get(v)
	if !ok {
		return 0
	}
	if r, ok := s.rowMap.Get(sym); ok {
		return r.constant
	}
	return 0
}

// UpdateVariables copies the constant of each mentioned Variable's basic
// row back into the Variable itself (0 if it is currently non-basic).
func (s *Solver) UpdateVariables() {
	for i := 0; i < s.varMap.Len(); i++ {
		v, sym := s.varMap.At(i)
		if r, ok := s.rowMap.Get(sym); ok {
			v.value = r.constant
		} else {
			v.value = 0
		}
	}
}

// txn is a snapshot of every piece of solver state a pivot can touch,
// taken before AddConstraint, RemoveConstraint, or SuggestValue mutates
// anything. Restoring it on failure is what lets those three operations
// honor their documented all-or-nothing contract: a Phase-1 pivot that
// turns out to chase an unsatisfiable row, or a dual-simplex pass that
// hits the iteration ceiling, can otherwise leave unrelated rows (and
// previously satisfied constraints' solved values) permanently disturbed.
// nextSymbolID is deliberately excluded: symbols minted during a failed
// call are allowed to linger unused rather than be recycled.
type txn struct {
	rowMap     *indexedMap[symbol, *row]
	cnMap      *indexedMap[*Constraint, tag]
	editMap    *indexedMap[*Variable, editInfo]
	objective  *row
	infeasible []symbol
}

func (s *Solver) begin() txn {
	rows := newIndexedMap[symbol, *row]()
	for i := 0; i < s.rowMap.Len(); i++ {
		sym, r := s.rowMap.At(i)
		rows.Set(sym, r.clone())
	}
	return txn{
		rowMap:     rows,
		cnMap:      s.cnMap.clone(),
		editMap:    s.editMap.clone(),
		objective:  s.objective.clone(),
		infeasible: append([]symbol(nil), s.infeasible...),
	}
}

func (s *Solver) rollback(t txn) {
	s.rowMap = t.rowMap
	s.cnMap = t.cnMap
	s.editMap = t.editMap
	s.objective = t.objective
	s.infeasible = t.infeasible
}

// AddConstraint installs c into the tableau and re-optimizes. Adding a
// Constraint already present is an error and does not mutate solver state.
func (s *Solver) AddConstraint(c *Constraint) error {
	if s.cnMap.Has(c) {
		err := fmt.Errorf("cassowary: add constraint: %w", ErrDuplicateConstraint)
		s.logError("add constraint failed", err, zap.Int64("constraint", c.id))
		return err
	}

	t := s.begin()
	if err := s.doAddConstraint(c); err != nil {
		s.rollback(t)
		s.logError("add constraint failed", err, zap.Int64("constraint", c.id))
		return err
	}
	s.logDebug("added constraint", zap.Int64("constraint", c.id))
	return nil
}

func (s *Solver) doAddConstraint(c *Constraint) error {
	r, t := s.createRow(c)

	subject, err := s.findSubject(r, t)
	if err != nil {
		return err
	}

	if subject.invalid() {
		if err := s.runArtificial(r); err != nil {
			return err
		}
	} else {
		r.solveFor(subject)
		s.substitute(subject, r)
		s.rowMap.Set(subject, r)
	}

	s.cnMap.Set(c, t)

	return s.optimizePhase2(s.objective)
}

// createRow converts c into augmented simplex form: a row whose terms
// reference the solver's internal symbols (substituting in already-basic
// rows as needed), plus whatever slack/error/dummy marker and other
// symbols the constraint's operator and strength require.
func (s *Solver) createRow(c *Constraint) (*row, tag) {
	r := newRow(c.expr.Constant())

	for _, term := range c.expr.Terms() {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.symbolFor(term.Variable)
		if basic, ok := s.rowMap.Get(sym); ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	t := tag{marker: invalidSymbol, other: invalidSymbol}

	switch c.op {
	case LTE, GTE:
		coeff := 1.0
		if c.op == GTE {
			coeff = -1.0
		}
		slack := s.newSymbol(symbolSlack)
		t.marker = slack
		r.insertSymbol(slack, coeff)

		if !c.strength.required() {
			errSym := s.newSymbol(symbolError)
			t.other = errSym
			r.insertSymbol(errSym, -coeff)
			s.objective.insertSymbol(errSym, float64(c.strength))
		}
	case EQ:
		if !c.strength.required() {
			errPlus := s.newSymbol(symbolError)
			errMinus := s.newSymbol(symbolError)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1)
			r.insertSymbol(errMinus, 1)
			s.objective.insertSymbol(errPlus, float64(c.strength))
			s.objective.insertSymbol(errMinus, float64(c.strength))
		} else {
			dummy := s.newSymbol(symbolDummy)
			t.marker = dummy
			r.insertSymbol(dummy, 1)
		}
	}

	if r.constant < 0 {
		r.reverseSign()
	}

	return r, t
}

// findSubject picks the symbol to solve the new row for, per the Cassowary
// precedence: the first External symbol present, else a negative
// restricted marker, else a negative restricted other, else (if every
// present symbol is Dummy) the marker itself for a redundant all-zero row.
// Returning invalidSymbol with a nil error means no subject exists and the
// artificial-variable phase must run.
func (s *Solver) findSubject(r *row, t tag) (symbol, error) {
	subject := invalidSymbol
	r.cells.Each(func(sym symbol, _ float64) bool {
		if sym.kind == symbolExternal {
			subject = sym
			return false
		}
		return true
	})
	if !subject.invalid() {
		return subject, nil
	}

	if t.marker.restricted() && r.coefficientFor(t.marker) < 0 {
		return t.marker, nil
	}
	if t.other.restricted() && r.coefficientFor(t.other) < 0 {
		return t.other, nil
	}

	if r.allDummies() {
		if nearZero(r.constant) {
			return t.marker, nil
		}
		return invalidSymbol, ErrUnsatisfiableConstraint
	}

	return invalidSymbol, nil
}

// substitute replaces every occurrence of sym across the tableau, the
// objective, and (if a Phase-1 pass is in flight) the artificial row, with
// r, scaled by each row's existing coefficient on sym. Any non-External
// basic row that becomes infeasible as a result is queued for the next
// dual-simplex pass.
func (s *Solver) substitute(sym symbol, r *row) {
	for i := 0; i < s.rowMap.Len(); i++ {
		basicSym, basicRow := s.rowMap.At(i)
		basicRow.substitute(sym, r)
		if basicSym.kind != symbolExternal && basicRow.constant < 0 {
			s.infeasible = append(s.infeasible, basicSym)
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

// runArtificial installs r's artificial-variable phase: a fresh Slack
// symbol is made basic with r as its defining row, and a clone of r is
// minimized as a standalone objective. Success means that minimum is zero,
// i.e. r's constraint is satisfiable; the artificial symbol is then
// retired by pivoting it out (or dropped outright if its row was reduced
// to nothing) and scrubbed from every remaining row and the objective.
func (s *Solver) runArtificial(r *row) error {
	art := s.newSymbol(symbolSlack)
	s.rowMap.Set(art, r)
	s.artificial = r.clone()

	if err := s.optimizePhase2(s.artificial); err != nil {
		s.artificial = nil
		return err
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if artRow, ok := s.rowMap.Get(art); ok {
		s.rowMap.Delete(art)

		if artRow.cells.Len() > 0 {
			entering := invalidSymbol
			artRow.cells.Each(func(sym symbol, _ float64) bool {
				if sym.restricted() {
					entering = sym
					return false
				}
				return true
			})

			if entering.invalid() {
				return ErrUnsatisfiableConstraint
			}

			artRow.solveForEx(art, entering)
			s.substitute(entering, artRow)
			s.rowMap.Set(entering, artRow)
		}
	}

	for i := 0; i < s.rowMap.Len(); i++ {
		_, basicRow := s.rowMap.At(i)
		basicRow.cells.Delete(art)
	}
	s.objective.cells.Delete(art)

	if !success {
		return ErrUnsatisfiableConstraint
	}
	return nil
}

// optimizePhase2 runs primal simplex pivoting against obj (the real
// objective during normal operation, or a cloned artificial row during
// Phase-1) until every non-Dummy coefficient is non-negative, i.e. obj is
// at its minimum.
func (s *Solver) optimizePhase2(obj *row) error {
	for iter := 0; ; iter++ {
		if iter >= s.MaxIterations {
			return fmt.Errorf("cassowary: phase 2: %w", ErrIterationLimitExceeded)
		}

		entering := invalidSymbol
		obj.cells.Each(func(sym symbol, c float64) bool {
			if sym.kind == symbolDummy || c >= 0 {
				return true
			}
			entering = sym
			return false
		})
		if entering.invalid() {
			return nil
		}

		leaving := invalidSymbol
		ratio := math.MaxFloat64
		for i := 0; i < s.rowMap.Len(); i++ {
			sym, basicRow := s.rowMap.At(i)
			if sym.kind == symbolExternal {
				continue
			}
			c := basicRow.coefficientFor(entering)
			if c >= 0 {
				continue
			}
			r := -basicRow.constant / c
			if r < ratio {
				ratio, leaving = r, sym
			}
		}

		if leaving.invalid() {
			return fmt.Errorf("cassowary: phase 2: %w", ErrInternalInvariant)
		}

		leavingRow, _ := s.rowMap.Get(leaving)
		s.rowMap.Delete(leaving)
		leavingRow.solveForEx(leaving, entering)
		s.substitute(entering, leavingRow)
		s.rowMap.Set(entering, leavingRow)
	}
}

// optimizeDual restores primal feasibility (without disturbing objective
// optimality) after SuggestValue has pushed one or more basic symbols into
// s.infeasible.
func (s *Solver) optimizeDual() error {
	for iter := 0; len(s.infeasible) > 0; {
		sym := s.infeasible[len(s.infeasible)-1]
		s.infeasible = s.infeasible[:len(s.infeasible)-1]

		r, ok := s.rowMap.Get(sym)
		if !ok || r.constant >= 0 {
			continue
		}

		entering := invalidSymbol
		ratio := math.MaxFloat64
		for i := 0; i < r.cells.Len(); i++ {
			cand, c := r.cells.At(i)
			if c <= 0 || cand.kind == symbolDummy {
				continue
			}
			rr := s.objective.coefficientFor(cand) / c
			if rr < ratio {
				ratio, entering = rr, cand
			}
		}

		if entering.invalid() {
			return fmt.Errorf("cassowary: dual optimize: %w", ErrInternalInvariant)
		}

		if iter >= s.MaxIterations {
			return fmt.Errorf("cassowary: dual optimize: %w", ErrIterationLimitExceeded)
		}
		iter++

		s.rowMap.Delete(sym)
		r.solveForEx(sym, entering)
		s.substitute(entering, r)
		s.rowMap.Set(entering, r)
	}
	return nil
}

// RemoveConstraint removes c from the tableau, reverses its error
// contribution to the objective, and re-optimizes. Removing a Constraint
// not present is an error.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	t, ok := s.cnMap.Get(c)
	if !ok {
		err := fmt.Errorf("cassowary: remove constraint: %w", ErrUnknownConstraint)
		s.logError("remove constraint failed", err, zap.Int64("constraint", c.id))
		return err
	}

	txn := s.begin()
	if err := s.doRemoveConstraint(c, t); err != nil {
		s.rollback(txn)
		s.logError("remove constraint failed", err, zap.Int64("constraint", c.id))
		return err
	}
	s.logDebug("removed constraint", zap.Int64("constraint", c.id))
	return nil
}

func (s *Solver) doRemoveConstraint(c *Constraint, t tag) error {
	s.cnMap.Delete(c)

	sigma := float64(c.strength)
	if t.marker.kind == symbolError {
		s.reverseErrorContribution(t.marker, sigma)
	}
	if t.other.kind == symbolError {
		s.reverseErrorContribution(t.other, sigma)
	}

	if s.rowMap.Has(t.marker) {
		s.rowMap.Delete(t.marker)
	} else {
		leaving, err := s.findMarkerLeaving(t.marker)
		if err != nil {
			return err
		}
		leavingRow, _ := s.rowMap.Get(leaving)
		s.rowMap.Delete(leaving)
		leavingRow.solveForEx(leaving, t.marker)
		s.substitute(t.marker, leavingRow)
	}

	return s.optimizePhase2(s.objective)
}

// reverseErrorContribution undoes sym's +sigma contribution to the
// objective (by adding -sigma times sym, or its defining row) before the constraint's row is unpivoted; doing this before
// pivoting is essential, since pivoting first would fold the error terms
// into unrelated rows.
func (s *Solver) reverseErrorContribution(sym symbol, sigma float64) {
	if r, ok := s.rowMap.Get(sym); ok {
		s.objective.insertRow(r, -sigma)
	} else {
		s.objective.insertSymbol(sym, -sigma)
	}
}

// findMarkerLeaving implements the marker leaving rule: among rows whose
// coefficient on marker is nonzero, prefer the smallest -constant/coeff
// ratio among negative-coefficient non-External rows, then the smallest
// constant/coeff ratio among positive-coefficient non-External rows, then
// fall back to the last External row seen.
func (s *Solver) findMarkerLeaving(marker symbol) (symbol, error) {
	r1, r2 := math.MaxFloat64, math.MaxFloat64
	first, second, third := invalidSymbol, invalidSymbol, invalidSymbol

	for i := 0; i < s.rowMap.Len(); i++ {
		sym, basicRow := s.rowMap.At(i)
		c := basicRow.coefficientFor(marker)
		if nearZero(c) {
			continue
		}
		if sym.kind == symbolExternal {
			third = sym
			continue
		}
		switch {
		case c < 0:
			if ratio := -basicRow.constant / c; ratio < r1 {
				r1, first = ratio, sym
			}
		default:
			if ratio := basicRow.constant / c; ratio < r2 {
				r2, second = ratio, sym
			}
		}
	}

	switch {
	case !first.invalid():
		return first, nil
	case !second.invalid():
		return second, nil
	case !third.invalid():
		return third, nil
	default:
		return invalidSymbol, fmt.Errorf("cassowary: remove constraint: %w", ErrInternalInvariant)
	}
}

// AddEditVariable registers v as editable at the given strength, which
// must be weaker than Required. It synthesizes and installs the equality
// constraint "v = 0" at that strength.
func (s *Solver) AddEditVariable(v *Variable, strength Strength) error {
	if s.editMap.Has(v) {
		err := fmt.Errorf("cassowary: add edit variable: %w", ErrDuplicateEditVariable)
		s.logError("add edit variable failed", err, zap.Int64("variable", v.id))
		return err
	}
	if strength.required() {
		err := fmt.Errorf("cassowary: add edit variable: %w", ErrBadRequiredStrength)
		s.logError("add edit variable failed", err, zap.Int64("variable", v.id))
		return err
	}

	c, err := NewConstraint(v, EQ, strength)
	if err != nil {
		return err
	}
	if err := s.AddConstraint(c); err != nil {
		return err
	}

	t, _ := s.cnMap.Get(c)
	s.editMap.Set(v, editInfo{tag: t, constraint: c, constant: 0})
	s.logDebug("added edit variable", zap.Int64("variable", v.id))
	return nil
}

// RemoveEditVariable unregisters v and removes its synthesized equality
// constraint.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	info, ok := s.editMap.Get(v)
	if !ok {
		err := fmt.Errorf("cassowary: remove edit variable: %w", ErrUnknownEditVariable)
		s.logError("remove edit variable failed", err, zap.Int64("variable", v.id))
		return err
	}
	if err := s.RemoveConstraint(info.constraint); err != nil {
		return err
	}
	s.editMap.Delete(v)
	return nil
}

// SuggestValue proposes a new value x for the edit variable v, pushes any
// basic symbol that becomes infeasible as a result onto the dual-simplex
// worklist, and re-optimizes via dual simplex to restore feasibility.
func (s *Solver) SuggestValue(v *Variable, x float64) error {
	info, ok := s.editMap.Get(v)
	if !ok {
		err := fmt.Errorf("cassowary: suggest value: %w", ErrUnknownEditVariable)
		s.logError("suggest value failed", err, zap.Int64("variable", v.id))
		return err
	}

	t := s.begin()
	if err := s.doSuggestValue(v, info, x); err != nil {
		s.rollback(t)
		s.logError("suggest value failed", err, zap.Int64("variable", v.id))
		return err
	}
	s.logDebug("suggested value", zap.Int64("variable", v.id), zap.Float64("value", x))
	return nil
}

func (s *Solver) doSuggestValue(v *Variable, info editInfo, x float64) error {
	delta := x - info.constant
	info.constant = x
	s.editMap.Set(v, info)

	switch {
	case s.rowMap.Has(info.tag.marker):
		r, _ := s.rowMap.Get(info.tag.marker)
		r.constant -= delta
		if r.constant < 0 {
			s.infeasible = append(s.infeasible, info.tag.marker)
		}
	case s.rowMap.Has(info.tag.other):
		r, _ := s.rowMap.Get(info.tag.other)
		r.constant += delta
		if r.constant < 0 {
			s.infeasible = append(s.infeasible, info.tag.other)
		}
	default:
		for i := 0; i < s.rowMap.Len(); i++ {
			sym, r := s.rowMap.At(i)
			c := r.coefficientFor(info.tag.marker)
			if nearZero(c) {
				continue
			}
			r.constant += c * delta
			if r.constant < 0 && sym.kind != symbolExternal {
				s.infeasible = append(s.infeasible, sym)
			}
		}
	}

	return s.optimizeDual()
}
