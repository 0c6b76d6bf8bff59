package cassowary

import "go.uber.org/zap"

// Option configures a Solver at construction time.
type Option func(*Solver)

// WithMaxIterations overrides the default pivot iteration ceiling (see
// NewSolver). Exceeding it turns every pivoting operation into
// ErrIterationLimitExceeded instead of spinning forever on a pathological
// input.
func WithMaxIterations(n int) Option {
	return func(s *Solver) { s.MaxIterations = n }
}

// WithLogger attaches a zap.Logger that receives Debug-level events for
// constraint add/remove, edit-variable suggestions, and every error
// returned by a public Solver method. A Solver built without WithLogger has
// no logger and pays no logging cost.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) { s.logger = logger }
}
