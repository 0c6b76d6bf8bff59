// Package cassowary implements the Cassowary incremental constraint
// solving algorithm.
//
// Callers build Variables and Expressions, assemble them into Constraints
// with a strength (Required, Strong, Medium or Weak), and submit them to a
// Solver. Required constraints are always satisfied exactly; non-required
// constraints are satisfied as closely as possible, in strict
// lexicographic order of strength. Adding, removing, or editing a
// constraint performs bounded pivot work on the solver's internal simplex
// tableau rather than resolving the whole system from scratch.
package cassowary
