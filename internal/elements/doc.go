// Package elements defines the arena-backed state tree: the immutable,
// index-linked representation of a statechart's Root/Compound/Parallel/
// Atomic/Final/History/Initial/Transition nodes, plus the Builder and
// YAML Config that compile a declarative definition into a validated Tree.
//
// Everything here is read-only once Build returns. internal/core never
// mutates a Tree; it only walks it by Index.
package elements
