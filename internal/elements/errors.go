package elements

import "errors"

// ErrUnresolvedTarget is returned at construction time when a transition
// (or a History default, or a Compound/Root's Initial) names an id that
// does not resolve to any element in the tree.
var ErrUnresolvedTarget = errors.New("elements: unresolved target reference")

// ErrInvalidTree is returned at construction time when the tree violates one
// of the structural invariants that Tree.Validate checks: a duplicate id, a
// Root/Compound with no initial child, or an internal transition crossing a
// parallel region.
var ErrInvalidTree = errors.New("elements: invalid tree")
