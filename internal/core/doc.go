// Package core implements the SCXML-style interpreter: transition
// selection, conflict resolution, exit/entry set computation, and the
// microstep/macrostep event loop, over the tree elements.Builder produces.
//
// Generalized from the teacher's internal/core, whose LCCA/exit-set/
// entry-set helpers (computeLCCA, getExitStates, getEntryStates) worked
// over dotted string paths and a single active leaf; here the same
// operations are named for the same purpose but work over a real tree and
// a real configuration set, including parallel regions and history.
package core
