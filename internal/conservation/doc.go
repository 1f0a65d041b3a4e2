// Package conservation validates completed decays.
//
// Each check compares a parent quantity against the direct children of one
// decay. Results are advisory: a failing check produces a Violation value
// and never stops the decay.
package conservation
