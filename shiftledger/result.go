package shiftledger

// Outcome reports what a mutation did. The original system silently ignored
// precondition failures; here every operation says whether it applied so
// callers and tests can tell "nothing happened" from "mutation applied".
type Outcome string

const (
	// Applied: the mutation took effect.
	Applied Outcome = "applied"
	// NoOp: preconditions not met, state untouched (e.g. ending a break
	// when none is open).
	NoOp Outcome = "noop"
	// NotFound: a referenced branch/employee/shift/log does not exist.
	NotFound Outcome = "not-found"
	// Rejected: a guard refused the mutation (e.g. roster assignment
	// without a matching shift preference).
	Rejected Outcome = "rejected"
)

// AppliedOK reports whether the mutation took effect.
func (o Outcome) AppliedOK() bool { return o == Applied }
