/*
errors.go - Sentinel errors for the shift ledger

State-machine operations report failed preconditions through Outcome values
(result.go), not errors. The errors here cover the cases where a caller
asked for something that cannot be answered at all: unknown references and
malformed snapshots.
*/
package shiftledger

import "errors"

var (
	// ErrBranchNotFound is returned when a referenced branch doesn't exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrNoCurrentShift is returned when an attendance operation needs a
	// running shift for the branch and none is open.
	ErrNoCurrentShift = errors.New("no current shift for branch")

	// ErrBadSnapshot is returned when a persisted snapshot cannot be decoded.
	ErrBadSnapshot = errors.New("malformed ledger snapshot")
)
