/*
snapshot.go - Durable snapshots of the full ledger state

The persistence contract is a named key-value snapshot store (package
store): the ledger serializes its complete state to JSON under StoreKey and
restores it on startup. Restoring a marshaled snapshot reproduces the domain
state exactly; there are no non-deterministic fields.
*/
package shiftledger

import (
	"encoding/json"
	"fmt"
)

// StoreKey is the snapshot name the ledger persists under. It matches the
// key the original desktop app used for this state.
const StoreKey = "shift-store"

// Snapshot is the serialized form of the ledger: entity lists in insertion
// order, the time-log arena, and the per-branch current-shift map.
type Snapshot struct {
	Branches  []Branch             `json:"branches"`
	Employees []Employee           `json:"employees"`
	Shifts    []Shift              `json:"shifts"`
	TimeLogs  []TimeLog            `json:"timeLogs"`
	Current   map[BranchID]ShiftID `json:"currentShifts"`
}

// Snapshot captures the full ledger state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() Snapshot {
	snap := Snapshot{
		Branches:  make([]Branch, 0, len(l.branchOrder)),
		Employees: make([]Employee, 0, len(l.employeeOrder)),
		Shifts:    make([]Shift, 0, len(l.shiftOrder)),
		TimeLogs:  make([]TimeLog, 0, len(l.logOrder)),
		Current:   make(map[BranchID]ShiftID, len(l.current)),
	}
	for _, id := range l.branchOrder {
		snap.Branches = append(snap.Branches, *l.branches[id])
	}
	for _, id := range l.employeeOrder {
		snap.Employees = append(snap.Employees, *l.employees[id])
	}
	for _, id := range l.shiftOrder {
		snap.Shifts = append(snap.Shifts, *l.shifts[id])
	}
	for _, id := range l.logOrder {
		snap.TimeLogs = append(snap.TimeLogs, *l.timeLogs[id])
	}
	for branch, shift := range l.current {
		snap.Current[branch] = shift
	}
	return snap
}

// MarshalSnapshot serializes the ledger state to JSON.
func (l *Ledger) MarshalSnapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return json.Marshal(l.snapshotLocked())
}

// RestoreSnapshot replaces the ledger state with a previously marshaled
// snapshot. The policy and clock are left as configured.
func (l *Ledger) RestoreSnapshot(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.branches = make(map[BranchID]*Branch, len(snap.Branches))
	l.employees = make(map[EmployeeID]*Employee, len(snap.Employees))
	l.shifts = make(map[ShiftID]*Shift, len(snap.Shifts))
	l.timeLogs = make(map[TimeLogID]*TimeLog, len(snap.TimeLogs))
	l.branchOrder = l.branchOrder[:0]
	l.employeeOrder = l.employeeOrder[:0]
	l.shiftOrder = l.shiftOrder[:0]
	l.logOrder = l.logOrder[:0]
	l.current = make(map[BranchID]ShiftID, len(snap.Current))

	for i := range snap.Branches {
		b := snap.Branches[i]
		l.branches[b.ID] = &b
		l.branchOrder = append(l.branchOrder, b.ID)
	}
	for i := range snap.Employees {
		e := snap.Employees[i]
		l.employees[e.ID] = &e
		l.employeeOrder = append(l.employeeOrder, e.ID)
	}
	for i := range snap.Shifts {
		s := snap.Shifts[i]
		l.shifts[s.ID] = &s
		l.shiftOrder = append(l.shiftOrder, s.ID)
	}
	for i := range snap.TimeLogs {
		tl := snap.TimeLogs[i]
		l.timeLogs[tl.ID] = &tl
		l.logOrder = append(l.logOrder, tl.ID)
	}
	for branch, shift := range snap.Current {
		l.current[branch] = shift
	}
	return nil
}
