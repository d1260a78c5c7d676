/*
attendance.go - Clock events and break tracking

STATE MACHINE (per employee):
  off-duty --ClockIn--> active --SetBreak(true)--> on-break
  on-break --SetBreak(false)--> active --ClockOut--> off-duty

  ClockOut while on break closes the open break at the clock-out instant
  before computing totals, so the break is counted in full and the totals
  stay consistent. The original system left this sequence undefined.

INVARIANTS:
  - An employee has at most one open time log at any time.
  - Only the last break of a log may be open; earlier breaks are closed.
  - Minutes are floored: a 59-second interval counts as 0 minutes.
*/
package shiftledger

import "time"

// ClockIn opens a time log for the employee on the branch's current shift.
// The employee's working branch follows the clock-in branch (temporary
// reassignment). Reports NoOp if the branch has no running shift or the
// employee is already clocked in.
func (l *Ledger) ClockIn(employeeID EmployeeID, branch BranchID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.employees[employeeID]
	if !ok {
		return NotFound
	}
	shiftID, ok := l.current[branch]
	if !ok {
		return NoOp
	}
	if l.openLog(e) != nil {
		return NoOp
	}

	now := l.now()
	tl := &TimeLog{
		ID:         TimeLogID(newID()),
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		ClockIn:    now,
		Breaks:     []Break{},
	}
	l.timeLogs[tl.ID] = tl
	l.logOrder = append(l.logOrder, tl.ID)
	e.TimeLogs = append(e.TimeLogs, tl.ID)

	s := l.shifts[shiftID]
	s.TimeLogs = append(s.TimeLogs, tl.ID)

	e.Status = StatusActive
	e.StartTime = &now
	e.Branch = branch
	return Applied
}

// ClockOut closes the employee's open time log, computing its totals:
// workMinutes = floor(now - clockIn), breakMinutes = sum of closed breaks,
// totalWork = workMinutes - breakMinutes. An open break is closed at the
// clock-out instant first.
func (l *Ledger) ClockOut(employeeID EmployeeID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.employees[employeeID]
	if !ok {
		return NotFound
	}
	tl := l.openLog(e)
	if tl == nil {
		return NoOp
	}
	l.closeLog(tl, e, l.now())
	return Applied
}

// closeLog finalizes an open time log and resets the employee to off-duty.
// Caller holds the ledger mutex.
func (l *Ledger) closeLog(tl *TimeLog, e *Employee, now time.Time) {
	if br := tl.OpenBreak(); br != nil {
		end := now
		br.End = &end
	}

	workMinutes := wholeMinutes(tl.ClockIn, now)
	breakMinutes := 0
	for _, br := range tl.Breaks {
		breakMinutes += wholeMinutes(br.Start, *br.End)
	}

	out := now
	tl.ClockOut = &out
	tl.TotalWorkMinutes = workMinutes - breakMinutes
	tl.TotalBreakMinutes = breakMinutes

	e.Status = StatusOffDuty
	e.StartTime = nil
	e.CurrentBreakStart = nil
}

// SetBreak starts (starting=true) or ends (starting=false) a break on the
// employee's open time log. Ending with no open break is a NoOp and leaves
// earlier closed breaks untouched.
func (l *Ledger) SetBreak(employeeID EmployeeID, starting bool) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.employees[employeeID]
	if !ok {
		return NotFound
	}
	tl := l.openLog(e)
	if tl == nil {
		return NoOp
	}

	now := l.now()
	if starting {
		if tl.OpenBreak() != nil {
			return NoOp
		}
		tl.Breaks = append(tl.Breaks, Break{Start: now})
		e.Status = StatusOnBreak
		e.CurrentBreakStart = &now
		return Applied
	}

	br := tl.OpenBreak()
	if br == nil {
		return NoOp
	}
	br.End = &now
	e.Status = StatusActive
	e.CurrentBreakStart = nil
	return Applied
}

// openLog returns the employee's open time log, if any. The invariant is
// at most one; the scan runs newest-first since the open log, when present,
// is the last one created.
func (l *Ledger) openLog(e *Employee) *TimeLog {
	for i := len(e.TimeLogs) - 1; i >= 0; i-- {
		if tl := l.timeLogs[e.TimeLogs[i]]; tl != nil && tl.Open() {
			return tl
		}
	}
	return nil
}

func wholeMinutes(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / time.Minute)
}
