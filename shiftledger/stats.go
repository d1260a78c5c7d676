/*
stats.go - Per-employee attendance statistics for a shift

LATENESS:
  The shift's scheduled start ("10:00") is projected onto the calendar date
  of the employee's first clock-in; clocking in after that instant is late,
  lateMinutes is the whole-minute difference.

OVERTIME:
  Minutes worked beyond Policy.ExpectedShiftMinutes.

AGGREGATION:
  An employee who clocks in and out more than once within one shift gets
  the sum over all closed logs (the original system counted only the first
  log; see DESIGN.md).
*/
package shiftledger

import "time"

// EmployeeShiftStats is a pure read. Unknown employee, unknown shift or no
// matching time log all yield zero stats; the query never fails.
func (l *Ledger) EmployeeShiftStats(employeeID EmployeeID, shiftID ShiftID) ShiftStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return ShiftStats{}
	}

	var stats ShiftStats
	var firstClockIn *time.Time
	for _, logID := range s.TimeLogs {
		tl := l.timeLogs[logID]
		if tl == nil || tl.EmployeeID != employeeID {
			continue
		}
		if firstClockIn == nil {
			t := tl.ClockIn
			firstClockIn = &t
		}
		if tl.Open() {
			// Totals are only valid once the log is closed.
			continue
		}
		stats.TotalWork += tl.TotalWorkMinutes
		stats.TotalBreak += tl.TotalBreakMinutes
	}
	if firstClockIn == nil {
		return ShiftStats{}
	}

	scheduled := wallClockOn(*firstClockIn, s.ScheduledStart, l.policy.ScheduledStart)
	if firstClockIn.After(scheduled) {
		stats.IsLate = true
		stats.LateMinutes = wholeMinutes(scheduled, *firstClockIn)
	}

	if over := stats.TotalWork - l.policy.ExpectedShiftMinutes; over > 0 {
		stats.Overtime = over
	}
	return stats
}

// wallClockOn places an "HH:MM" wall-clock string on day's calendar date,
// in day's location. Falls back to fallback, then midnight, on a malformed
// string.
func wallClockOn(day time.Time, hhmm, fallback string) time.Time {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		parsed, err = time.Parse("15:04", fallback)
		if err != nil {
			parsed = time.Time{}
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location())
}
