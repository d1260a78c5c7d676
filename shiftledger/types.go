/*
Package shiftledger manages shifts and employee attendance for a multi-branch
store, and computes the end-of-shift payroll/profit reconciliation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Branch: a physical store location
  - Employee: a staff member with a wage basis and shift preferences
  - TimeLog: one clock-in-to-clock-out interval, with break sub-intervals
  - Shift: a bounded work period at a branch, with roster, tasks and expenses
  - SalesLine: one row of end-of-shift sales data (ephemeral, not persisted)

DESIGN PRINCIPLES:
  1. Single source of truth: time logs live in one arena keyed by ID;
     employees and shifts reference them by ID only.
  2. Precision: decimal.Decimal for all money values.
  3. Type safety: distinct ID types prevent mixing employee/shift/branch IDs.
  4. Explicit outcomes: every mutation reports whether it applied (result.go).

SEE ALSO:
  - ledger.go: the Ledger container and branch/employee/shift CRUD
  - attendance.go: clock-in/out and break transitions
  - payroll.go: wage computation and sales reconciliation
  - stats.go: lateness and overtime
*/
package shiftledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type BranchID string
type EmployeeID string
type ShiftID string
type TimeLogID string
type TaskID string
type ExpenseID string

// =============================================================================
// ENUMS
// =============================================================================

// ShiftKind is the scheduled slot a shift occupies.
type ShiftKind string

const (
	KindMorning ShiftKind = "morning"
	KindNight   ShiftKind = "night"
)

// WageType is the unit basis for an employee's pay contribution to a shift.
type WageType string

const (
	WageHourly  WageType = "hourly"
	WageDaily   WageType = "daily"
	WageMonthly WageType = "monthly"
)

// EmployeeStatus tracks where an employee is in the attendance state machine:
// off-duty -> active -> on-break -> active -> ... -> off-duty.
type EmployeeStatus string

const (
	StatusActive  EmployeeStatus = "active"
	StatusOnBreak EmployeeStatus = "on-break"
	StatusOffDuty EmployeeStatus = "off-duty"
)

// ShiftStatus: upcoming -> active -> completed. Completed is terminal.
type ShiftStatus string

const (
	ShiftUpcoming  ShiftStatus = "upcoming"
	ShiftActive    ShiftStatus = "active"
	ShiftCompleted ShiftStatus = "completed"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// =============================================================================
// BRANCH
// =============================================================================

type Branch struct {
	ID   BranchID `json:"id"`
	Name string   `json:"name"`
}

// =============================================================================
// EMPLOYEE
// =============================================================================

// Preference marks a (branch, shift kind) pair the employee is willing to
// work. Roster assignment is gated on a matching preference.
type Preference struct {
	Branch BranchID  `json:"branchId"`
	Kind   ShiftKind `json:"kind"`
}

type Employee struct {
	ID    EmployeeID `json:"id"`
	Name  string     `json:"name"`
	Role  string     `json:"role"`
	Email string     `json:"email,omitempty"`
	Phone string     `json:"phone,omitempty"`

	Wage     decimal.Decimal `json:"wage"`
	WageType WageType        `json:"wageType"`

	// HomeBranch is the administrative assignment; Branch is where the
	// employee is currently working and follows the clock-in branch.
	HomeBranch BranchID `json:"homeBranch"`
	Branch     BranchID `json:"branch"`

	Preferences []Preference `json:"shiftPreferences"`

	Status            EmployeeStatus `json:"status"`
	StartTime         *time.Time     `json:"startTime,omitempty"`
	CurrentBreakStart *time.Time     `json:"currentBreakStart,omitempty"`

	// TimeLogs references the ledger's time-log arena, insertion order
	// chronological. At most one referenced log may be open.
	TimeLogs []TimeLogID `json:"timeLogs"`
}

// OnShift reports whether the employee is clocked in (active or on break).
func (e *Employee) OnShift() bool {
	return e.Status == StatusActive || e.Status == StatusOnBreak
}

// =============================================================================
// TIME LOG
// =============================================================================

// Break is a sub-interval of a TimeLog during which the employee is not
// working. Only the last break of a log may be open (End == nil).
type Break struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// TimeLog is one employee's clock-in-to-clock-out interval within a shift.
// Created on clock-in, closed on clock-out; immutable afterwards.
// TotalWorkMinutes and TotalBreakMinutes are valid only once ClockOut is set.
type TimeLog struct {
	ID         TimeLogID  `json:"id"`
	EmployeeID EmployeeID `json:"employeeId"`
	ShiftID    ShiftID    `json:"shiftId"`

	ClockIn  time.Time  `json:"clockIn"`
	ClockOut *time.Time `json:"clockOut,omitempty"`
	Breaks   []Break    `json:"breaks"`

	TotalWorkMinutes  int `json:"totalWorkMinutes"`
	TotalBreakMinutes int `json:"totalBreakMinutes"`
}

// Open reports whether the log has not been closed by a clock-out yet.
func (tl *TimeLog) Open() bool { return tl.ClockOut == nil }

// OpenBreak returns the trailing break if it is still running.
func (tl *TimeLog) OpenBreak() *Break {
	if len(tl.Breaks) == 0 {
		return nil
	}
	last := &tl.Breaks[len(tl.Breaks)-1]
	if last.End == nil {
		return last
	}
	return nil
}

// =============================================================================
// SHIFT AND CHILDREN
// =============================================================================

type Task struct {
	ID          TaskID     `json:"id"`
	Description string     `json:"description"`
	AssignedTo  EmployeeID `json:"assignedTo"`
	Status      TaskStatus `json:"status"`
}

type Expense struct {
	ID          ExpenseID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Branch      BranchID        `json:"branchId"`
	Shift       ShiftID         `json:"shiftId"`
}

type Shift struct {
	ID     ShiftID     `json:"id"`
	Name   string      `json:"name"`
	Kind   ShiftKind   `json:"kind"`
	Branch BranchID    `json:"branch"`
	Status ShiftStatus `json:"status"`

	// Scheduled window as wall-clock strings, e.g. "10:00".
	ScheduledStart string `json:"scheduledStart"`
	ScheduledEnd   string `json:"scheduledEnd"`

	ActualStart time.Time  `json:"actualStart"`
	ActualEnd   *time.Time `json:"actualEnd,omitempty"`

	Employees []EmployeeID `json:"employees"`
	Tasks     []Task       `json:"tasks"`
	Expenses  []Expense    `json:"expenses"`
	TimeLogs  []TimeLogID  `json:"timeLogs"`

	// Reconciliation is recorded when the shift is ended with sales data.
	Reconciliation *Reconciliation `json:"reconciliation,omitempty"`
}

// =============================================================================
// SALES AND RECONCILIATION
// =============================================================================

// SalesLine is one validated row of end-of-shift sales data. Validation
// (positive quantity, non-negative price/cost) happens in the ingest
// package before lines reach the ledger.
type SalesLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
}

// Reconciliation is the end-of-shift figure set:
// profit = totalSales - totalCost - staffWages.
type Reconciliation struct {
	TotalSales decimal.Decimal `json:"totalSales"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	StaffWages decimal.Decimal `json:"staffWages"`
	Profit     decimal.Decimal `json:"profit"`
}

// ShiftStats is the per-employee attendance summary for one shift.
// Work/break totals aggregate every closed time log the employee has on the
// shift; lateness is judged from the first clock-in.
type ShiftStats struct {
	TotalWork   int  `json:"totalWork"`
	TotalBreak  int  `json:"totalBreak"`
	IsLate      bool `json:"isLate"`
	LateMinutes int  `json:"lateMinutes"`
	Overtime    int  `json:"overtime"`
}
