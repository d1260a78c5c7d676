/*
ledger.go - The Ledger container and branch/employee/shift management

PURPOSE:
  Ledger owns all shift-management state for one store fleet: branches,
  employees, shifts, the time-log arena and the per-branch current-shift
  map. Every operation takes the ledger mutex, runs to completion and
  returns synchronously; there is no internal blocking (matching the
  single-writer discipline the state machine needs).

CURRENT SHIFT:
  The original system kept a single process-wide "current shift" pointer,
  which cannot represent two branches running simultaneous shifts. Here the
  pointer is a per-branch map, explicit in the API via CurrentShift.

TIME LOGS:
  Stored once, in the arena (l.timeLogs). Employee.TimeLogs and
  Shift.TimeLogs hold IDs only, so there are no mirrored copies to keep in
  sync.

SEE ALSO:
  - attendance.go: clock-in/out and breaks
  - payroll.go: endShift and sales reconciliation
  - stats.go: lateness/overtime queries
*/
package shiftledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	mu     sync.Mutex
	now    func() time.Time
	policy Policy

	branches  map[BranchID]*Branch
	employees map[EmployeeID]*Employee
	shifts    map[ShiftID]*Shift
	timeLogs  map[TimeLogID]*TimeLog

	// Insertion order, so listings and snapshots are deterministic.
	branchOrder   []BranchID
	employeeOrder []EmployeeID
	shiftOrder    []ShiftID
	logOrder      []TimeLogID

	current map[BranchID]ShiftID
}

func NewLedger(policy Policy) *Ledger {
	return &Ledger{
		now:       time.Now,
		policy:    policy,
		branches:  make(map[BranchID]*Branch),
		employees: make(map[EmployeeID]*Employee),
		shifts:    make(map[ShiftID]*Shift),
		timeLogs:  make(map[TimeLogID]*TimeLog),
		current:   make(map[BranchID]ShiftID),
	}
}

// SetClock replaces the time source. Tests use this to pin "now".
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Policy returns the ledger's operational constants.
func (l *Ledger) Policy() Policy {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.policy
}

func newID() string { return uuid.NewString() }

// =============================================================================
// BRANCHES
// =============================================================================

func (l *Ledger) AddBranch(name string) Branch {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := &Branch{ID: BranchID(newID()), Name: name}
	l.branches[b.ID] = b
	l.branchOrder = append(l.branchOrder, b.ID)
	return *b
}

func (l *Ledger) RenameBranch(id BranchID, name string) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.branches[id]
	if !ok {
		return NotFound
	}
	b.Name = name
	return Applied
}

func (l *Ledger) RemoveBranch(id BranchID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.branches[id]; !ok {
		return NotFound
	}
	delete(l.branches, id)
	l.branchOrder = removeID(l.branchOrder, id)
	delete(l.current, id)
	return Applied
}

func (l *Ledger) Branch(id BranchID) (Branch, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.branches[id]
	if !ok {
		return Branch{}, false
	}
	return *b, true
}

func (l *Ledger) Branches() []Branch {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Branch, 0, len(l.branchOrder))
	for _, id := range l.branchOrder {
		out = append(out, *l.branches[id])
	}
	return out
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// NewEmployee carries the caller-supplied fields of an employee record.
// Status, working branch and time logs are ledger-managed.
type NewEmployee struct {
	Name        string
	Role        string
	Email       string
	Phone       string
	Wage        decimal.Decimal
	WageType    WageType
	HomeBranch  BranchID
	Preferences []Preference
}

func (l *Ledger) AddEmployee(in NewEmployee) Employee {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := &Employee{
		ID:          EmployeeID(newID()),
		Name:        in.Name,
		Role:        in.Role,
		Email:       in.Email,
		Phone:       in.Phone,
		Wage:        in.Wage,
		WageType:    in.WageType,
		HomeBranch:  in.HomeBranch,
		Branch:      in.HomeBranch,
		Preferences: append([]Preference(nil), in.Preferences...),
		Status:      StatusOffDuty,
		TimeLogs:    []TimeLogID{},
	}
	l.employees[e.ID] = e
	l.employeeOrder = append(l.employeeOrder, e.ID)
	return *e
}

// EmployeeUpdate merges partial fields into an employee; nil fields are
// left untouched. Attendance state (status, logs) is not updatable here.
type EmployeeUpdate struct {
	Name        *string
	Role        *string
	Email       *string
	Phone       *string
	Wage        *decimal.Decimal
	WageType    *WageType
	HomeBranch  *BranchID
	Preferences *[]Preference
}

func (l *Ledger) UpdateEmployee(id EmployeeID, patch EmployeeUpdate) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.employees[id]
	if !ok {
		return NotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Role != nil {
		e.Role = *patch.Role
	}
	if patch.Email != nil {
		e.Email = *patch.Email
	}
	if patch.Phone != nil {
		e.Phone = *patch.Phone
	}
	if patch.Wage != nil {
		e.Wage = *patch.Wage
	}
	if patch.WageType != nil {
		e.WageType = *patch.WageType
	}
	if patch.HomeBranch != nil {
		e.HomeBranch = *patch.HomeBranch
	}
	if patch.Preferences != nil {
		e.Preferences = append([]Preference(nil), (*patch.Preferences)...)
	}
	return Applied
}

func (l *Ledger) RemoveEmployee(id EmployeeID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.employees[id]; !ok {
		return NotFound
	}
	delete(l.employees, id)
	l.employeeOrder = removeID(l.employeeOrder, id)
	return Applied
}

func (l *Ledger) Employee(id EmployeeID) (Employee, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.employees[id]
	if !ok {
		return Employee{}, false
	}
	return *e, true
}

func (l *Ledger) Employees() []Employee {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Employee, 0, len(l.employeeOrder))
	for _, id := range l.employeeOrder {
		out = append(out, *l.employees[id])
	}
	return out
}

// EmployeesByBranch lists employees whose working branch matches.
func (l *Ledger) EmployeesByBranch(branch BranchID) []Employee {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Employee
	for _, id := range l.employeeOrder {
		if e := l.employees[id]; e.Branch == branch {
			out = append(out, *e)
		}
	}
	return out
}

// =============================================================================
// SHIFTS
// =============================================================================

// StartShift opens a new active shift at the branch, makes it the branch's
// current shift, and enrolls every employee homed at the branch whose
// preferences include (branch, kind). Enrollment does NOT clock anyone in;
// those are distinct steps.
func (l *Ledger) StartShift(branch BranchID) (Shift, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.branches[branch]; !ok {
		return Shift{}, ErrBranchNotFound
	}

	now := l.now()
	s := &Shift{
		ID:             ShiftID(newID()),
		Name:           now.Format("2006-01-02"),
		Kind:           KindMorning,
		Branch:         branch,
		Status:         ShiftActive,
		ScheduledStart: l.policy.ScheduledStart,
		ScheduledEnd:   l.policy.ScheduledEnd,
		ActualStart:    now,
		Employees:      []EmployeeID{},
		Tasks:          []Task{},
		Expenses:       []Expense{},
		TimeLogs:       []TimeLogID{},
	}
	l.shifts[s.ID] = s
	l.shiftOrder = append(l.shiftOrder, s.ID)
	l.current[branch] = s.ID

	for _, id := range l.employeeOrder {
		e := l.employees[id]
		if e.HomeBranch == branch && hasPreference(e, branch, s.Kind) {
			s.Employees = append(s.Employees, e.ID)
		}
	}
	return *s, nil
}

// AddShift is the pre-planning path: it creates a shift with an explicit
// status (usually upcoming) without touching the current-shift map.
func (l *Ledger) AddShift(name string, kind ShiftKind, branch BranchID, status ShiftStatus) (Shift, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.branches[branch]; !ok {
		return Shift{}, ErrBranchNotFound
	}

	s := &Shift{
		ID:             ShiftID(newID()),
		Name:           name,
		Kind:           kind,
		Branch:         branch,
		Status:         status,
		ScheduledStart: l.policy.ScheduledStart,
		ScheduledEnd:   l.policy.ScheduledEnd,
		ActualStart:    l.now(),
		Employees:      []EmployeeID{},
		Tasks:          []Task{},
		Expenses:       []Expense{},
		TimeLogs:       []TimeLogID{},
	}
	l.shifts[s.ID] = s
	l.shiftOrder = append(l.shiftOrder, s.ID)
	return *s, nil
}

func (l *Ledger) RemoveShift(id ShiftID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[id]
	if !ok {
		return NotFound
	}
	// Tasks and expenses die with the shift; time logs stay in the arena
	// as the employees' attendance history.
	delete(l.shifts, id)
	l.shiftOrder = removeID(l.shiftOrder, id)
	if l.current[s.Branch] == id {
		delete(l.current, s.Branch)
	}
	return Applied
}

func (l *Ledger) Shift(id ShiftID) (Shift, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[id]
	if !ok {
		return Shift{}, false
	}
	return *s, true
}

func (l *Ledger) Shifts() []Shift {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Shift, 0, len(l.shiftOrder))
	for _, id := range l.shiftOrder {
		out = append(out, *l.shifts[id])
	}
	return out
}

// CurrentShift returns the branch's running shift, if any.
func (l *Ledger) CurrentShift(branch BranchID) (Shift, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.current[branch]
	if !ok {
		return Shift{}, false
	}
	return *l.shifts[id], true
}

// SetCurrentShift points the branch at an existing shift, or clears the
// pointer when id is empty.
func (l *Ledger) SetCurrentShift(branch BranchID, id ShiftID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.branches[branch]; !ok {
		return NotFound
	}
	if id == "" {
		delete(l.current, branch)
		return Applied
	}
	if _, ok := l.shifts[id]; !ok {
		return NotFound
	}
	l.current[branch] = id
	return Applied
}

// TimeLog looks up one entry of the time-log arena.
func (l *Ledger) TimeLog(id TimeLogID) (TimeLog, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tl, ok := l.timeLogs[id]
	if !ok {
		return TimeLog{}, false
	}
	return *tl, true
}

// =============================================================================
// ROSTER
// =============================================================================

// AddStaffToShift appends the employee to the shift roster, gated on the
// employee having a preference matching the shift's (branch, kind). A
// non-matching employee is rejected without mutation.
func (l *Ledger) AddStaffToShift(shiftID ShiftID, employeeID EmployeeID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return NotFound
	}
	e, ok := l.employees[employeeID]
	if !ok {
		return NotFound
	}
	if !hasPreference(e, s.Branch, s.Kind) {
		return Rejected
	}
	for _, id := range s.Employees {
		if id == employeeID {
			return NoOp
		}
	}
	s.Employees = append(s.Employees, employeeID)
	return Applied
}

// RemoveStaffFromShift removes the employee from the roster. It does not
// clock the employee out; an open time log stays open until ClockOut or
// EndShift closes it.
func (l *Ledger) RemoveStaffFromShift(shiftID ShiftID, employeeID EmployeeID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return NotFound
	}
	for i, id := range s.Employees {
		if id == employeeID {
			s.Employees = append(s.Employees[:i], s.Employees[i+1:]...)
			return Applied
		}
	}
	return NoOp
}

// =============================================================================
// TASKS
// =============================================================================

func (l *Ledger) AddTask(shiftID ShiftID, description string, assignedTo EmployeeID) (Task, Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return Task{}, NotFound
	}
	t := Task{
		ID:          TaskID(newID()),
		Description: description,
		AssignedTo:  assignedTo,
		Status:      TaskPending,
	}
	s.Tasks = append(s.Tasks, t)
	return t, Applied
}

// TaskUpdate merges partial fields, commonly just status pending<->completed.
type TaskUpdate struct {
	Description *string
	AssignedTo  *EmployeeID
	Status      *TaskStatus
}

func (l *Ledger) UpdateTask(shiftID ShiftID, taskID TaskID, patch TaskUpdate) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return NotFound
	}
	for i := range s.Tasks {
		if s.Tasks[i].ID != taskID {
			continue
		}
		if patch.Description != nil {
			s.Tasks[i].Description = *patch.Description
		}
		if patch.AssignedTo != nil {
			s.Tasks[i].AssignedTo = *patch.AssignedTo
		}
		if patch.Status != nil {
			s.Tasks[i].Status = *patch.Status
		}
		return Applied
	}
	return NotFound
}

func (l *Ledger) RemoveTask(shiftID ShiftID, taskID TaskID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return NotFound
	}
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			return Applied
		}
	}
	return NotFound
}

// =============================================================================
// EXPENSES
// =============================================================================

// AddExpense records a shift expense. Amount must be positive.
func (l *Ledger) AddExpense(shiftID ShiftID, branch BranchID, description, category string, amount decimal.Decimal) (Expense, Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return Expense{}, NotFound
	}
	if !amount.IsPositive() {
		return Expense{}, Rejected
	}
	ex := Expense{
		ID:          ExpenseID(newID()),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        l.now(),
		Branch:      branch,
		Shift:       shiftID,
	}
	s.Expenses = append(s.Expenses, ex)
	return ex, Applied
}

func (l *Ledger) RemoveExpense(shiftID ShiftID, expenseID ExpenseID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return NotFound
	}
	for i := range s.Expenses {
		if s.Expenses[i].ID == expenseID {
			s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
			return Applied
		}
	}
	return NotFound
}

// ShiftExpenses returns the shift's expense list in insertion order.
func (l *Ledger) ShiftExpenses(shiftID ShiftID) []Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return nil
	}
	return append([]Expense(nil), s.Expenses...)
}

// BranchExpenses collects expenses from the branch's shifts that started
// within [from, to].
func (l *Ledger) BranchExpenses(branch BranchID, from, to time.Time) []Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Expense
	for _, id := range l.shiftOrder {
		s := l.shifts[id]
		if s.Branch != branch {
			continue
		}
		if s.ActualStart.Before(from) || s.ActualStart.After(to) {
			continue
		}
		out = append(out, s.Expenses...)
	}
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

func hasPreference(e *Employee, branch BranchID, kind ShiftKind) bool {
	for _, p := range e.Preferences {
		if p.Branch == branch && p.Kind == kind {
			return true
		}
	}
	return false
}

func removeID[T ~string](ids []T, id T) []T {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
