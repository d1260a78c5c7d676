/*
handlers.go - HTTP API handlers for the fruit store back office

PURPOSE:
  Exposes the shift ledger via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Branches:
    GET    /api/branches               List branches
    POST   /api/branches               Create branch
    PUT    /api/branches/{id}          Rename branch
    DELETE /api/branches/{id}          Remove branch
    GET    /api/branches/{id}/current-shift  Running shift, if any
    GET    /api/branches/{id}/expenses Expenses over a date range

  Employees:
    GET    /api/employees              List (optionally ?branch=)
    POST   /api/employees              Register employee
    PUT    /api/employees/{id}         Patch employee
    DELETE /api/employees/{id}         Remove employee
    GET    /api/employees/{id}/shifts/{shiftId}/stats  Attendance stats

  Shifts:
    GET    /api/shifts                 List shifts
    POST   /api/shifts                 Pre-plan a shift
    POST   /api/shifts/start           Open today's shift on a branch
    POST   /api/shifts/current         Point a branch at a shift
    GET    /api/shifts/{id}            Get shift
    DELETE /api/shifts/{id}            Remove shift
    POST   /api/shifts/{id}/end        Close without reconciliation
    POST   /api/shifts/{id}/end-with-sales  Close with inline sales lines
    POST   /api/shifts/{id}/sales      Close with a CSV sales report
    POST   /api/shifts/{id}/staff      Add to roster
    DELETE /api/shifts/{id}/staff/{employeeId}  Remove from roster
    POST   /api/shifts/{id}/tasks      Add task
    PUT    /api/shifts/{id}/tasks/{taskId}      Patch task
    DELETE /api/shifts/{id}/tasks/{taskId}      Remove task
    POST   /api/shifts/{id}/expenses   Record expense
    DELETE /api/shifts/{id}/expenses/{expenseId}  Remove expense

  Attendance:
    POST   /api/attendance/clock-in
    POST   /api/attendance/clock-out
    POST   /api/attendance/break

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Rejected by a domain guard
  - 500: Internal errors
  Mutations that land as no-ops still return 200 with an outcome field,
  so retries are safe.

PERSISTENCE:
  Every successful mutation snapshots the touched ledger into the
  configured store. Reads never touch the store.

SEE ALSO:
  - dto.go: Request/response data structures
  - supplements.go: Inventory/finance/supplier handlers
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fruitstand/backoffice/finance"
	"github.com/fruitstand/backoffice/ingest"
	"github.com/fruitstand/backoffice/inventory"
	"github.com/fruitstand/backoffice/shiftledger"
	"github.com/fruitstand/backoffice/store"
	"github.com/fruitstand/backoffice/supplier"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Shifts    *shiftledger.Ledger
	Inventory *inventory.Ledger
	Finance   *finance.Ledger
	Suppliers *supplier.Ledger
	Store     store.Store
}

// NewHandler wires fresh ledgers to the given snapshot store.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		Shifts:    shiftledger.NewLedger(shiftledger.DefaultPolicy()),
		Inventory: inventory.NewLedger(),
		Finance:   finance.NewLedger(),
		Suppliers: supplier.NewLedger(),
		Store:     st,
	}
}

type snapshotter interface {
	MarshalSnapshot() ([]byte, error)
	RestoreSnapshot([]byte) error
}

// LoadSnapshots restores every ledger that has a saved snapshot. A ledger
// without one starts empty; that is not an error.
func (h *Handler) LoadSnapshots(ctx context.Context) error {
	ledgers := map[string]snapshotter{
		shiftledger.StoreKey: h.Shifts,
		inventory.StoreKey:   h.Inventory,
		finance.StoreKey:     h.Finance,
		supplier.StoreKey:    h.Suppliers,
	}
	for name, l := range ledgers {
		data, err := h.Store.Load(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := l.RestoreSnapshot(data); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) persist(ctx context.Context, name string, l snapshotter) error {
	data, err := l.MarshalSnapshot()
	if err != nil {
		return err
	}
	return h.Store.Save(ctx, name, data)
}

func (h *Handler) persistShifts(w http.ResponseWriter, r *http.Request) bool {
	if err := h.persist(r.Context(), shiftledger.StoreKey, h.Shifts); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist shift ledger", err)
		return false
	}
	return true
}

// =============================================================================
// BRANCH HANDLERS
// =============================================================================

// ListBranches returns all branches.
func (h *Handler) ListBranches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Shifts.Branches())
}

// CreateBranch opens a new branch.
func (h *Handler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Branch name is required", nil)
		return
	}

	b := h.Shifts.AddBranch(req.Name)
	if !h.persistShifts(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// RenameBranch updates a branch name.
func (h *Handler) RenameBranch(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.BranchID(chi.URLParam(r, "id"))

	var req RenameBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.RenameBranch(id, req.Name)
	writeOutcome(w, r, h, out)
}

// DeleteBranch removes a branch.
func (h *Handler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.BranchID(chi.URLParam(r, "id"))
	out := h.Shifts.RemoveBranch(id)
	writeOutcome(w, r, h, out)
}

// GetCurrentShift returns the branch's running shift, or 404.
func (h *Handler) GetCurrentShift(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.BranchID(chi.URLParam(r, "id"))

	s, ok := h.Shifts.CurrentShift(id)
	if !ok {
		writeError(w, http.StatusNotFound, "No current shift for branch", nil)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetBranchExpenses returns expenses for a branch within ?from= and ?to=
// (YYYY-MM-DD, inclusive).
func (h *Handler) GetBranchExpenses(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.BranchID(chi.URLParam(r, "id"))

	from, err := parseDateQuery(r, "from", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}
	to, err := parseDateQuery(r, "to", time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
		return
	}

	writeJSON(w, http.StatusOK, h.Shifts.BranchExpenses(id, from, to))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees, or a branch's crew with ?branch=.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	if branch := r.URL.Query().Get("branch"); branch != "" {
		writeJSON(w, http.StatusOK, h.Shifts.EmployeesByBranch(shiftledger.BranchID(branch)))
		return
	}
	writeJSON(w, http.StatusOK, h.Shifts.Employees())
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.EmployeeID(chi.URLParam(r, "id"))

	e, ok := h.Shifts.Employee(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateEmployee registers a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required", nil)
		return
	}

	e := h.Shifts.AddEmployee(shiftledger.NewEmployee{
		Name:        req.Name,
		Role:        req.Role,
		Email:       req.Email,
		Phone:       req.Phone,
		Wage:        req.Wage,
		WageType:    req.WageType,
		HomeBranch:  req.HomeBranch,
		Preferences: req.Preferences,
	})
	if !h.persistShifts(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// UpdateEmployee patches an employee.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.EmployeeID(chi.URLParam(r, "id"))

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.UpdateEmployee(id, shiftledger.EmployeeUpdate{
		Name:        req.Name,
		Role:        req.Role,
		Email:       req.Email,
		Phone:       req.Phone,
		Wage:        req.Wage,
		WageType:    req.WageType,
		HomeBranch:  req.HomeBranch,
		Preferences: req.Preferences,
	})
	writeOutcome(w, r, h, out)
}

// DeleteEmployee removes an employee.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.EmployeeID(chi.URLParam(r, "id"))
	out := h.Shifts.RemoveEmployee(id)
	writeOutcome(w, r, h, out)
}

// GetEmployeeShiftStats returns attendance stats for one employee on one
// shift.
func (h *Handler) GetEmployeeShiftStats(w http.ResponseWriter, r *http.Request) {
	employeeID := shiftledger.EmployeeID(chi.URLParam(r, "id"))
	shiftID := shiftledger.ShiftID(chi.URLParam(r, "shiftId"))
	writeJSON(w, http.StatusOK, h.Shifts.EmployeeShiftStats(employeeID, shiftID))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns all shifts.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Shifts.Shifts())
}

// GetShift returns a single shift.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))

	s, ok := h.Shifts.Shift(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// CreateShift pre-plans a shift without making it current.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s, err := h.Shifts.AddShift(req.Name, req.Kind, req.Branch, req.Status)
	if err != nil {
		writeError(w, statusForErr(err), "Failed to create shift", err)
		return
	}
	if !h.persistShifts(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// StartShift opens today's shift on a branch and auto-enrolls the crew.
func (h *Handler) StartShift(w http.ResponseWriter, r *http.Request) {
	var req StartShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s, err := h.Shifts.StartShift(req.Branch)
	if err != nil {
		writeError(w, statusForErr(err), "Failed to start shift", err)
		return
	}
	if !h.persistShifts(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// SetCurrentShift points a branch at a shift; an empty shift ID clears it.
func (h *Handler) SetCurrentShift(w http.ResponseWriter, r *http.Request) {
	var req SetCurrentShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.SetCurrentShift(req.Branch, req.Shift)
	writeOutcome(w, r, h, out)
}

// DeleteShift removes a shift.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))
	out := h.Shifts.RemoveShift(id)
	writeOutcome(w, r, h, out)
}

// EndShift closes a shift without sales reconciliation.
func (h *Handler) EndShift(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))
	out := h.Shifts.EndShift(id)
	writeOutcome(w, r, h, out)
}

// EndShiftWithSales closes a shift and reconciles inline sales lines.
func (h *Handler) EndShiftWithSales(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))

	var req EndShiftWithSalesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.endWithSales(w, r, id, req.Sales)
}

// EndShiftWithSalesCSV closes a shift from an uploaded CSV sales report.
func (h *Handler) EndShiftWithSalesCSV(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))

	lines, err := ingest.ParseSales(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sales report", err)
		return
	}

	h.endWithSales(w, r, id, lines)
}

func (h *Handler) endWithSales(w http.ResponseWriter, r *http.Request, id shiftledger.ShiftID, lines []shiftledger.SalesLine) {
	rec, out := h.Shifts.EndShiftWithSales(id, lines)
	if out == shiftledger.NotFound {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	if !h.persistShifts(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, ReconciliationDTO{Outcome: out, Reconciliation: rec})
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// AddStaffToShift adds an employee to a shift roster.
func (h *Handler) AddStaffToShift(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))

	var req RosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.AddStaffToShift(id, req.Employee)
	writeOutcome(w, r, h, out)
}

// RemoveStaffFromShift drops an employee from a shift roster. It never
// clocks anyone out.
func (h *Handler) RemoveStaffFromShift(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))
	employeeID := shiftledger.EmployeeID(chi.URLParam(r, "employeeId"))

	out := h.Shifts.RemoveStaffFromShift(id, employeeID)
	writeOutcome(w, r, h, out)
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// ClockIn opens a time log against the branch's current shift.
func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.ClockIn(req.Employee, req.Branch)
	writeOutcome(w, r, h, out)
}

// ClockOut closes the employee's open time log.
func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.ClockOut(req.Employee)
	writeOutcome(w, r, h, out)
}

// SetBreak starts or ends a break on the employee's open time log.
func (h *Handler) SetBreak(w http.ResponseWriter, r *http.Request) {
	var req BreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.SetBreak(req.Employee, req.Starting)
	writeOutcome(w, r, h, out)
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

// CreateTask adds a task to a shift.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	task, out := h.Shifts.AddTask(id, req.Description, req.AssignedTo)
	if !out.AppliedOK() {
		writeOutcome(w, r, h, out)
		return
	}
	if !h.persistShifts(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask patches a task on a shift.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))
	taskID := shiftledger.TaskID(chi.URLParam(r, "taskId"))

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := h.Shifts.UpdateTask(id, taskID, shiftledger.TaskUpdate{
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
	})
	writeOutcome(w, r, h, out)
}

// DeleteTask removes a task from a shift.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))
	taskID := shiftledger.TaskID(chi.URLParam(r, "taskId"))

	out := h.Shifts.RemoveTask(id, taskID)
	writeOutcome(w, r, h, out)
}

// =============================================================================
// EXPENSE HANDLERS
// =============================================================================

// CreateExpense records an expense against a shift.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	expense, out := h.Shifts.AddExpense(id, req.Branch, req.Description, req.Category, req.Amount)
	if !out.AppliedOK() {
		writeOutcome(w, r, h, out)
		return
	}
	if !h.persistShifts(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// DeleteExpense removes an expense from a shift.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := shiftledger.ShiftID(chi.URLParam(r, "id"))
	expenseID := shiftledger.ExpenseID(chi.URLParam(r, "expenseId"))

	out := h.Shifts.RemoveExpense(id, expenseID)
	writeOutcome(w, r, h, out)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// writeOutcome maps a ledger outcome to an HTTP status, persisting the
// shift ledger first when the mutation applied.
func writeOutcome(w http.ResponseWriter, r *http.Request, h *Handler, out shiftledger.Outcome) {
	switch out {
	case shiftledger.NotFound:
		writeJSON(w, http.StatusNotFound, OutcomeDTO{Outcome: out})
	case shiftledger.Rejected:
		writeJSON(w, http.StatusConflict, OutcomeDTO{Outcome: out})
	case shiftledger.Applied:
		if !h.persistShifts(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, OutcomeDTO{Outcome: out})
	default: // NoOp
		writeJSON(w, http.StatusOK, OutcomeDTO{Outcome: out})
	}
}

func statusForErr(err error) int {
	switch {
	case errors.Is(err, shiftledger.ErrBranchNotFound),
		errors.Is(err, shiftledger.ErrEmployeeNotFound),
		errors.Is(err, shiftledger.ErrShiftNotFound),
		errors.Is(err, shiftledger.ErrNoCurrentShift):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parseDateQuery(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", raw)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
