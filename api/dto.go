/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - supplements.go: Inventory/finance/supplier handlers
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fruitstand/backoffice/finance"
	"github.com/fruitstand/backoffice/inventory"
	"github.com/fruitstand/backoffice/shiftledger"
	"github.com/fruitstand/backoffice/supplier"
)

// =============================================================================
// SHIFT LEDGER TYPES
// =============================================================================

// CreateBranchRequest is the request to create a branch.
type CreateBranchRequest struct {
	Name string `json:"name"`
}

// RenameBranchRequest is the request to rename a branch.
type RenameBranchRequest struct {
	Name string `json:"name"`
}

// CreateEmployeeRequest is the request to register an employee.
type CreateEmployeeRequest struct {
	Name        string                   `json:"name"`
	Role        string                   `json:"role"`
	Email       string                   `json:"email"`
	Phone       string                   `json:"phone"`
	Wage        decimal.Decimal          `json:"wage"`
	WageType    shiftledger.WageType     `json:"wageType"`
	HomeBranch  shiftledger.BranchID     `json:"branchId"`
	Preferences []shiftledger.Preference `json:"shiftPreferences"`
}

// UpdateEmployeeRequest patches an employee; omitted fields are untouched.
type UpdateEmployeeRequest struct {
	Name        *string                   `json:"name,omitempty"`
	Role        *string                   `json:"role,omitempty"`
	Email       *string                   `json:"email,omitempty"`
	Phone       *string                   `json:"phone,omitempty"`
	Wage        *decimal.Decimal          `json:"wage,omitempty"`
	WageType    *shiftledger.WageType     `json:"wageType,omitempty"`
	HomeBranch  *shiftledger.BranchID     `json:"branchId,omitempty"`
	Preferences *[]shiftledger.Preference `json:"shiftPreferences,omitempty"`
}

// CreateShiftRequest is the request to pre-plan a shift.
type CreateShiftRequest struct {
	Name   string                  `json:"name"`
	Kind   shiftledger.ShiftKind   `json:"type"`
	Branch shiftledger.BranchID    `json:"branchId"`
	Status shiftledger.ShiftStatus `json:"status"`
}

// StartShiftRequest opens today's shift on a branch.
type StartShiftRequest struct {
	Branch shiftledger.BranchID `json:"branchId"`
}

// SetCurrentShiftRequest points a branch at a shift. An empty shift ID
// clears the pointer.
type SetCurrentShiftRequest struct {
	Branch shiftledger.BranchID `json:"branchId"`
	Shift  shiftledger.ShiftID  `json:"shiftId"`
}

// RosterRequest adds an employee to a shift roster.
type RosterRequest struct {
	Employee shiftledger.EmployeeID `json:"employeeId"`
}

// AttendanceRequest drives clock-in and clock-out.
type AttendanceRequest struct {
	Employee shiftledger.EmployeeID `json:"employeeId"`
	Branch   shiftledger.BranchID   `json:"branchId,omitempty"`
}

// BreakRequest starts or ends a break.
type BreakRequest struct {
	Employee shiftledger.EmployeeID `json:"employeeId"`
	Starting bool                   `json:"starting"`
}

// CreateTaskRequest adds a task to a shift.
type CreateTaskRequest struct {
	Description string                 `json:"description"`
	AssignedTo  shiftledger.EmployeeID `json:"assignedTo,omitempty"`
}

// UpdateTaskRequest patches a task.
type UpdateTaskRequest struct {
	Description *string                 `json:"description,omitempty"`
	Status      *shiftledger.TaskStatus `json:"status,omitempty"`
	AssignedTo  *shiftledger.EmployeeID `json:"assignedTo,omitempty"`
}

// CreateExpenseRequest records a shift expense.
type CreateExpenseRequest struct {
	Branch      shiftledger.BranchID `json:"branchId"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Amount      decimal.Decimal      `json:"amount"`
}

// EndShiftWithSalesRequest closes a shift with its sales figures inline.
// CSV upload is the alternative; see POST /shifts/{id}/sales.
type EndShiftWithSalesRequest struct {
	Sales []shiftledger.SalesLine `json:"sales"`
}

// OutcomeDTO reports how a ledger mutation landed.
type OutcomeDTO struct {
	Outcome shiftledger.Outcome `json:"outcome"`
}

// ReconciliationDTO wraps the end-of-shift figures.
type ReconciliationDTO struct {
	Outcome        shiftledger.Outcome        `json:"outcome"`
	Reconciliation shiftledger.Reconciliation `json:"reconciliation"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// INVENTORY TYPES
// =============================================================================

// CreateItemRequest registers a stock item.
type CreateItemRequest struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Barcode      string          `json:"barcode"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Category     string          `json:"category"`
	Location     string          `json:"location"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	MaximumStock decimal.Decimal `json:"maximumStock"`
	ReorderPoint decimal.Decimal `json:"reorderPoint"`
	Supplier     string          `json:"supplier"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
}

// UpdateItemRequest patches an item; omitted fields are untouched.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	SKU          *string          `json:"sku,omitempty"`
	Barcode      *string          `json:"barcode,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	CostPrice    *decimal.Decimal `json:"costPrice,omitempty"`
	SellingPrice *decimal.Decimal `json:"sellingPrice,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Location     *string          `json:"location,omitempty"`
	MinimumStock *decimal.Decimal `json:"minimumStock,omitempty"`
	MaximumStock *decimal.Decimal `json:"maximumStock,omitempty"`
	ReorderPoint *decimal.Decimal `json:"reorderPoint,omitempty"`
	Supplier     *string          `json:"supplier,omitempty"`
}

// RecordMovementRequest records a stock movement.
type RecordMovementRequest struct {
	ItemID       inventory.ItemID       `json:"itemId"`
	Type         inventory.MovementType `json:"type"`
	Quantity     decimal.Decimal        `json:"quantity"`
	Reference    string                 `json:"reference"`
	Notes        string                 `json:"notes"`
	FromLocation string                 `json:"fromLocation"`
	ToLocation   string                 `json:"toLocation"`
}

// LocationRequest names a storage location.
type LocationRequest struct {
	Name string `json:"name"`
}

// CostingRequest selects the stock valuation method.
type CostingRequest struct {
	Method inventory.CostingMethod `json:"method"`
}

// StockDTO reports the stock level of one item at one location.
type StockDTO struct {
	ItemID   inventory.ItemID `json:"itemId"`
	Location string           `json:"location"`
	Quantity decimal.Decimal  `json:"quantity"`
}

// =============================================================================
// FINANCE TYPES
// =============================================================================

// CreateAccountRequest opens a bookkeeping account.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateTransactionRequest records a transaction.
type CreateTransactionRequest struct {
	Account     finance.AccountID         `json:"accountId"`
	Date        time.Time                 `json:"date"`
	Description string                    `json:"description"`
	Amount      decimal.Decimal           `json:"amount"`
	Type        finance.TransactionType   `json:"type"`
	Category    string                    `json:"category"`
	Status      finance.TransactionStatus `json:"status,omitempty"`
}

// SetTransactionStatusRequest flips a transaction's status.
type SetTransactionStatusRequest struct {
	Status finance.TransactionStatus `json:"status"`
}

// BalanceDTO reports an account balance.
type BalanceDTO struct {
	Account finance.AccountID `json:"accountId"`
	Balance decimal.Decimal   `json:"balance"`
}

// CashFlowDTO reports net cash flow over a window.
type CashFlowDTO struct {
	From time.Time       `json:"from"`
	To   time.Time       `json:"to"`
	Net  decimal.Decimal `json:"net"`
}

// =============================================================================
// SUPPLIER TYPES
// =============================================================================

// CreateSupplierRequest registers a supplier.
type CreateSupplierRequest struct {
	Name          string                  `json:"name"`
	ContactPerson string                  `json:"contactPerson"`
	Email         string                  `json:"email"`
	Phone         string                  `json:"phone"`
	Address       string                  `json:"address"`
	Rating        float64                 `json:"rating"`
	Status        supplier.SupplierStatus `json:"status,omitempty"`
	PaymentTerms  string                  `json:"paymentTerms"`
	TaxID         string                  `json:"taxId"`
}

// UpdateSupplierRequest patches a supplier; omitted fields are untouched.
type UpdateSupplierRequest struct {
	Name          *string                  `json:"name,omitempty"`
	ContactPerson *string                  `json:"contactPerson,omitempty"`
	Email         *string                  `json:"email,omitempty"`
	Phone         *string                  `json:"phone,omitempty"`
	Address       *string                  `json:"address,omitempty"`
	Rating        *float64                 `json:"rating,omitempty"`
	Status        *supplier.SupplierStatus `json:"status,omitempty"`
	PaymentTerms  *string                  `json:"paymentTerms,omitempty"`
	TaxID         *string                  `json:"taxId,omitempty"`
}

// CreateOrderRequest places a purchase order. Line and order totals are
// computed server-side.
type CreateOrderRequest struct {
	Supplier         supplier.SupplierID    `json:"supplierId"`
	OrderDate        time.Time              `json:"orderDate"`
	ExpectedDelivery time.Time              `json:"expectedDelivery"`
	Status           supplier.OrderStatus   `json:"status,omitempty"`
	Items            []supplier.OrderLine   `json:"items"`
	Notes            string                 `json:"notes"`
	PaymentStatus    supplier.PaymentStatus `json:"paymentStatus,omitempty"`
}

// UpdateOrderRequest patches a purchase order.
type UpdateOrderRequest struct {
	ExpectedDelivery *time.Time              `json:"expectedDelivery,omitempty"`
	Status           *supplier.OrderStatus   `json:"status,omitempty"`
	Notes            *string                 `json:"notes,omitempty"`
	PaymentStatus    *supplier.PaymentStatus `json:"paymentStatus,omitempty"`
}

// RatingDTO reports a supplier's effective rating.
type RatingDTO struct {
	Supplier supplier.SupplierID `json:"supplierId"`
	Rating   float64             `json:"rating"`
}
