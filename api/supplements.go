/*
supplements.go - HTTP handlers for inventory, bookkeeping and suppliers

PURPOSE:
  The back-office surfaces that sit alongside the shift ledger: stock
  items and movements, accounts and transactions, suppliers and purchase
  orders. Same conventions as handlers.go: JSON in, JSON out, snapshot
  the touched ledger after every successful mutation.

SEE ALSO:
  - handlers.go: Shift ledger handlers and shared helpers
  - dto.go: Request/response data structures
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fruitstand/backoffice/finance"
	"github.com/fruitstand/backoffice/inventory"
	"github.com/fruitstand/backoffice/store"
	"github.com/fruitstand/backoffice/supplier"
)

func (h *Handler) persistInventory(w http.ResponseWriter, r *http.Request) bool {
	if err := h.persist(r.Context(), inventory.StoreKey, h.Inventory); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist inventory", err)
		return false
	}
	return true
}

func (h *Handler) persistFinance(w http.ResponseWriter, r *http.Request) bool {
	if err := h.persist(r.Context(), finance.StoreKey, h.Finance); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist bookkeeping", err)
		return false
	}
	return true
}

func (h *Handler) persistSuppliers(w http.ResponseWriter, r *http.Request) bool {
	if err := h.persist(r.Context(), supplier.StoreKey, h.Suppliers); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist suppliers", err)
		return false
	}
	return true
}

// statusForSupplementErr maps the supplement ledgers' sentinels onto HTTP.
func statusForSupplementErr(err error) int {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound),
		errors.Is(err, inventory.ErrMovementNotFound),
		errors.Is(err, finance.ErrAccountNotFound),
		errors.Is(err, finance.ErrTransactionNotFound),
		errors.Is(err, supplier.ErrSupplierNotFound),
		errors.Is(err, supplier.ErrOrderNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrBadQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// INVENTORY HANDLERS
// =============================================================================

// ListItems returns every stock item.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Inventory.Items())
}

// GetItem returns a single stock item.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))

	item, ok := h.Inventory.Item(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Item not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateItem registers a stock item.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required", nil)
		return
	}

	item := h.Inventory.AddItem(inventory.NewItem{
		Name:         req.Name,
		SKU:          req.SKU,
		Barcode:      req.Barcode,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Category:     req.Category,
		Location:     req.Location,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		ReorderPoint: req.ReorderPoint,
		Supplier:     req.Supplier,
		ExpiryDate:   req.ExpiryDate,
	})
	if !h.persistInventory(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem patches a stock item.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.Inventory.UpdateItem(id, inventory.ItemUpdate{
		Name:         req.Name,
		SKU:          req.SKU,
		Barcode:      req.Barcode,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Category:     req.Category,
		Location:     req.Location,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		ReorderPoint: req.ReorderPoint,
		Supplier:     req.Supplier,
	})
	if err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to update item", err)
		return
	}
	if !h.persistInventory(w, r) {
		return
	}
	item, _ := h.Inventory.Item(id)
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem removes a stock item.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))

	if err := h.Inventory.RemoveItem(id); err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to delete item", err)
		return
	}
	if !h.persistInventory(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLowStockItems returns items at or under their reorder point.
func (h *Handler) ListLowStockItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Inventory.LowStockItems())
}

// GetItemStock replays movements for one item, optionally per ?location=.
func (h *Handler) GetItemStock(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))
	location := r.URL.Query().Get("location")

	writeJSON(w, http.StatusOK, StockDTO{
		ItemID:   id,
		Location: location,
		Quantity: h.Inventory.Stock(id, location),
	})
}

// ListItemMovements returns an item's movement history, newest first.
func (h *Handler) ListItemMovements(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.Inventory.ItemMovements(id))
}

// RecordMovement applies a stock-in, stock-out or transfer.
func (h *Handler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	var req RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	m, err := h.Inventory.RecordMovement(inventory.NewMovement{
		ItemID:       req.ItemID,
		Type:         req.Type,
		Quantity:     req.Quantity,
		Reference:    req.Reference,
		Notes:        req.Notes,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
	})
	if err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to record movement", err)
		return
	}
	if !h.persistInventory(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// ListLocations returns the known storage locations.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Inventory.Locations())
}

// AddLocation registers a storage location.
func (h *Handler) AddLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Location name is required", nil)
		return
	}

	h.Inventory.AddLocation(req.Name)
	if !h.persistInventory(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, h.Inventory.Locations())
}

// SetCostingMethod selects the stock valuation method.
func (h *Handler) SetCostingMethod(w http.ResponseWriter, r *http.Request) {
	var req CostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.Inventory.SetCostingMethod(req.Method)
	if !h.persistInventory(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// FINANCE HANDLERS
// =============================================================================

// ListAccounts returns every bookkeeping account.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Finance.Accounts())
}

// CreateAccount opens a bookkeeping account.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Account name is required", nil)
		return
	}

	a := h.Finance.AddAccount(req.Name, req.Type)
	if !h.persistFinance(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// GetAccountBalance returns the account's derived balance.
func (h *Handler) GetAccountBalance(w http.ResponseWriter, r *http.Request) {
	id := finance.AccountID(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, BalanceDTO{Account: id, Balance: h.Finance.Balance(id)})
}

// ListTransactions returns every transaction.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Finance.Transactions())
}

// CreateTransaction records an income or expense transaction.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Finance.AddTransaction(finance.NewTransaction{
		Account:     req.Account,
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to record transaction", err)
		return
	}
	if !h.persistFinance(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// SetTransactionStatus flips a transaction between pending and completed.
func (h *Handler) SetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	id := finance.TransactionID(chi.URLParam(r, "id"))

	var req SetTransactionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Finance.SetTransactionStatus(id, req.Status); err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to update transaction", err)
		return
	}
	if !h.persistFinance(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTransaction removes a transaction.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := finance.TransactionID(chi.URLParam(r, "id"))

	if err := h.Finance.RemoveTransaction(id); err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to delete transaction", err)
		return
	}
	if !h.persistFinance(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCashFlow reports net cash flow between ?from= and ?to= (YYYY-MM-DD,
// inclusive; to defaults to today).
func (h *Handler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, CashFlowDTO{From: from, To: to, Net: h.Finance.CashFlow(from, to)})
}

// =============================================================================
// SUPPLIER HANDLERS
// =============================================================================

// ListSuppliers returns every supplier.
func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Suppliers.Suppliers())
}

// GetSupplier returns a single supplier.
func (h *Handler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id := supplier.SupplierID(chi.URLParam(r, "id"))

	s, ok := h.Suppliers.Supplier(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Supplier not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// CreateSupplier registers a supplier.
func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Supplier name is required", nil)
		return
	}

	s := h.Suppliers.AddSupplier(supplier.NewSupplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Rating:        req.Rating,
		Status:        req.Status,
		PaymentTerms:  req.PaymentTerms,
		TaxID:         req.TaxID,
	})
	if !h.persistSuppliers(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// UpdateSupplier patches a supplier.
func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id := supplier.SupplierID(chi.URLParam(r, "id"))

	var req UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.Suppliers.UpdateSupplier(id, supplier.SupplierUpdate{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Rating:        req.Rating,
		Status:        req.Status,
		PaymentTerms:  req.PaymentTerms,
		TaxID:         req.TaxID,
	})
	if err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to update supplier", err)
		return
	}
	if !h.persistSuppliers(w, r) {
		return
	}
	s, _ := h.Suppliers.Supplier(id)
	writeJSON(w, http.StatusOK, s)
}

// DeleteSupplier removes a supplier.
func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id := supplier.SupplierID(chi.URLParam(r, "id"))

	if err := h.Suppliers.RemoveSupplier(id); err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to delete supplier", err)
		return
	}
	if !h.persistSuppliers(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSupplierRating returns the supplier's effective rating.
func (h *Handler) GetSupplierRating(w http.ResponseWriter, r *http.Request) {
	id := supplier.SupplierID(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, RatingDTO{Supplier: id, Rating: h.Suppliers.SupplierRating(id)})
}

// ListSupplierOrders returns a supplier's purchase orders, newest first.
func (h *Handler) ListSupplierOrders(w http.ResponseWriter, r *http.Request) {
	id := supplier.SupplierID(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.Suppliers.SupplierOrders(id))
}

// ListPurchaseOrders returns all purchase orders, or a filtered view with
// ?filter=unpaid or ?filter=pending-deliveries.
func (h *Handler) ListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("filter") {
	case "unpaid":
		writeJSON(w, http.StatusOK, h.Suppliers.UnpaidOrders())
	case "pending-deliveries":
		writeJSON(w, http.StatusOK, h.Suppliers.PendingDeliveries())
	default:
		writeJSON(w, http.StatusOK, h.Suppliers.Orders())
	}
}

// CreatePurchaseOrder places a purchase order.
func (h *Handler) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	po, err := h.Suppliers.CreateOrder(supplier.NewOrder{
		Supplier:         req.Supplier,
		OrderDate:        req.OrderDate,
		ExpectedDelivery: req.ExpectedDelivery,
		Status:           req.Status,
		Items:            req.Items,
		Notes:            req.Notes,
		PaymentStatus:    req.PaymentStatus,
	})
	if err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to create purchase order", err)
		return
	}
	if !h.persistSuppliers(w, r) {
		return
	}
	writeJSON(w, http.StatusCreated, po)
}

// UpdatePurchaseOrder patches a purchase order.
func (h *Handler) UpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := supplier.OrderID(chi.URLParam(r, "id"))

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.Suppliers.UpdateOrder(id, supplier.OrderUpdate{
		ExpectedDelivery: req.ExpectedDelivery,
		Status:           req.Status,
		Notes:            req.Notes,
		PaymentStatus:    req.PaymentStatus,
	})
	if err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to update purchase order", err)
		return
	}
	if !h.persistSuppliers(w, r) {
		return
	}
	po, _ := h.Suppliers.Order(id)
	writeJSON(w, http.StatusOK, po)
}

// DeletePurchaseOrder removes a purchase order.
func (h *Handler) DeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := supplier.OrderID(chi.URLParam(r, "id"))

	if err := h.Suppliers.DeleteOrder(id); err != nil {
		writeError(w, statusForSupplementErr(err), "Failed to delete purchase order", err)
		return
	}
	if !h.persistSuppliers(w, r) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
