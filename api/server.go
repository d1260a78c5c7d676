/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the POS frontend

ROUTE GROUPS:
  /api/branches/*     Branch management and current-shift pointers
  /api/employees/*    Staff management and attendance stats
  /api/shifts/*       Shift lifecycle, roster, tasks, expenses
  /api/attendance/*   Clock-in, clock-out, breaks
  /api/inventory/*    Stock items, movements, locations
  /api/finance/*      Accounts, transactions, cash flow
  /api/suppliers/*    Suppliers, purchase orders

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Branch routes
		r.Route("/branches", func(r chi.Router) {
			r.Get("/", h.ListBranches)
			r.Post("/", h.CreateBranch)
			r.Put("/{id}", h.RenameBranch)
			r.Delete("/{id}", h.DeleteBranch)
			r.Get("/{id}/current-shift", h.GetCurrentShift)
			r.Get("/{id}/expenses", h.GetBranchExpenses)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
			r.Get("/{id}/shifts/{shiftId}/stats", h.GetEmployeeShiftStats)
		})

		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Post("/start", h.StartShift)
			r.Post("/current", h.SetCurrentShift)
			r.Get("/{id}", h.GetShift)
			r.Delete("/{id}", h.DeleteShift)
			r.Post("/{id}/end", h.EndShift)
			r.Post("/{id}/end-with-sales", h.EndShiftWithSales)
			r.Post("/{id}/sales", h.EndShiftWithSalesCSV)
			r.Post("/{id}/staff", h.AddStaffToShift)
			r.Delete("/{id}/staff/{employeeId}", h.RemoveStaffFromShift)
			r.Post("/{id}/tasks", h.CreateTask)
			r.Put("/{id}/tasks/{taskId}", h.UpdateTask)
			r.Delete("/{id}/tasks/{taskId}", h.DeleteTask)
			r.Post("/{id}/expenses", h.CreateExpense)
			r.Delete("/{id}/expenses/{expenseId}", h.DeleteExpense)
		})

		// Attendance routes
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock-in", h.ClockIn)
			r.Post("/clock-out", h.ClockOut)
			r.Post("/break", h.SetBreak)
		})

		// Inventory routes
		r.Route("/inventory", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", h.ListItems)
				r.Post("/", h.CreateItem)
				r.Get("/low-stock", h.ListLowStockItems)
				r.Get("/{id}", h.GetItem)
				r.Put("/{id}", h.UpdateItem)
				r.Delete("/{id}", h.DeleteItem)
				r.Get("/{id}/stock", h.GetItemStock)
				r.Get("/{id}/movements", h.ListItemMovements)
			})
			r.Post("/movements", h.RecordMovement)
			r.Get("/locations", h.ListLocations)
			r.Post("/locations", h.AddLocation)
			r.Post("/costing", h.SetCostingMethod)
		})

		// Finance routes
		r.Route("/finance", func(r chi.Router) {
			r.Get("/accounts", h.ListAccounts)
			r.Post("/accounts", h.CreateAccount)
			r.Get("/accounts/{id}/balance", h.GetAccountBalance)
			r.Get("/transactions", h.ListTransactions)
			r.Post("/transactions", h.CreateTransaction)
			r.Put("/transactions/{id}/status", h.SetTransactionStatus)
			r.Delete("/transactions/{id}", h.DeleteTransaction)
			r.Get("/cash-flow", h.GetCashFlow)
		})

		// Supplier routes
		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.ListSuppliers)
			r.Post("/", h.CreateSupplier)
			r.Get("/{id}", h.GetSupplier)
			r.Put("/{id}", h.UpdateSupplier)
			r.Delete("/{id}", h.DeleteSupplier)
			r.Get("/{id}/rating", h.GetSupplierRating)
			r.Get("/{id}/orders", h.ListSupplierOrders)
		})

		// Purchase order routes
		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", h.ListPurchaseOrders)
			r.Post("/", h.CreatePurchaseOrder)
			r.Put("/{id}", h.UpdatePurchaseOrder)
			r.Delete("/{id}", h.DeletePurchaseOrder)
		})
	})

	return r
}
