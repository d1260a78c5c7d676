/*
Package supplier tracks the vendors the store buys from and the purchase
orders placed against them. The rating query folds delivery punctuality
back into a supplier's score once orders exist.
*/
package supplier

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrSupplierNotFound is returned when a referenced supplier doesn't exist.
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrOrderNotFound is returned when a referenced purchase order doesn't exist.
	ErrOrderNotFound = errors.New("purchase order not found")
)

// =============================================================================
// TYPES
// =============================================================================

type SupplierID string
type OrderID string

type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "active"
	SupplierInactive SupplierStatus = "inactive"
)

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type Supplier struct {
	ID            SupplierID     `json:"id"`
	Name          string         `json:"name"`
	ContactPerson string         `json:"contactPerson"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	Rating        float64        `json:"rating"`
	Status        SupplierStatus `json:"status"`
	PaymentTerms  string         `json:"paymentTerms"`
	TaxID         string         `json:"taxId"`
}

type OrderLine struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"itemId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type PurchaseOrder struct {
	ID               OrderID         `json:"id"`
	Supplier         SupplierID      `json:"supplierId"`
	OrderDate        time.Time       `json:"orderDate"`
	ExpectedDelivery time.Time       `json:"expectedDelivery"`
	Status           OrderStatus     `json:"status"`
	Items            []OrderLine     `json:"items"`
	Total            decimal.Decimal `json:"total"`
	Notes            string          `json:"notes"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	mu  sync.Mutex
	now func() time.Time

	suppliers     map[SupplierID]*Supplier
	supplierOrder []SupplierID
	orders        []PurchaseOrder
}

func NewLedger() *Ledger {
	return &Ledger{
		now:       time.Now,
		suppliers: make(map[SupplierID]*Supplier),
	}
}

// SetClock overrides the wall clock. Tests use it.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// =============================================================================
// SUPPLIERS
// =============================================================================

// NewSupplier carries the caller-supplied fields of a supplier.
type NewSupplier struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Rating        float64
	Status        SupplierStatus
	PaymentTerms  string
	TaxID         string
}

func (l *Ledger) AddSupplier(in NewSupplier) Supplier {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := in.Status
	if status == "" {
		status = SupplierActive
	}
	s := &Supplier{
		ID:            SupplierID(uuid.NewString()),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Rating:        in.Rating,
		Status:        status,
		PaymentTerms:  in.PaymentTerms,
		TaxID:         in.TaxID,
	}
	l.suppliers[s.ID] = s
	l.supplierOrder = append(l.supplierOrder, s.ID)
	return *s
}

// SupplierUpdate patches a supplier; nil fields are left untouched.
type SupplierUpdate struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Rating        *float64
	Status        *SupplierStatus
	PaymentTerms  *string
	TaxID         *string
}

func (l *Ledger) UpdateSupplier(id SupplierID, in SupplierUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.suppliers[id]
	if !ok {
		return ErrSupplierNotFound
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.ContactPerson != nil {
		s.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Rating != nil {
		s.Rating = *in.Rating
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	if in.PaymentTerms != nil {
		s.PaymentTerms = *in.PaymentTerms
	}
	if in.TaxID != nil {
		s.TaxID = *in.TaxID
	}
	return nil
}

func (l *Ledger) RemoveSupplier(id SupplierID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.suppliers[id]; !ok {
		return ErrSupplierNotFound
	}
	delete(l.suppliers, id)
	for i, v := range l.supplierOrder {
		if v == id {
			l.supplierOrder = append(l.supplierOrder[:i], l.supplierOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (l *Ledger) Supplier(id SupplierID) (Supplier, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.suppliers[id]
	if !ok {
		return Supplier{}, false
	}
	return *s, true
}

func (l *Ledger) Suppliers() []Supplier {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Supplier, 0, len(l.supplierOrder))
	for _, id := range l.supplierOrder {
		out = append(out, *l.suppliers[id])
	}
	return out
}

// =============================================================================
// PURCHASE ORDERS
// =============================================================================

// NewOrder carries the caller-supplied fields of a purchase order.
// Line totals and the order total are computed, not taken from the caller.
type NewOrder struct {
	Supplier         SupplierID
	OrderDate        time.Time
	ExpectedDelivery time.Time
	Status           OrderStatus
	Items            []OrderLine
	Notes            string
	PaymentStatus    PaymentStatus
}

func (l *Ledger) CreateOrder(in NewOrder) (PurchaseOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.suppliers[in.Supplier]; !ok {
		return PurchaseOrder{}, ErrSupplierNotFound
	}

	status := in.Status
	if status == "" {
		status = OrderDraft
	}
	payment := in.PaymentStatus
	if payment == "" {
		payment = PaymentUnpaid
	}

	total := decimal.Zero
	items := make([]OrderLine, 0, len(in.Items))
	for _, line := range in.Items {
		line.ID = uuid.NewString()
		line.Total = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(line.Total)
		items = append(items, line)
	}

	po := PurchaseOrder{
		ID:               OrderID(uuid.NewString()),
		Supplier:         in.Supplier,
		OrderDate:        in.OrderDate,
		ExpectedDelivery: in.ExpectedDelivery,
		Status:           status,
		Items:            items,
		Total:            total,
		Notes:            in.Notes,
		PaymentStatus:    payment,
	}
	l.orders = append(l.orders, po)
	return po, nil
}

// OrderUpdate patches a purchase order; nil fields are left untouched.
type OrderUpdate struct {
	ExpectedDelivery *time.Time
	Status           *OrderStatus
	Notes            *string
	PaymentStatus    *PaymentStatus
}

func (l *Ledger) UpdateOrder(id OrderID, in OrderUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.orders {
		if l.orders[i].ID != id {
			continue
		}
		if in.ExpectedDelivery != nil {
			l.orders[i].ExpectedDelivery = *in.ExpectedDelivery
		}
		if in.Status != nil {
			l.orders[i].Status = *in.Status
		}
		if in.Notes != nil {
			l.orders[i].Notes = *in.Notes
		}
		if in.PaymentStatus != nil {
			l.orders[i].PaymentStatus = *in.PaymentStatus
		}
		return nil
	}
	return ErrOrderNotFound
}

func (l *Ledger) DeleteOrder(id OrderID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.orders {
		if l.orders[i].ID == id {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return nil
		}
	}
	return ErrOrderNotFound
}

func (l *Ledger) Order(id OrderID) (PurchaseOrder, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, po := range l.orders {
		if po.ID == id {
			return po, true
		}
	}
	return PurchaseOrder{}, false
}

func (l *Ledger) Orders() []PurchaseOrder {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]PurchaseOrder(nil), l.orders...)
}

// =============================================================================
// QUERIES
// =============================================================================

// SupplierOrders returns a supplier's purchase orders, newest first.
func (l *Ledger) SupplierOrders(id SupplierID) []PurchaseOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []PurchaseOrder
	for _, po := range l.orders {
		if po.Supplier == id {
			out = append(out, po)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out
}

// UnpaidOrders returns every order not fully paid, partials included.
func (l *Ledger) UnpaidOrders() []PurchaseOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []PurchaseOrder
	for _, po := range l.orders {
		if po.PaymentStatus != PaymentPaid {
			out = append(out, po)
		}
	}
	return out
}

// PendingDeliveries returns approved orders whose expected delivery is
// still in the future.
func (l *Ledger) PendingDeliveries() []PurchaseOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var out []PurchaseOrder
	for _, po := range l.orders {
		if po.Status == OrderApproved && po.ExpectedDelivery.After(now) {
			out = append(out, po)
		}
	}
	return out
}

// SupplierRating returns the stored rating while the supplier has no
// orders, then switches to an on-time-delivery score out of 5: the share
// of the supplier's orders delivered without slipping past the order date.
func (l *Ledger) SupplierRating(id SupplierID) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.suppliers[id]
	if !ok {
		return 0
	}

	var total, onTime int
	for _, po := range l.orders {
		if po.Supplier != id {
			continue
		}
		total++
		if po.Status == OrderDelivered && !po.ExpectedDelivery.Before(po.OrderDate) {
			onTime++
		}
	}
	if total == 0 {
		return s.Rating
	}
	return float64(onTime) / float64(total) * 5
}
