/*
Package inventory tracks stock items and their movements across store
locations.

KEY CONCEPTS:
  - Item: a stocked product with cost/selling prices and reorder levels
  - Movement: stock in, stock out, or a transfer between locations
  - Stock: derived by replaying movements; Item.Quantity is the running
    on-hand total maintained as movements are recorded

Quantities are decimal: a fruit store sells by weight as well as by count.
*/
package inventory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrItemNotFound is returned when a referenced item doesn't exist.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrMovementNotFound is returned when a referenced movement doesn't exist.
	ErrMovementNotFound = errors.New("inventory movement not found")

	// ErrBadQuantity is returned when a movement quantity is not positive.
	ErrBadQuantity = errors.New("movement quantity must be positive")
)

// =============================================================================
// TYPES
// =============================================================================

type ItemID string
type MovementID string

type MovementType string

const (
	MovementIn       MovementType = "in"
	MovementOut      MovementType = "out"
	MovementTransfer MovementType = "transfer"
)

// CostingMethod selects how outgoing stock is valued in reports.
type CostingMethod string

const (
	CostingFIFO     CostingMethod = "FIFO"
	CostingLIFO     CostingMethod = "LIFO"
	CostingWeighted CostingMethod = "weighted-average"
)

type Item struct {
	ID           ItemID          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Barcode      string          `json:"barcode,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Category     string          `json:"category"`
	Location     string          `json:"location"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	MaximumStock decimal.Decimal `json:"maximumStock"`
	ReorderPoint decimal.Decimal `json:"reorderPoint"`
	Supplier     string          `json:"supplier,omitempty"`
	LastRestocked *time.Time     `json:"lastRestocked,omitempty"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
}

type Movement struct {
	ID           MovementID      `json:"id"`
	ItemID       ItemID          `json:"itemId"`
	Type         MovementType    `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Date         time.Time       `json:"date"`
	Reference    string          `json:"reference,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	FromLocation string          `json:"fromLocation,omitempty"`
	ToLocation   string          `json:"toLocation,omitempty"`
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	mu  sync.Mutex
	now func() time.Time

	items     map[ItemID]*Item
	itemOrder []ItemID
	movements []Movement
	locations []string
	costing   CostingMethod
}

func NewLedger() *Ledger {
	return &Ledger{
		now:       time.Now,
		items:     make(map[ItemID]*Item),
		locations: []string{"Main Warehouse", "Store Front"},
		costing:   CostingFIFO,
	}
}

// SetClock replaces the time source. Tests use this to pin "now".
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// =============================================================================
// ITEMS
// =============================================================================

// NewItem carries the caller-supplied fields of an item.
type NewItem struct {
	Name         string
	SKU          string
	Barcode      string
	Quantity     decimal.Decimal
	Unit         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Category     string
	Location     string
	MinimumStock decimal.Decimal
	MaximumStock decimal.Decimal
	ReorderPoint decimal.Decimal
	Supplier     string
	ExpiryDate   *time.Time
}

func (l *Ledger) AddItem(in NewItem) Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	item := &Item{
		ID:           ItemID(uuid.NewString()),
		Name:         in.Name,
		SKU:          in.SKU,
		Barcode:      in.Barcode,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		Category:     in.Category,
		Location:     in.Location,
		MinimumStock: in.MinimumStock,
		MaximumStock: in.MaximumStock,
		ReorderPoint: in.ReorderPoint,
		Supplier:     in.Supplier,
		ExpiryDate:   in.ExpiryDate,
	}
	l.items[item.ID] = item
	l.itemOrder = append(l.itemOrder, item.ID)
	return *item
}

// ItemUpdate merges partial fields; nil fields are untouched.
type ItemUpdate struct {
	Name         *string
	SKU          *string
	Barcode      *string
	Unit         *string
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
	Category     *string
	Location     *string
	MinimumStock *decimal.Decimal
	MaximumStock *decimal.Decimal
	ReorderPoint *decimal.Decimal
	Supplier     *string
}

func (l *Ledger) UpdateItem(id ItemID, patch ItemUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[id]
	if !ok {
		return ErrItemNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.SKU != nil {
		item.SKU = *patch.SKU
	}
	if patch.Barcode != nil {
		item.Barcode = *patch.Barcode
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.CostPrice != nil {
		item.CostPrice = *patch.CostPrice
	}
	if patch.SellingPrice != nil {
		item.SellingPrice = *patch.SellingPrice
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	if patch.MinimumStock != nil {
		item.MinimumStock = *patch.MinimumStock
	}
	if patch.MaximumStock != nil {
		item.MaximumStock = *patch.MaximumStock
	}
	if patch.ReorderPoint != nil {
		item.ReorderPoint = *patch.ReorderPoint
	}
	if patch.Supplier != nil {
		item.Supplier = *patch.Supplier
	}
	return nil
}

func (l *Ledger) RemoveItem(id ItemID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(l.items, id)
	for i, v := range l.itemOrder {
		if v == id {
			l.itemOrder = append(l.itemOrder[:i], l.itemOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (l *Ledger) Item(id ItemID) (Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[id]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

func (l *Ledger) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Item, 0, len(l.itemOrder))
	for _, id := range l.itemOrder {
		out = append(out, *l.items[id])
	}
	return out
}

// LowStockItems returns items at or below their reorder point.
func (l *Ledger) LowStockItems() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Item
	for _, id := range l.itemOrder {
		item := l.items[id]
		if item.Quantity.LessThanOrEqual(item.ReorderPoint) {
			out = append(out, *item)
		}
	}
	return out
}

// =============================================================================
// MOVEMENTS
// =============================================================================

// NewMovement carries the caller-supplied fields of a stock movement.
type NewMovement struct {
	ItemID       ItemID
	Type         MovementType
	Quantity     decimal.Decimal
	Reference    string
	Notes        string
	FromLocation string
	ToLocation   string
}

// RecordMovement appends a movement and applies its quantity effect to the
// item: in adds, out subtracts, transfer moves between locations with no
// net change. Stock-in also refreshes the item's last-restocked stamp.
func (l *Ledger) RecordMovement(in NewMovement) (Movement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[in.ItemID]
	if !ok {
		return Movement{}, ErrItemNotFound
	}
	if !in.Quantity.IsPositive() {
		return Movement{}, ErrBadQuantity
	}

	now := l.now()
	m := Movement{
		ID:           MovementID(uuid.NewString()),
		ItemID:       in.ItemID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		Date:         now,
		Reference:    in.Reference,
		Notes:        in.Notes,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
	}
	l.movements = append(l.movements, m)

	switch in.Type {
	case MovementIn:
		item.Quantity = item.Quantity.Add(in.Quantity)
		item.LastRestocked = &now
	case MovementOut:
		item.Quantity = item.Quantity.Sub(in.Quantity)
	case MovementTransfer:
		if in.ToLocation != "" {
			item.Location = in.ToLocation
		}
	}
	return m, nil
}

func (l *Ledger) RemoveMovement(id MovementID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.movements {
		if l.movements[i].ID == id {
			l.movements = append(l.movements[:i], l.movements[i+1:]...)
			return nil
		}
	}
	return ErrMovementNotFound
}

// Stock derives an item's level by replaying its movements, optionally
// only those received into one location.
func (l *Ledger) Stock(id ItemID, location string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, m := range l.movements {
		if m.ItemID != id {
			continue
		}
		if location != "" && m.ToLocation != location {
			continue
		}
		switch m.Type {
		case MovementIn:
			total = total.Add(m.Quantity)
		case MovementOut:
			total = total.Sub(m.Quantity)
		}
	}
	return total
}

// ItemMovements returns an item's movement history, newest first.
func (l *Ledger) ItemMovements(id ItemID) []Movement {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Movement
	for _, m := range l.movements {
		if m.ItemID == id {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// =============================================================================
// LOCATIONS AND COSTING
// =============================================================================

func (l *Ledger) AddLocation(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, loc := range l.locations {
		if loc == name {
			return
		}
	}
	l.locations = append(l.locations, name)
}

func (l *Ledger) RemoveLocation(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, loc := range l.locations {
		if loc == name {
			l.locations = append(l.locations[:i], l.locations[i+1:]...)
			return
		}
	}
}

func (l *Ledger) Locations() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.locations...)
}

func (l *Ledger) SetCostingMethod(m CostingMethod) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.costing = m
}

func (l *Ledger) CostingMethod() CostingMethod {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.costing
}
