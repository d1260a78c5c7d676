package supplier

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func newTestLedger() *Ledger {
	l := NewLedger()
	l.SetClock(func() time.Time { return today })
	return l
}

func TestCreateOrder_ComputesLineAndOrderTotals(t *testing.T) {
	// GIVEN a supplier and an order with two lines
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co", Rating: 4})

	// WHEN creating the order
	po, err := l.CreateOrder(NewOrder{
		Supplier:  s.ID,
		OrderDate: today,
		Items: []OrderLine{
			{ItemID: "mango", Quantity: 10, UnitPrice: decimal.NewFromInt(2)},
			{ItemID: "papaya", Quantity: 3, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	// THEN totals are derived from quantity x unit price
	assert.True(t, decimal.NewFromInt(20).Equal(po.Items[0].Total))
	assert.True(t, decimal.NewFromInt(15).Equal(po.Items[1].Total))
	assert.True(t, decimal.NewFromInt(35).Equal(po.Total))
	assert.Equal(t, OrderDraft, po.Status)
	assert.Equal(t, PaymentUnpaid, po.PaymentStatus)
}

func TestCreateOrder_UnknownSupplier(t *testing.T) {
	l := newTestLedger()

	_, err := l.CreateOrder(NewOrder{Supplier: "missing"})

	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSupplierOrders_NewestFirst(t *testing.T) {
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co"})
	other := l.AddSupplier(NewSupplier{Name: "Valley Produce"})

	old, err := l.CreateOrder(NewOrder{Supplier: s.ID, OrderDate: today.AddDate(0, 0, -5)})
	require.NoError(t, err)
	recent, err := l.CreateOrder(NewOrder{Supplier: s.ID, OrderDate: today})
	require.NoError(t, err)
	_, err = l.CreateOrder(NewOrder{Supplier: other.ID, OrderDate: today})
	require.NoError(t, err)

	orders := l.SupplierOrders(s.ID)

	require.Len(t, orders, 2)
	assert.Equal(t, recent.ID, orders[0].ID)
	assert.Equal(t, old.ID, orders[1].ID)
}

func TestUnpaidOrders_IncludesPartials(t *testing.T) {
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co"})

	unpaid, err := l.CreateOrder(NewOrder{Supplier: s.ID, OrderDate: today})
	require.NoError(t, err)
	partial, err := l.CreateOrder(NewOrder{Supplier: s.ID, OrderDate: today, PaymentStatus: PaymentPartial})
	require.NoError(t, err)
	_, err = l.CreateOrder(NewOrder{Supplier: s.ID, OrderDate: today, PaymentStatus: PaymentPaid})
	require.NoError(t, err)

	got := l.UnpaidOrders()

	require.Len(t, got, 2)
	assert.Equal(t, unpaid.ID, got[0].ID)
	assert.Equal(t, partial.ID, got[1].ID)
}

func TestPendingDeliveries_ApprovedAndFutureOnly(t *testing.T) {
	// GIVEN approved orders due in the future and in the past, plus a draft
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co"})

	future, err := l.CreateOrder(NewOrder{
		Supplier: s.ID, OrderDate: today,
		ExpectedDelivery: today.AddDate(0, 0, 3), Status: OrderApproved,
	})
	require.NoError(t, err)
	_, err = l.CreateOrder(NewOrder{
		Supplier: s.ID, OrderDate: today.AddDate(0, 0, -10),
		ExpectedDelivery: today.AddDate(0, 0, -7), Status: OrderApproved,
	})
	require.NoError(t, err)
	_, err = l.CreateOrder(NewOrder{
		Supplier: s.ID, OrderDate: today,
		ExpectedDelivery: today.AddDate(0, 0, 3), Status: OrderDraft,
	})
	require.NoError(t, err)

	// WHEN listing pending deliveries
	got := l.PendingDeliveries()

	// THEN only the approved future-dated order shows up
	require.Len(t, got, 1)
	assert.Equal(t, future.ID, got[0].ID)
}

func TestSupplierRating_StoredUntilOrdersExist(t *testing.T) {
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co", Rating: 4.5})

	assert.Equal(t, 4.5, l.SupplierRating(s.ID))
	assert.Equal(t, 0.0, l.SupplierRating("missing"))
}

func TestSupplierRating_OnTimeDeliveryScore(t *testing.T) {
	// GIVEN 2 delivered-on-time orders out of 4 total
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co", Rating: 4.5})

	add := func(status OrderStatus, orderDay, deliveryDay int) {
		t.Helper()
		_, err := l.CreateOrder(NewOrder{
			Supplier:         s.ID,
			OrderDate:        today.AddDate(0, 0, orderDay),
			ExpectedDelivery: today.AddDate(0, 0, deliveryDay),
			Status:           status,
		})
		require.NoError(t, err)
	}

	add(OrderDelivered, -10, -8) // on time
	add(OrderDelivered, -6, -4)  // on time
	add(OrderDelivered, -3, -5)  // delivery slipped before order date
	add(OrderPending, 0, 2)      // not delivered

	// THEN the stored rating is replaced by 2/4 * 5
	assert.InDelta(t, 2.5, l.SupplierRating(s.ID), 1e-9)
}

func TestUpdateSupplier_PartialPatch(t *testing.T) {
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co", Phone: "555-0100"})

	phone := "555-0199"
	status := SupplierInactive
	require.NoError(t, l.UpdateSupplier(s.ID, SupplierUpdate{Phone: &phone, Status: &status}))

	got, ok := l.Supplier(s.ID)
	require.True(t, ok)
	assert.Equal(t, "Tropic Fruits Co", got.Name)
	assert.Equal(t, "555-0199", got.Phone)
	assert.Equal(t, SupplierInactive, got.Status)
}

func TestUpdateOrder_StatusAndPayment(t *testing.T) {
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co"})
	po, err := l.CreateOrder(NewOrder{Supplier: s.ID, OrderDate: today})
	require.NoError(t, err)

	status := OrderApproved
	payment := PaymentPaid
	require.NoError(t, l.UpdateOrder(po.ID, OrderUpdate{Status: &status, PaymentStatus: &payment}))

	got, ok := l.Order(po.ID)
	require.True(t, ok)
	assert.Equal(t, OrderApproved, got.Status)
	assert.Equal(t, PaymentPaid, got.PaymentStatus)
	assert.Empty(t, l.UnpaidOrders())

	assert.ErrorIs(t, l.UpdateOrder("missing", OrderUpdate{}), ErrOrderNotFound)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	l := newTestLedger()
	s := l.AddSupplier(NewSupplier{Name: "Tropic Fruits Co", Rating: 4, PaymentTerms: "net 30"})
	_, err := l.CreateOrder(NewOrder{
		Supplier: s.ID, OrderDate: today,
		Items: []OrderLine{{ItemID: "mango", Quantity: 10, UnitPrice: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)

	data, err := l.MarshalSnapshot()
	require.NoError(t, err)

	restored := NewLedger()
	require.NoError(t, restored.RestoreSnapshot(data))

	again, err := restored.MarshalSnapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
	assert.Len(t, restored.Suppliers(), 1)
	assert.Len(t, restored.Orders(), 1)
}
