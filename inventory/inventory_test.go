package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruitstand/backoffice/inventory"
)

var day = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*inventory.Ledger, *time.Time) {
	t.Helper()
	now := day
	ledger := inventory.NewLedger()
	ledger.SetClock(func() time.Time { return now })
	return ledger, &now
}

func addApples(t *testing.T, l *inventory.Ledger) inventory.Item {
	t.Helper()
	return l.AddItem(inventory.NewItem{
		Name:         "Apples",
		SKU:          "FRU-001",
		Quantity:     decimal.NewFromInt(20),
		Unit:         "kg",
		CostPrice:    decimal.NewFromFloat(0.8),
		SellingPrice: decimal.NewFromFloat(1.5),
		Category:     "fruit",
		Location:     "Store Front",
		ReorderPoint: decimal.NewFromInt(5),
	})
}

func TestRecordMovement_AdjustsQuantity(t *testing.T) {
	ledger, _ := newTestLedger(t)
	item := addApples(t, ledger)

	_, err := ledger.RecordMovement(inventory.NewMovement{
		ItemID:     item.ID,
		Type:       inventory.MovementIn,
		Quantity:   decimal.NewFromInt(10),
		ToLocation: "Store Front",
	})
	require.NoError(t, err)

	got, _ := ledger.Item(item.ID)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(30)), "20 + 10")
	require.NotNil(t, got.LastRestocked)
	assert.Equal(t, day, *got.LastRestocked)

	_, err = ledger.RecordMovement(inventory.NewMovement{
		ItemID:   item.ID,
		Type:     inventory.MovementOut,
		Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	got, _ = ledger.Item(item.ID)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(26)))
}

func TestRecordMovement_TransferKeepsQuantity(t *testing.T) {
	ledger, _ := newTestLedger(t)
	item := addApples(t, ledger)

	_, err := ledger.RecordMovement(inventory.NewMovement{
		ItemID:       item.ID,
		Type:         inventory.MovementTransfer,
		Quantity:     decimal.NewFromInt(5),
		FromLocation: "Store Front",
		ToLocation:   "Main Warehouse",
	})
	require.NoError(t, err)

	got, _ := ledger.Item(item.ID)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(20)), "transfers have no net effect")
	assert.Equal(t, "Main Warehouse", got.Location)
}

func TestRecordMovement_Validation(t *testing.T) {
	ledger, _ := newTestLedger(t)
	item := addApples(t, ledger)

	_, err := ledger.RecordMovement(inventory.NewMovement{
		ItemID: "ghost", Type: inventory.MovementIn, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)

	_, err = ledger.RecordMovement(inventory.NewMovement{
		ItemID: item.ID, Type: inventory.MovementIn, Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, inventory.ErrBadQuantity)
}

func TestStock_ReplaysMovementsPerLocation(t *testing.T) {
	ledger, _ := newTestLedger(t)
	item := addApples(t, ledger)

	mustMove := func(m inventory.NewMovement) {
		t.Helper()
		_, err := ledger.RecordMovement(m)
		require.NoError(t, err)
	}
	mustMove(inventory.NewMovement{ItemID: item.ID, Type: inventory.MovementIn, Quantity: decimal.NewFromInt(10), ToLocation: "Store Front"})
	mustMove(inventory.NewMovement{ItemID: item.ID, Type: inventory.MovementIn, Quantity: decimal.NewFromInt(7), ToLocation: "Main Warehouse"})
	mustMove(inventory.NewMovement{ItemID: item.ID, Type: inventory.MovementOut, Quantity: decimal.NewFromInt(3), ToLocation: "Store Front"})

	assert.True(t, ledger.Stock(item.ID, "").Equal(decimal.NewFromInt(14)), "10 + 7 - 3")
	assert.True(t, ledger.Stock(item.ID, "Store Front").Equal(decimal.NewFromInt(7)))
	assert.True(t, ledger.Stock(item.ID, "Main Warehouse").Equal(decimal.NewFromInt(7)))
}

func TestLowStockItems(t *testing.T) {
	ledger, _ := newTestLedger(t)
	item := addApples(t, ledger)

	assert.Empty(t, ledger.LowStockItems())

	_, err := ledger.RecordMovement(inventory.NewMovement{
		ItemID: item.ID, Type: inventory.MovementOut, Quantity: decimal.NewFromInt(16),
	})
	require.NoError(t, err)

	low := ledger.LowStockItems()
	require.Len(t, low, 1)
	assert.Equal(t, item.ID, low[0].ID)
	assert.True(t, low[0].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestItemMovements_NewestFirst(t *testing.T) {
	ledger, now := newTestLedger(t)
	item := addApples(t, ledger)

	_, err := ledger.RecordMovement(inventory.NewMovement{ItemID: item.ID, Type: inventory.MovementIn, Quantity: decimal.NewFromInt(1), Reference: "first"})
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	_, err = ledger.RecordMovement(inventory.NewMovement{ItemID: item.ID, Type: inventory.MovementIn, Quantity: decimal.NewFromInt(2), Reference: "second"})
	require.NoError(t, err)

	history := ledger.ItemMovements(item.ID)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Reference)
	assert.Equal(t, "first", history[1].Reference)
}

func TestInventorySnapshot_RoundTrip(t *testing.T) {
	ledger, _ := newTestLedger(t)
	item := addApples(t, ledger)
	_, err := ledger.RecordMovement(inventory.NewMovement{
		ItemID: item.ID, Type: inventory.MovementIn, Quantity: decimal.NewFromInt(5), ToLocation: "Store Front",
	})
	require.NoError(t, err)
	ledger.AddLocation("Cold Storage")
	ledger.SetCostingMethod(inventory.CostingWeighted)

	data, err := ledger.MarshalSnapshot()
	require.NoError(t, err)

	restored := inventory.NewLedger()
	require.NoError(t, restored.RestoreSnapshot(data))

	again, err := restored.MarshalSnapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
	assert.Equal(t, inventory.CostingWeighted, restored.CostingMethod())
	assert.Contains(t, restored.Locations(), "Cold Storage")
}
