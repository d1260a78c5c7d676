package shiftledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruitstand/backoffice/shiftledger"
	"github.com/fruitstand/backoffice/store"
)

// buildPopulatedLedger exercises every entity kind: branches, employees
// with preferences, a completed and a running shift, tasks, expenses,
// closed and open time logs, and per-branch current pointers.
func buildPopulatedLedger(t *testing.T) *shiftledger.Ledger {
	t.Helper()
	ledger, clock := newTestLedger(t)

	main := ledger.AddBranch("Main Branch")
	second := ledger.AddBranch("Secondary Branch")

	emp := addHourlyEmployee(t, ledger, main.ID, 10)
	other := ledger.AddEmployee(shiftledger.NewEmployee{
		Name:       "Second",
		Role:       "stocker",
		Email:      "second@example.com",
		Wage:       decimal.NewFromInt(50),
		WageType:   shiftledger.WageDaily,
		HomeBranch: second.ID,
		Preferences: []shiftledger.Preference{
			{Branch: second.ID, Kind: shiftledger.KindNight},
		},
	})

	done, err := ledger.StartShift(main.ID)
	require.NoError(t, err)
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, main.ID))
	clock.advance(time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.SetBreak(emp.ID, true))
	clock.advance(15 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.SetBreak(emp.ID, false))
	_, out := ledger.AddTask(done.ID, "Sweep floor", emp.ID)
	require.Equal(t, shiftledger.Applied, out)
	_, out = ledger.AddExpense(done.ID, main.ID, "Ice", "supplies", decimal.NewFromFloat(4.25))
	require.Equal(t, shiftledger.Applied, out)
	_, out = ledger.EndShiftWithSales(done.ID, []shiftledger.SalesLine{
		{ProductID: "apples", Quantity: 4, Price: decimal.NewFromFloat(1.5), Cost: decimal.NewFromFloat(0.5)},
	})
	require.Equal(t, shiftledger.Applied, out)

	// A still-running shift with an open log keeps the current map and an
	// open break in the snapshot.
	_, err = ledger.StartShift(main.ID)
	require.NoError(t, err)
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, main.ID))
	require.Equal(t, shiftledger.Applied, ledger.SetBreak(emp.ID, true))

	_ = other
	return ledger
}

func TestSnapshot_RoundTrip(t *testing.T) {
	// GIVEN: a ledger with every entity kind populated
	ledger := buildPopulatedLedger(t)

	// WHEN: marshal -> restore into a fresh ledger -> marshal again
	data, err := ledger.MarshalSnapshot()
	require.NoError(t, err)

	restored := shiftledger.NewLedger(shiftledger.DefaultPolicy())
	require.NoError(t, restored.RestoreSnapshot(data))

	again, err := restored.MarshalSnapshot()
	require.NoError(t, err)

	// THEN: the serialized state is identical
	assert.JSONEq(t, string(data), string(again))
}

func TestSnapshot_RestoredLedgerIsLive(t *testing.T) {
	// A restored ledger keeps working: the open log can still be closed.
	ledger := buildPopulatedLedger(t)
	snap := ledger.Snapshot()
	require.Len(t, snap.Current, 1)

	data, err := ledger.MarshalSnapshot()
	require.NoError(t, err)

	restored := shiftledger.NewLedger(shiftledger.DefaultPolicy())
	restored.SetClock(func() time.Time { return day.Add(24 * time.Hour) })
	require.NoError(t, restored.RestoreSnapshot(data))

	var emp shiftledger.Employee
	for _, e := range restored.Employees() {
		if e.Status == shiftledger.StatusOnBreak {
			emp = e
		}
	}
	require.NotEmpty(t, emp.ID, "the on-break employee survived the round trip")

	assert.Equal(t, shiftledger.Applied, restored.ClockOut(emp.ID))
	got, _ := restored.Employee(emp.ID)
	assert.Equal(t, shiftledger.StatusOffDuty, got.Status)
}

func TestSnapshot_ThroughStoreContract(t *testing.T) {
	// Save/Load through the persistence contract reproduces the state.
	ledger := buildPopulatedLedger(t)
	ctx := context.Background()
	st := store.NewMemory()

	data, err := ledger.MarshalSnapshot()
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, shiftledger.StoreKey, data))

	loaded, err := st.Load(ctx, shiftledger.StoreKey)
	require.NoError(t, err)

	restored := shiftledger.NewLedger(shiftledger.DefaultPolicy())
	require.NoError(t, restored.RestoreSnapshot(loaded))

	again, err := restored.MarshalSnapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestRestoreSnapshot_Malformed(t *testing.T) {
	ledger := shiftledger.NewLedger(shiftledger.DefaultPolicy())
	err := ledger.RestoreSnapshot([]byte("{not json"))
	assert.ErrorIs(t, err, shiftledger.ErrBadSnapshot)
}
