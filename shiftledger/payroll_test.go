package shiftledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruitstand/backoffice/shiftledger"
)

// =============================================================================
// WAGE CONTRIBUTIONS
// =============================================================================

func TestReconciliation_HourlyWage(t *testing.T) {
	// hourly, wage=10, 120 minutes worked -> 20.0
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(120 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	rec, out := ledger.EndShiftWithSales(shift.ID, nil)
	require.Equal(t, shiftledger.Applied, out)
	assert.True(t, rec.StaffWages.Equal(decimal.NewFromInt(20)), "got %s", rec.StaffWages)
}

func TestReconciliation_DailyWageIsFlat(t *testing.T) {
	// daily, wage=50, any minutes worked -> 50.0
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := ledger.AddEmployee(shiftledger.NewEmployee{
		Name:       "Daily",
		Wage:       decimal.NewFromInt(50),
		WageType:   shiftledger.WageDaily,
		HomeBranch: branch.ID,
		Preferences: []shiftledger.Preference{
			{Branch: branch.ID, Kind: shiftledger.KindMorning},
		},
	})
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(7 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	rec, out := ledger.EndShiftWithSales(shift.ID, nil)
	require.Equal(t, shiftledger.Applied, out)
	assert.True(t, rec.StaffWages.Equal(decimal.NewFromInt(50)), "got %s", rec.StaffWages)
}

func TestReconciliation_MonthlyWageApportioned(t *testing.T) {
	// monthly, wage=3000 -> 3000/30 = 100.0
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := ledger.AddEmployee(shiftledger.NewEmployee{
		Name:       "Salaried",
		Wage:       decimal.NewFromInt(3000),
		WageType:   shiftledger.WageMonthly,
		HomeBranch: branch.ID,
		Preferences: []shiftledger.Preference{
			{Branch: branch.ID, Kind: shiftledger.KindMorning},
		},
	})
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(8 * time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	rec, out := ledger.EndShiftWithSales(shift.ID, nil)
	require.Equal(t, shiftledger.Applied, out)
	assert.True(t, rec.StaffWages.Equal(decimal.NewFromInt(100)), "got %s", rec.StaffWages)
}

// =============================================================================
// FULL RECONCILIATION
// =============================================================================

func TestEndShiftWithSales_Arithmetic(t *testing.T) {
	// GIVEN: one line {qty:10, price:2.5, cost:1.0}, one hourly employee
	// (wage=10) who worked 60 minutes
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	lines := []shiftledger.SalesLine{
		{ProductID: "A", Quantity: 10, Price: decimal.NewFromFloat(2.5), Cost: decimal.NewFromFloat(1.0)},
	}

	// WHEN
	rec, out := ledger.EndShiftWithSales(shift.ID, lines)
	require.Equal(t, shiftledger.Applied, out)

	// THEN: sales=25, cost=10, wages=10, profit=5
	assert.True(t, rec.TotalSales.Equal(decimal.NewFromInt(25)), "got %s", rec.TotalSales)
	assert.True(t, rec.TotalCost.Equal(decimal.NewFromInt(10)), "got %s", rec.TotalCost)
	assert.True(t, rec.StaffWages.Equal(decimal.NewFromInt(10)), "got %s", rec.StaffWages)
	assert.True(t, rec.Profit.Equal(decimal.NewFromInt(5)), "got %s", rec.Profit)
}

func TestEndShiftWithSales_FinalizesShiftAndRecordsFigures(t *testing.T) {
	ledger, _ := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	rec, out := ledger.EndShiftWithSales(shift.ID, []shiftledger.SalesLine{
		{ProductID: "A", Quantity: 2, Price: decimal.NewFromInt(3), Cost: decimal.NewFromInt(1)},
	})
	require.Equal(t, shiftledger.Applied, out)

	got, _ := ledger.Shift(shift.ID)
	assert.Equal(t, shiftledger.ShiftCompleted, got.Status)
	require.NotNil(t, got.Reconciliation, "figures are recorded on the shift")
	assert.True(t, got.Reconciliation.Profit.Equal(rec.Profit))

	_, ok := ledger.CurrentShift(branch.ID)
	assert.False(t, ok)
}

func TestEndShiftWithSales_UnknownShift(t *testing.T) {
	ledger, _ := newTestLedger(t)

	rec, out := ledger.EndShiftWithSales("ghost", nil)
	assert.Equal(t, shiftledger.NotFound, out)
	assert.True(t, rec.TotalSales.IsZero())
	assert.True(t, rec.Profit.IsZero())
}

func TestEndShiftWithSales_UnknownWageTypeContributesZero(t *testing.T) {
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := ledger.AddEmployee(shiftledger.NewEmployee{
		Name:       "Mystery",
		Wage:       decimal.NewFromInt(99),
		WageType:   shiftledger.WageType("piecework"),
		HomeBranch: branch.ID,
		Preferences: []shiftledger.Preference{
			{Branch: branch.ID, Kind: shiftledger.KindMorning},
		},
	})
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	rec, out := ledger.EndShiftWithSales(shift.ID, nil)
	require.Equal(t, shiftledger.Applied, out)
	assert.True(t, rec.StaffWages.IsZero())
}

func TestEndShiftWithSales_MultipleStaff(t *testing.T) {
	// Two hourly staff on the same shift both contribute.
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	first := addHourlyEmployee(t, ledger, branch.ID, 10)
	second := addHourlyEmployee(t, ledger, branch.ID, 20)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(first.ID, branch.ID))
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(second.ID, branch.ID))
	clock.advance(time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(first.ID))
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(second.ID))

	rec, out := ledger.EndShiftWithSales(shift.ID, nil)
	require.Equal(t, shiftledger.Applied, out)
	assert.True(t, rec.StaffWages.Equal(decimal.NewFromInt(30)), "10 + 20, got %s", rec.StaffWages)
	assert.True(t, rec.Profit.Equal(decimal.NewFromInt(-30)))
}
