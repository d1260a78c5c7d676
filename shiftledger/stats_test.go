package shiftledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruitstand/backoffice/shiftledger"
)

// =============================================================================
// LATENESS
// =============================================================================

func TestStats_LateClockIn(t *testing.T) {
	// GIVEN: scheduledStart "10:00", clock-in at 10:15 the same day
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	clock.advance(75 * time.Minute) // 09:00 -> 10:15
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	stats := ledger.EmployeeShiftStats(emp.ID, shift.ID)
	assert.True(t, stats.IsLate)
	assert.Equal(t, 15, stats.LateMinutes)
}

func TestStats_OnTimeClockIn(t *testing.T) {
	// Clock-in at 09:00, an hour before the 10:00 scheduled start.
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(4 * time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	stats := ledger.EmployeeShiftStats(emp.ID, shift.ID)
	assert.False(t, stats.IsLate)
	assert.Equal(t, 0, stats.LateMinutes)
}

// =============================================================================
// OVERTIME
// =============================================================================

func TestStats_Overtime(t *testing.T) {
	// 800 minutes worked against a 720-minute expected shift -> 80 overtime.
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(800 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	stats := ledger.EmployeeShiftStats(emp.ID, shift.ID)
	assert.Equal(t, 800, stats.TotalWork)
	assert.Equal(t, 80, stats.Overtime)
}

func TestStats_NoOvertimeUnderThreshold(t *testing.T) {
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(700 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	stats := ledger.EmployeeShiftStats(emp.ID, shift.ID)
	assert.Equal(t, 0, stats.Overtime)
}

func TestStats_ConfigurableExpectedShiftMinutes(t *testing.T) {
	// The overtime threshold is policy, not a constant.
	policy := shiftledger.DefaultPolicy()
	policy.ExpectedShiftMinutes = 480
	clock := newTestClock(day)
	ledger := shiftledger.NewLedger(policy)
	ledger.SetClock(clock.now)

	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(500 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	stats := ledger.EmployeeShiftStats(emp.ID, shift.ID)
	assert.Equal(t, 20, stats.Overtime)
}

// =============================================================================
// AGGREGATION AND EDGE CASES
// =============================================================================

func TestStats_AggregatesMultipleLogs(t *testing.T) {
	// Two intervals in one shift: stats sum both, lateness from the first.
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	clock.advance(90 * time.Minute) // clock in 10:30, 30 late
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(time.Hour)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))
	clock.advance(10 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(40 * time.Minute)
	require.Equal(t, shiftledger.Applied, ledger.ClockOut(emp.ID))

	stats := ledger.EmployeeShiftStats(emp.ID, shift.ID)
	assert.Equal(t, 100, stats.TotalWork, "60 + 40")
	assert.True(t, stats.IsLate)
	assert.Equal(t, 30, stats.LateMinutes)
}

func TestStats_NoMatchingLogYieldsZeroes(t *testing.T) {
	ledger, _ := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	assert.Equal(t, shiftledger.ShiftStats{}, ledger.EmployeeShiftStats(emp.ID, shift.ID))
	assert.Equal(t, shiftledger.ShiftStats{}, ledger.EmployeeShiftStats(emp.ID, "ghost"))
	assert.Equal(t, shiftledger.ShiftStats{}, ledger.EmployeeShiftStats("ghost", shift.ID))
}

func TestStats_OpenLogExcludedFromTotals(t *testing.T) {
	ledger, clock := newTestLedger(t)
	branch := ledger.AddBranch("Main")
	emp := addHourlyEmployee(t, ledger, branch.ID, 10)
	shift, err := ledger.StartShift(branch.ID)
	require.NoError(t, err)

	clock.advance(2 * time.Hour) // 11:00, an hour late
	require.Equal(t, shiftledger.Applied, ledger.ClockIn(emp.ID, branch.ID))
	clock.advance(3 * time.Hour)

	stats := ledger.EmployeeShiftStats(emp.ID, shift.ID)
	assert.Equal(t, 0, stats.TotalWork, "open log has no valid totals yet")
	assert.True(t, stats.IsLate, "lateness is known from the clock-in alone")
	assert.Equal(t, 60, stats.LateMinutes)
}
