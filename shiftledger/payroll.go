/*
payroll.go - Shift completion and sales reconciliation

RECONCILIATION:
  totalSales = sum(price * quantity)
  totalCost  = sum(cost * quantity)
  staffWages = sum over the shift's time logs of the owning employee's
               contribution:
                 hourly:  wage * totalWorkMinutes / 60
                 daily:   wage (flat)
                 monthly: wage / monthlyWageDivisor (flat)
               unknown wage type or missing employee contributes zero
  profit     = totalSales - totalCost - staffWages

  Wages are computed from the log totals as they stand when reconciliation
  runs, then the shift is finalized (the finalize is a side effect of the
  reconciliation, not a precursor). A log still open at that point has zero
  recorded work minutes, so hourly staff should be clocked out first; daily
  and monthly staff contribute their flat amount either way.
*/
package shiftledger

import "github.com/shopspring/decimal"

var sixty = decimal.NewFromInt(60)

// EndShift completes the shift: status becomes completed, actualEnd is set,
// and the branch's current-shift pointer is cleared if it points here. Open
// time logs on the shift are force-closed; with Policy.GlobalClockOut the
// legacy behavior applies instead and every active employee system-wide is
// clocked out, whatever shift they are on.
func (l *Ledger) EndShift(shiftID ShiftID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.endShiftLocked(shiftID)
}

func (l *Ledger) endShiftLocked(shiftID ShiftID) Outcome {
	s, ok := l.shifts[shiftID]
	if !ok {
		return NotFound
	}
	if s.Status == ShiftCompleted {
		return NoOp
	}

	now := l.now()
	s.Status = ShiftCompleted
	s.ActualEnd = &now
	if l.current[s.Branch] == shiftID {
		delete(l.current, s.Branch)
	}

	if l.policy.GlobalClockOut {
		for _, id := range l.employeeOrder {
			e := l.employees[id]
			if e.Status != StatusActive {
				continue
			}
			if tl := l.openLog(e); tl != nil {
				l.closeLog(tl, e, now)
			}
		}
		return Applied
	}

	for _, logID := range s.TimeLogs {
		tl := l.timeLogs[logID]
		if tl == nil || !tl.Open() {
			continue
		}
		if e := l.employees[tl.EmployeeID]; e != nil {
			l.closeLog(tl, e, now)
		}
	}
	return Applied
}

// EndShiftWithSales reconciles the shift against the supplied sales lines
// and finalizes it. The figures are recorded on the shift and returned; an
// unknown shift yields zero figures and NotFound.
func (l *Ledger) EndShiftWithSales(shiftID ShiftID, lines []SalesLine) (Reconciliation, Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shifts[shiftID]
	if !ok {
		return Reconciliation{}, NotFound
	}

	totalSales := decimal.Zero
	totalCost := decimal.Zero
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		totalSales = totalSales.Add(line.Price.Mul(qty))
		totalCost = totalCost.Add(line.Cost.Mul(qty))
	}

	staffWages := decimal.Zero
	for _, logID := range s.TimeLogs {
		tl := l.timeLogs[logID]
		if tl == nil {
			continue
		}
		e := l.employees[tl.EmployeeID]
		if e == nil {
			continue
		}
		staffWages = staffWages.Add(wageContribution(e, tl.TotalWorkMinutes, l.policy))
	}

	rec := Reconciliation{
		TotalSales: totalSales,
		TotalCost:  totalCost,
		StaffWages: staffWages,
		Profit:     totalSales.Sub(totalCost).Sub(staffWages),
	}
	s.Reconciliation = &rec
	l.endShiftLocked(shiftID)
	return rec, Applied
}

// wageContribution is one time log's payroll cost for the shift.
func wageContribution(e *Employee, workMinutes int, policy Policy) decimal.Decimal {
	switch e.WageType {
	case WageHourly:
		return e.Wage.Mul(decimal.NewFromInt(int64(workMinutes))).Div(sixty)
	case WageDaily:
		return e.Wage
	case WageMonthly:
		divisor := policy.MonthlyWageDivisor
		if divisor <= 0 {
			divisor = 30
		}
		return e.Wage.Div(decimal.NewFromInt(int64(divisor)))
	default:
		return decimal.Zero
	}
}
