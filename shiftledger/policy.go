package shiftledger

// Policy carries the operational constants that the original system buried
// as literals. Everything here is configurable per ledger.
type Policy struct {
	// Scheduled window applied to shifts created without an explicit one.
	ScheduledStart string `json:"scheduledStart"`
	ScheduledEnd   string `json:"scheduledEnd"`

	// ExpectedShiftMinutes is the overtime threshold: minutes worked beyond
	// it count as overtime.
	ExpectedShiftMinutes int `json:"expectedShiftMinutes"`

	// MonthlyWageDivisor converts a monthly wage into its flat per-shift
	// contribution.
	MonthlyWageDivisor int `json:"monthlyWageDivisor"`

	// GlobalClockOut restores the legacy behavior where ending a shift
	// clocks out every active employee system-wide, not just the shift's
	// own open logs. Off by default.
	GlobalClockOut bool `json:"globalClockOut"`
}

// DefaultPolicy matches the reference system: a 10:00-22:00 window, a
// 12-hour expected shift and a 30-day month.
func DefaultPolicy() Policy {
	return Policy{
		ScheduledStart:       "10:00",
		ScheduledEnd:         "22:00",
		ExpectedShiftMinutes: 12 * 60,
		MonthlyWageDivisor:   30,
	}
}
