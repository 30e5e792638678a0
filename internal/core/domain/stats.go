package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsPeriod selects the window of the ordersByDate series.
type StatsPeriod string

const (
	PeriodSevenDays   StatsPeriod = "7days"
	PeriodThreeMonths StatsPeriod = "3months"
)

// ParseStatsPeriod never fails: anything unrecognised falls back to seven days.
func ParseStatsPeriod(s string) StatsPeriod {
	if StatsPeriod(s) == PeriodThreeMonths {
		return PeriodThreeMonths
	}
	return PeriodSevenDays
}

// DateBucket is one point of the ordersByDate series. ISOYear and ISOWeek
// are only set for weekly buckets.
type DateBucket struct {
	Date    time.Time
	ISOYear int
	ISOWeek int
	Count   int64
}

// Stats is the dashboard snapshot. All fields except OrdersByDate are computed
// over the full dataset.
type Stats struct {
	Period          StatsPeriod
	TotalOrders     int64
	CompletedOrders int64
	PendingOrders   int64
	RejectedOrders  int64
	ActiveClients   int64
	TotalRevenue    decimal.Decimal
	OrdersByDate    []DateBucket
}
