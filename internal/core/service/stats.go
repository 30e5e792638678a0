package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

// Stats builds the dashboard snapshot. Counts and revenue cover the whole
// dataset; only OrdersByDate is restricted to the selected period.
func (s *OrderService) Stats(ctx context.Context, period string) (*domain.Stats, error) {
	p := domain.ParseStatsPeriod(period)

	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count orders: %w", err)
	}

	amounts, err := s.orders.Amounts(ctx, domain.OrderApproved)
	if err != nil {
		return nil, fmt.Errorf("stats: revenue: %w", err)
	}

	active, err := s.clients.CountByStatus(ctx, domain.ClientActive)
	if err != nil {
		return nil, fmt.Errorf("stats: count clients: %w", err)
	}

	from, to := window(p, s.now())
	dates, err := s.orders.OrderDatesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats: order dates: %w", err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &domain.Stats{
		Period:          p,
		TotalOrders:     total,
		CompletedOrders: counts[domain.OrderApproved],
		PendingOrders:   counts[domain.OrderPending],
		RejectedOrders:  counts[domain.OrderRejected],
		ActiveClients:   active,
		TotalRevenue:    decimal.Sum(decimal.Zero, amounts...),
		OrdersByDate:    bucketize(p, dates),
	}, nil
}

// window returns the UTC bounds [from, to) of the period. from is the start
// of the day six days ago for 7days, or three calendar months before today;
// to is the end of today, so future-dated orders stay out of the series.
func window(p domain.StatsPeriod, now time.Time) (from, to time.Time) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to = today.AddDate(0, 0, 1)
	if p == domain.PeriodThreeMonths {
		return today.AddDate(0, -3, 0), to
	}
	return today.AddDate(0, 0, -6), to
}

// bucketize groups dates by UTC calendar day (7days) or ISO-8601 week
// (3months). The result is never nil and is sorted by bucket date.
func bucketize(p domain.StatsPeriod, dates []time.Time) []domain.DateBucket {
	buckets := make([]domain.DateBucket, 0)
	if p == domain.PeriodThreeMonths {
		type isoWeek struct{ year, week int }
		index := make(map[isoWeek]int)
		for _, d := range dates {
			d = d.UTC()
			y, w := d.ISOWeek()
			k := isoWeek{y, w}
			i, ok := index[k]
			if !ok {
				index[k] = len(buckets)
				buckets = append(buckets, domain.DateBucket{Date: d, ISOYear: y, ISOWeek: w})
				i = len(buckets) - 1
			}
			if d.Before(buckets[i].Date) {
				buckets[i].Date = d
			}
			buckets[i].Count++
		}
	} else {
		index := make(map[time.Time]int)
		for _, d := range dates {
			d = d.UTC()
			day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
			i, ok := index[day]
			if !ok {
				index[day] = len(buckets)
				buckets = append(buckets, domain.DateBucket{Date: day})
				i = len(buckets) - 1
			}
			buckets[i].Count++
		}
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date.Before(buckets[j].Date) })
	return buckets
}
