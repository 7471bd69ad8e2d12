package reports

import (
	"fmt"
	"net/url"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	defaultDays  = 30
	maxRangeDays = 366
)

// Range is an inclusive span of calendar days in UTC.
type Range struct {
	From time.Time
	To   time.Time
}

// Days returns the number of calendar days covered by the range.
func (r Range) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// ParseRange reads from and to (YYYY-MM-DD) from values. A missing to
// defaults to today and a missing from to the 30 days ending at to.
func ParseRange(values url.Values, now time.Time) (Range, error) {
	today := truncate(now)
	r := Range{To: today, From: today.AddDate(0, 0, -(defaultDays - 1))}

	if v := values.Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return Range{}, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidRange)
		}
		r.To = t
		r.From = t.AddDate(0, 0, -(defaultDays - 1))
	}
	if v := values.Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return Range{}, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidRange)
		}
		r.From = t
	}

	if r.From.After(r.To) {
		return Range{}, fmt.Errorf("%w: from is after to", ErrInvalidRange)
	}
	if r.Days() > maxRangeDays {
		return Range{}, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, maxRangeDays)
	}
	return r, nil
}

// DailySales is the order count and revenue for one day.
type DailySales struct {
	Date         string `json:"date"`
	Orders       int    `json:"orders"`
	RevenueCents int64  `json:"revenueCents"`
}

// Sales is a daily series over a range. Days without orders are present
// with zero values.
type Sales struct {
	From              string       `json:"from"`
	To                string       `json:"to"`
	Days              []DailySales `json:"days"`
	TotalOrders       int          `json:"totalOrders"`
	TotalRevenueCents int64        `json:"totalRevenueCents"`
}

func newSales(r Range, rows map[string]DailySales) *Sales {
	s := &Sales{
		From: r.From.Format(dateLayout),
		To:   r.To.Format(dateLayout),
		Days: make([]DailySales, 0, r.Days()),
	}

	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		day, ok := rows[key]
		if !ok {
			day = DailySales{Date: key}
		}
		s.Days = append(s.Days, day)
		s.TotalOrders += day.Orders
		s.TotalRevenueCents += day.RevenueCents
	}
	return s
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
