package models

import (
	"fmt"
	"time"
)

// RawSale is a sale entry as it sits in the realtime store, nested under
// sales/{productId}/{saleId}. Timestamps arrive in Unix seconds from some
// producers and milliseconds from others.
type RawSale struct {
	ShopID    string `json:"shopId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Timestamp int64  `json:"timestamp"`
}

// SaleRecord is the normalized form: one record per sale, timestamp always
// in milliseconds.
type SaleRecord struct {
	ShopID      string
	ProductID   string
	Quantity    int
	TimestampMS int64
}

// Time returns the sale instant in the local timezone.
func (s SaleRecord) Time() time.Time {
	return time.UnixMilli(s.TimestampMS)
}

// MonthKey identifies a calendar month as "YYYY-MM". Zero-padded, so
// lexicographic order equals chronological order.
type MonthKey string

// MonthKeyFor derives the MonthKey of a point in time.
func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())))
}

// MonthKeyOf builds a MonthKey from a month/year pair (month 1-12).
func MonthKeyOf(year, month int) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month))
}

// Next returns the key of the following calendar month.
func (k MonthKey) Next() MonthKey {
	var y, m int
	fmt.Sscanf(string(k), "%d-%d", &y, &m)
	m++
	if m > 12 {
		m = 1
		y++
	}
	return MonthKeyOf(y, m)
}

// TrendPoint is one month of the sales trend.
type TrendPoint struct {
	Month    MonthKey `json:"month"`
	Quantity int      `json:"quantity"`
}

// TrendSeries is a contiguous month-by-month quantity series in strictly
// increasing MonthKey order, with zero-filled gaps.
type TrendSeries []TrendPoint
