package model

import (
	"fmt"
	"time"
)

// SaleEvent is one historical ownership-transfer record parsed from a
// property page. Immutable once built.
type SaleEvent struct {
	DateText string    // raw date text as it appeared on the page
	Date     time.Time // parsed date; zero when DateText was unparseable
	Price    *int      // sale price in whole currency units; nil when absent
	Buyer    string
	Seller   string
}

// HasDate reports whether the raw date text parsed to a calendar date
func (e SaleEvent) HasDate() bool {
	return !e.Date.IsZero()
}

// Key is the uniqueness key used to deduplicate sale events
func (e SaleEvent) Key() string {
	price := ""
	if e.Price != nil {
		price = fmt.Sprintf("%d", *e.Price)
	}
	return e.DateText + "\x00" + e.Buyer + "\x00" + e.Seller + "\x00" + price
}
