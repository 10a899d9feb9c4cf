package model

import "strconv"

// PropertyRecord is the final output unit: one row per discovered property
// URL. Attribution fields are empty when no original purchase could be
// identified for the current owners.
type PropertyRecord struct {
	CurrentOwners string
	PurchasePrice string // "$" + thousands-grouped integer, or empty
	PurchaseDate  string // raw date text of the attributed sale
	PurchaseMonth string // canonical month name, or empty
	PurchaseYear  int    // four-digit year; 0 when absent
	BuyerName     string
	SellerName    string
	Street        string
	City          string
	State         string
	Zip           string
	Address       string
	URL           string
}

// Columns is the fixed output column order shared by every sink
func Columns() []string {
	return []string{
		"Current Owners", "Original Purchase Price", "Purchase Date",
		"Purchase Month", "Purchase Year", "Buyer Name", "Seller Name",
		"Street", "City", "State", "Zip", "Address", "Property URL",
	}
}

// Row renders the record as strings in Columns order
func (r PropertyRecord) Row() []string {
	year := ""
	if r.PurchaseYear != 0 {
		year = strconv.Itoa(r.PurchaseYear)
	}
	return []string{
		r.CurrentOwners, r.PurchasePrice, r.PurchaseDate,
		r.PurchaseMonth, year, r.BuyerName, r.SellerName,
		r.Street, r.City, r.State, r.Zip, r.Address, r.URL,
	}
}

// FormatPrice renders a price as "$" + thousands-grouped integer,
// or "" when the price is absent
func FormatPrice(price *int) string {
	if price == nil {
		return ""
	}
	n := *price
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + "$" + s
}
