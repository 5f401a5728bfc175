package models

// PropertyRecord is one listing row exactly as the listings database stores
// it. Raw string fields (tax, rent, year built) are normalized downstream;
// absent fields stay zero-valued and are treated as missing, not fatal.
// Immutable once fetched.
type PropertyRecord struct {
	ID           int64
	Price        *float64
	TaxRaw       string
	RentRaw      string
	Sqft         *float64
	YearBuiltRaw string
	Zip          string
	City         string
}
