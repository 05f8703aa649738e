package domain

import "strings"

// ProductSortKey selects the column products are listed by.
type ProductSortKey string

const (
	ProductSortName  ProductSortKey = "name"
	ProductSortPrice ProductSortKey = "price"
	ProductSortStock ProductSortKey = "stock"
)

// ParseProductSortKey falls back to name for unknown keys.
func ParseProductSortKey(raw string) ProductSortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price":
		return ProductSortPrice
	case "stock", "stockquantity":
		return ProductSortStock
	default:
		return ProductSortName
	}
}

// CustomerSortKey selects the column customers are listed by.
type CustomerSortKey string

const (
	CustomerSortLastName  CustomerSortKey = "lastName"
	CustomerSortFirstName CustomerSortKey = "firstName"
	CustomerSortEmail     CustomerSortKey = "email"
)

// ParseCustomerSortKey falls back to last name for unknown keys.
func ParseCustomerSortKey(raw string) CustomerSortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "firstname":
		return CustomerSortFirstName
	case "email":
		return CustomerSortEmail
	default:
		return CustomerSortLastName
	}
}
