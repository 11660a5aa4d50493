// Package search filters route customers by case-insensitive substring query.
package search

import (
	"strings"

	"milkrun/internal/model"
)

// Search returns the customers matching query, preserving their relative
// order in the model. An empty or whitespace query returns the full list. A
// customer matches when the query appears in its account name, address,
// customer number, or area, or in any owned item's description or item id;
// matching via an item still returns the whole customer.
func Search(m *model.RouteModel, query string) []*model.Customer {
	if m == nil {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return m.Customers
	}

	var matches []*model.Customer
	for _, customer := range m.Customers {
		if matchesCustomer(customer, q) {
			matches = append(matches, customer)
		}
	}
	return matches
}

func matchesCustomer(c *model.Customer, q string) bool {
	if containsFold(c.AccountName, q) ||
		containsFold(c.Address, q) ||
		containsFold(c.CustomerNumber, q) ||
		containsFold(c.Area, q) {
		return true
	}
	for _, item := range c.Items {
		if containsFold(item.Description, q) || containsFold(item.ItemID, q) {
			return true
		}
	}
	return false
}

// containsFold assumes q is already lowercased.
func containsFold(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}
