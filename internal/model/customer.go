package model

// Item is a single deliverable line belonging to a customer. Items are
// immutable once ingested; ItemID is unique within the owning customer.
type Item struct {
	ItemID      string
	Description string
	Quantity    int
}

// Customer is one stop on the route. CustomerNumber is the sole external
// identity; the first manifest row seen for a number fixes AccountName and
// Address, and later rows only contribute items.
type Customer struct {
	CustomerNumber string
	AccountName    string
	Address        string
	Area           string
	Items          []Item
	HasItems       bool
}

// OwnedItem pairs an item with its owning customer for type-bucketed views.
type OwnedItem struct {
	CustomerNumber string
	AccountName    string
	Item           Item
}
