package model

// RouteModel is the aggregate built from one ingestion pass. It is an
// immutable snapshot: re-importing a manifest replaces it wholesale rather
// than mutating it in place.
type RouteModel struct {
	Customers       []*Customer
	CustomersByArea map[string][]*Customer
	AreaStats       map[string]int
	ItemsByType     map[string][]OwnedItem
	Stats           RouteStats
}

// RouteStats holds the aggregates computed during ingestion.
type RouteStats struct {
	TotalCustomers        int
	TotalItems            int
	CustomersWithoutItems int
	ItemsPerCustomer      float64
}

// NewRouteModel returns an empty model with all maps initialized, the value
// ingestion degrades to when handed unusable input.
func NewRouteModel() *RouteModel {
	return &RouteModel{
		Customers:       []*Customer{},
		CustomersByArea: make(map[string][]*Customer),
		AreaStats:       make(map[string]int),
		ItemsByType:     make(map[string][]OwnedItem),
	}
}

// CompletionStats summarizes delivery progress across a route.
type CompletionStats struct {
	TotalStops     int
	CompletedStops int
	TotalItems     int
	CompletedItems int
	StopsProgress  int
	ItemsProgress  int
}
