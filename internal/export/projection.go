// Package export flattens the route model and completion state back into
// tabular records.
package export

import (
	"strconv"
	"time"

	"milkrun/internal/completion"
	"milkrun/internal/model"
)

// DateFormat is the layout used for CompletedDate values.
const DateFormat = "2006-01-02"

// Projection turns a route model plus completion state into flat records.
// The clock is injectable so exports are deterministic in tests.
type Projection struct {
	now func() time.Time
}

// NewProjection creates a projection using the wall clock.
func NewProjection() *Projection {
	return &Projection{now: time.Now}
}

// NewProjectionAt creates a projection with a fixed clock.
func NewProjectionAt(now func() time.Time) *Projection {
	return &Projection{now: now}
}

// ToFlatRecords emits one row per item for customers with items, and exactly
// one row with blank item fields for customers without. Field order follows
// model.ExportColumns so round trips are stable.
func (p *Projection) ToFlatRecords(m *model.RouteModel, state map[string]bool) []model.Record {
	if m == nil {
		return []model.Record{}
	}

	records := make([]model.Record, 0, m.Stats.TotalItems+m.Stats.CustomersWithoutItems)
	stamp := p.now().Format(DateFormat)

	for _, customer := range m.Customers {
		if !customer.HasItems {
			records = append(records, p.record(customer, nil, state, stamp))
			continue
		}
		for i := range customer.Items {
			records = append(records, p.record(customer, &customer.Items[i], state, stamp))
		}
	}
	return records
}

func (p *Projection) record(c *model.Customer, item *model.Item, state map[string]bool, stamp string) model.Record {
	rec := model.NewRecord(model.ExportColumns)
	rec.Set(model.ColCustomerNumber, c.CustomerNumber)
	rec.Set(model.ColAccountName, c.AccountName)
	rec.Set(model.ColAddress, c.Address)
	rec.Set(model.ColArea, c.Area)

	var key string
	if item != nil {
		rec.Set(model.ColItemID, item.ItemID)
		rec.Set(model.ColDescription, item.Description)
		rec.Set(model.ColQuantity, strconv.Itoa(item.Quantity))
		key = completion.Key(c.CustomerNumber, item.ItemID)
	} else {
		rec.Set(model.ColItemID, "")
		rec.Set(model.ColDescription, "")
		rec.Set(model.ColQuantity, "")
		key = completion.Key(c.CustomerNumber, "")
	}

	if state[key] {
		rec.Set(model.ColCompleted, "Yes")
		rec.Set(model.ColCompletedDate, stamp)
	} else {
		rec.Set(model.ColCompleted, "No")
		rec.Set(model.ColCompletedDate, "")
	}
	return rec
}
