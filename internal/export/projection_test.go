package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milkrun/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC)
}

func fixtureModel() *model.RouteModel {
	m := model.NewRouteModel()
	m.Customers = []*model.Customer{
		{
			CustomerNumber: "1",
			AccountName:    "A",
			Address:        "1255 Liberty St",
			Area:           "Shasta Ortho",
			HasItems:       true,
			Items: []model.Item{
				{ItemID: "x1", Description: "Widget-blue", Quantity: 2},
				{ItemID: "x2", Description: "Widget-red", Quantity: 1},
			},
		},
		{
			CustomerNumber: "2",
			AccountName:    "B",
			Address:        "9 Bonnyview Rd",
			Area:           "South Redding",
		},
	}
	m.Stats.TotalItems = 2
	m.Stats.CustomersWithoutItems = 1
	return m
}

func TestProjection_OneRowPerItemPlusBareRow(t *testing.T) {
	p := NewProjectionAt(fixedClock)

	records := p.ToFlatRecords(fixtureModel(), map[string]bool{})
	require.Len(t, records, 3)

	assert.Equal(t, "1", records[0].Get(model.ColCustomerNumber))
	assert.Equal(t, "x1", records[0].Get(model.ColItemID))
	assert.Equal(t, "2", records[0].Get(model.ColQuantity))
	assert.Equal(t, "x2", records[1].Get(model.ColItemID))

	bare := records[2]
	assert.Equal(t, "2", bare.Get(model.ColCustomerNumber))
	assert.Equal(t, "", bare.Get(model.ColItemID))
	assert.Equal(t, "", bare.Get(model.ColDescription))
	assert.Equal(t, "", bare.Get(model.ColQuantity))
}

func TestProjection_CompletionFlags(t *testing.T) {
	p := NewProjectionAt(fixedClock)

	state := map[string]bool{
		"1:x1": true,
		"2":    true,
	}
	records := p.ToFlatRecords(fixtureModel(), state)
	require.Len(t, records, 3)

	assert.Equal(t, "Yes", records[0].Get(model.ColCompleted))
	assert.Equal(t, "2025-06-01", records[0].Get(model.ColCompletedDate))

	assert.Equal(t, "No", records[1].Get(model.ColCompleted))
	assert.Equal(t, "", records[1].Get(model.ColCompletedDate))

	assert.Equal(t, "Yes", records[2].Get(model.ColCompleted), "bare customer row uses the bare key")
	assert.Equal(t, "2025-06-01", records[2].Get(model.ColCompletedDate))
}

func TestProjection_StableColumnOrder(t *testing.T) {
	p := NewProjectionAt(fixedClock)

	records := p.ToFlatRecords(fixtureModel(), nil)
	for _, rec := range records {
		assert.Equal(t, model.ExportColumns, rec.Columns)
	}
}

func TestProjection_NilAndEmptyModel(t *testing.T) {
	p := NewProjectionAt(fixedClock)

	assert.Empty(t, p.ToFlatRecords(nil, nil))
	assert.Empty(t, p.ToFlatRecords(model.NewRouteModel(), nil))
}
