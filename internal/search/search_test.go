package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milkrun/internal/model"
)

func fixtureModel() *model.RouteModel {
	m := model.NewRouteModel()
	m.Customers = []*model.Customer{
		{
			CustomerNumber: "100",
			AccountName:    "Shasta Orthopedics",
			Address:        "1255 Liberty St",
			Area:           "Shasta Ortho",
			HasItems:       true,
			Items: []model.Item{
				{ItemID: "w-1", Description: "Widget-blue"},
			},
		},
		{
			CustomerNumber: "200",
			AccountName:    "Bonny Clinic",
			Address:        "9 Bonnyview Rd",
			Area:           "South Redding",
		},
		{
			CustomerNumber: "300",
			AccountName:    "Hilltop Pharmacy",
			Address:        "10 Hilltop Dr",
			Area:           "Enterprise",
			HasItems:       true,
			Items: []model.Item{
				{ItemID: "brace-9", Description: "Brace-knee"},
			},
		},
	}
	return m
}

func TestSearch_EmptyQueryReturnsFullListUnchanged(t *testing.T) {
	m := fixtureModel()

	for _, q := range []string{"", "   ", "\t"} {
		got := Search(m, q)
		require.Len(t, got, 3)
		for i := range got {
			assert.Same(t, m.Customers[i], got[i])
		}
	}
}

func TestSearch_Fields(t *testing.T) {
	m := fixtureModel()

	tests := []struct {
		name        string
		query       string
		wantNumbers []string
	}{
		{name: "account name", query: "pharmacy", wantNumbers: []string{"300"}},
		{name: "address", query: "liberty", wantNumbers: []string{"100"}},
		{name: "customer number", query: "200", wantNumbers: []string{"200"}},
		{name: "area name", query: "south redding", wantNumbers: []string{"200"}},
		{name: "item description", query: "widget", wantNumbers: []string{"100"}},
		{name: "item id", query: "brace-9", wantNumbers: []string{"300"}},
		{name: "case insensitive", query: "HILLTOP", wantNumbers: []string{"300"}},
		{name: "no match", query: "zzz", wantNumbers: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(m, tt.query)
			var numbers []string
			for _, c := range got {
				numbers = append(numbers, c.CustomerNumber)
			}
			assert.Equal(t, tt.wantNumbers, numbers)
		})
	}
}

func TestSearch_PreservesOrderAndYieldsSubsequence(t *testing.T) {
	m := fixtureModel()

	// "o" appears in all three customers' fields.
	got := Search(m, "o")
	require.Len(t, got, 3)
	assert.Same(t, m.Customers[0], got[0])
	assert.Same(t, m.Customers[1], got[1])
	assert.Same(t, m.Customers[2], got[2])
}

func TestSearch_ItemMatchReturnsWholeCustomer(t *testing.T) {
	m := fixtureModel()

	got := Search(m, "widget")
	require.Len(t, got, 1)
	assert.Equal(t, "100", got[0].CustomerNumber)
	assert.Len(t, got[0].Items, 1, "customer returned in full, not reduced to the matching item")
}

func TestSearch_NilModel(t *testing.T) {
	assert.Nil(t, Search(nil, "anything"))
}
