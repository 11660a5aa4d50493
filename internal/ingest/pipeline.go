// Package ingest transforms flat manifest rows into the hierarchical route
// model in a single pass.
package ingest

import (
	"strconv"
	"strings"

	"milkrun/internal/area"
	"milkrun/internal/model"
)

// UnknownType is the item type bucket for descriptions with no usable prefix.
const UnknownType = "Unknown"

// Pipeline builds route models from raw manifest records. Classification of
// stop addresses is delegated to the area classifier at ingestion time; the
// resulting area is derived state and is recomputed on every ingest.
type Pipeline struct {
	classifier *area.Classifier
}

// NewPipeline creates a pipeline using the given classifier.
func NewPipeline(classifier *area.Classifier) *Pipeline {
	return &Pipeline{classifier: classifier}
}

// Ingest builds a fresh RouteModel from manifest rows. It is total: malformed
// rows are skipped individually, nil input yields an empty model, and it
// never returns an error. The first row seen for a customer number fixes the
// account name and address; later rows for the same number only contribute
// items.
func (p *Pipeline) Ingest(records []model.Record) *model.RouteModel {
	return p.IngestWithProgress(records, nil)
}

// IngestWithProgress is Ingest with a per-row callback, invoked once for
// every input row (skipped rows included) so callers can drive a progress
// indicator over large manifests.
func (p *Pipeline) IngestWithProgress(records []model.Record, onRow func()) *model.RouteModel {
	m := model.NewRouteModel()
	if len(records) == 0 {
		return m
	}

	byNumber := make(map[string]*model.Customer, len(records))

	for _, rec := range records {
		if onRow != nil {
			onRow()
		}
		number := strings.TrimSpace(rec.Get(model.ColCustomerNumber))
		if number == "" {
			continue
		}

		customer, ok := byNumber[number]
		if !ok {
			address := strings.TrimSpace(rec.Get(model.ColAddress))
			rule := p.classifier.Classify(address)

			customer = &model.Customer{
				CustomerNumber: number,
				AccountName:    strings.TrimSpace(rec.Get(model.ColAccountName)),
				Address:        address,
				Area:           rule.Name,
				Items:          []model.Item{},
			}
			byNumber[number] = customer

			m.Customers = append(m.Customers, customer)
			m.CustomersByArea[rule.Name] = append(m.CustomersByArea[rule.Name], customer)
			m.AreaStats[rule.Name]++
		}

		itemID := strings.TrimSpace(rec.Get(model.ColItemID))
		if itemID == "" {
			continue
		}

		item := model.Item{
			ItemID:      itemID,
			Description: strings.TrimSpace(rec.Get(model.ColDescription)),
			Quantity:    parseQuantity(rec.Get(model.ColQuantity)),
		}
		customer.Items = append(customer.Items, item)
		customer.HasItems = true
		m.Stats.TotalItems++

		itemType := typeLabel(item.Description)
		m.ItemsByType[itemType] = append(m.ItemsByType[itemType], model.OwnedItem{
			CustomerNumber: customer.CustomerNumber,
			AccountName:    customer.AccountName,
			Item:           item,
		})
	}

	m.Stats.TotalCustomers = len(m.Customers)
	for _, customer := range m.Customers {
		if !customer.HasItems {
			m.Stats.CustomersWithoutItems++
		}
	}
	if m.Stats.TotalCustomers > 0 {
		m.Stats.ItemsPerCustomer = float64(m.Stats.TotalItems) / float64(m.Stats.TotalCustomers)
	}

	return m
}

// parseQuantity is deliberately lenient: anything that does not parse as a
// non-negative integer counts as zero.
func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// typeLabel derives the item type bucket: the substring before the first "-"
// in the description, trimmed, defaulting to UnknownType.
func typeLabel(description string) string {
	prefix := description
	if i := strings.Index(description, "-"); i >= 0 {
		prefix = description[:i]
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return UnknownType
	}
	return prefix
}
