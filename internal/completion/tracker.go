// Package completion owns delivery check-state: a sparse set of composite
// keys with hierarchical rollup from items to stops.
package completion

import (
	"context"
	"math"
	"sort"

	"milkrun/internal/common"
	"milkrun/internal/model"
	"milkrun/internal/service"
)

// Key builds the composite completion key. Customers with items are keyed per
// item; customers without items are keyed by bare customer number.
func Key(customerNumber, itemID string) string {
	if itemID == "" {
		return customerNumber
	}
	return customerNumber + ":" + itemID
}

// Tracker owns the in-memory completion state and mirrors every mutation to
// the optional store. Store failures are logged and otherwise ignored; the
// in-memory state stays authoritative for the session.
type Tracker struct {
	state map[string]bool
	store service.CompletionStore
}

// NewTracker creates an empty tracker. store may be nil for purely in-memory use.
func NewTracker(store service.CompletionStore) *Tracker {
	return &Tracker{
		state: make(map[string]bool),
		store: store,
	}
}

// Load hydrates the tracker from the store. A read failure leaves the tracker
// empty and is returned for reporting; the tracker remains usable.
func (t *Tracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	keys, err := t.store.GetCompletion(ctx)
	if err != nil {
		return err
	}
	t.state = make(map[string]bool, len(keys))
	for _, key := range keys {
		t.state[key] = true
	}
	return nil
}

// Toggle sets or clears one composite key and returns refreshed stats for the
// given model. Pass itemID "" to address a no-items customer.
func (t *Tracker) Toggle(ctx context.Context, m *model.RouteModel, customerNumber, itemID string, checked bool) model.CompletionStats {
	key := Key(customerNumber, itemID)
	if checked {
		t.state[key] = true
	} else {
		delete(t.state, key)
	}
	t.save(ctx)
	return t.Stats(m)
}

// IsChecked reports whether a composite key is set.
func (t *Tracker) IsChecked(key string) bool {
	return t.state[key]
}

// IsCustomerComplete applies the two-branch rollup rule: a customer with
// items is complete only when every item key is set; a customer without items
// is complete only when its bare customer-number key is set. The bare key
// never completes a customer that has items.
func (t *Tracker) IsCustomerComplete(c *model.Customer) bool {
	if c == nil {
		return false
	}
	if c.HasItems {
		for _, item := range c.Items {
			if !t.state[Key(c.CustomerNumber, item.ItemID)] {
				return false
			}
		}
		return true
	}
	return t.state[Key(c.CustomerNumber, "")]
}

// Stats computes progress in a single pass over the model's customers.
func (t *Tracker) Stats(m *model.RouteModel) model.CompletionStats {
	var stats model.CompletionStats
	if m == nil {
		return stats
	}

	for _, customer := range m.Customers {
		stats.TotalStops++
		if t.IsCustomerComplete(customer) {
			stats.CompletedStops++
		}
		for _, item := range customer.Items {
			stats.TotalItems++
			if t.state[Key(customer.CustomerNumber, item.ItemID)] {
				stats.CompletedItems++
			}
		}
	}

	stats.StopsProgress = percent(stats.CompletedStops, stats.TotalStops)
	stats.ItemsProgress = percent(stats.CompletedItems, stats.TotalItems)
	return stats
}

// CheckAll marks every applicable key in the model complete.
func (t *Tracker) CheckAll(ctx context.Context, m *model.RouteModel) model.CompletionStats {
	if m != nil {
		for _, customer := range m.Customers {
			if customer.HasItems {
				for _, item := range customer.Items {
					t.state[Key(customer.CustomerNumber, item.ItemID)] = true
				}
			} else {
				t.state[Key(customer.CustomerNumber, "")] = true
			}
		}
	}
	t.save(ctx)
	return t.Stats(m)
}

// UncheckAll clears all completion state.
func (t *Tracker) UncheckAll(ctx context.Context, m *model.RouteModel) model.CompletionStats {
	t.state = make(map[string]bool)
	t.save(ctx)
	return t.Stats(m)
}

// Reconcile carries completion forward across a re-import: keys whose
// customer number still exists in the new model survive, keys for removed
// customers are dropped. Matching ids are how progress outlives a corrected
// manifest upload.
func (t *Tracker) Reconcile(ctx context.Context, newModel *model.RouteModel) {
	live := make(map[string]bool)
	if newModel != nil {
		for _, customer := range newModel.Customers {
			live[customer.CustomerNumber] = true
		}
	}

	next := make(map[string]bool, len(t.state))
	for key := range t.state {
		if live[customerNumberOf(key)] {
			next[key] = true
		}
	}
	t.state = next
	t.save(ctx)
}

// Snapshot returns a copy of the completion state for read-only consumers
// such as the export projection.
func (t *Tracker) Snapshot() map[string]bool {
	out := make(map[string]bool, len(t.state))
	for key := range t.state {
		out[key] = true
	}
	return out
}

// Keys returns the sorted key set, the shape handed to the store.
func (t *Tracker) Keys() []string {
	keys := make([]string, 0, len(t.state))
	for key := range t.state {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (t *Tracker) save(ctx context.Context) {
	if t.store == nil {
		return
	}
	keys := t.Keys()
	err := common.WithRetry(ctx, func() error {
		return t.store.SaveCompletion(ctx, keys)
	}, service.RetryOptions{MaxAttempts: 3})
	if err != nil {
		common.LogError(err, "Failed to persist completion state; continuing with in-memory state", common.Fields{
			"keys": len(keys),
		})
		return
	}
	common.LogDebug("Persisted completion state", common.Fields{"keys": len(keys)})
}

func customerNumberOf(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
