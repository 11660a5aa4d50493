// Package area classifies stop addresses into named delivery areas using a
// priority-ordered, runtime-mutable rule set.
package area

import (
	"fmt"
	"sort"
	"strings"

	"milkrun/internal/common"
	"milkrun/internal/model"
)

// Classifier owns a validated area rule set. Mutations go through Add,
// Update, Remove, Import and Reset so the invariants hold at every point:
// unique ids and exactly one catch-all rule.
//
// The core logic is single-threaded; a Classifier must not be shared across
// goroutines without external synchronization.
type Classifier struct {
	rules []model.AreaRule
}

// RuleUpdate carries the fields Update may change. Nil fields are left
// untouched; the rule id itself is immutable.
type RuleUpdate struct {
	Name     *string
	Patterns *[]string
	Priority *int
	Color    *string
	Icon     *string
}

// NewClassifier returns a classifier seeded with the default rule set.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewClassifierWithRules returns a classifier using the given rule set, or an
// error when the set fails validation.
func NewClassifierWithRules(rules []model.AreaRule) (*Classifier, error) {
	c := &Classifier{}
	if err := c.Import(rules); err != nil {
		return nil, err
	}
	return c, nil
}

// Classify resolves an address to an area rule. It is total: empty, blank and
// unmatched addresses all resolve to the catch-all rule, and the same address
// always resolves to the same rule for a given rule set.
func (c *Classifier) Classify(address string) model.AreaRule {
	addr := strings.ToLower(strings.TrimSpace(address))

	for _, rule := range c.SortedRules() {
		if rule.IsCatchAll() {
			continue
		}
		for _, pattern := range rule.Patterns {
			if pattern == "" {
				continue
			}
			if strings.Contains(addr, strings.ToLower(pattern)) {
				return rule
			}
		}
	}

	return c.CatchAll()
}

// CatchAll returns the rule with no patterns.
func (c *Classifier) CatchAll() model.AreaRule {
	for _, rule := range c.rules {
		if rule.IsCatchAll() {
			return rule.Clone()
		}
	}
	// Unreachable while the mutation invariants hold; degrade rather than panic.
	return model.AreaRule{ID: CatchAllID, Name: "Other", Patterns: []string{}, Priority: DefaultPriority, Color: DefaultColor, Icon: DefaultIcon}
}

// Add inserts a new rule, applying defaults for unset optional fields.
func (c *Classifier) Add(rule model.AreaRule) error {
	if rule.ID == "" || rule.Name == "" {
		return fmt.Errorf("%w: id and name are required", common.ErrMissingRuleField)
	}
	if c.find(rule.ID) >= 0 {
		return fmt.Errorf("%w: %q", common.ErrDuplicateRule, rule.ID)
	}

	if rule.Patterns == nil {
		rule.Patterns = []string{}
	}
	if rule.Priority == 0 {
		rule.Priority = DefaultPriority
	}
	if rule.Color == "" {
		rule.Color = DefaultColor
	}
	if rule.Icon == "" {
		rule.Icon = DefaultIcon
	}

	c.rules = append(c.rules, rule.Clone())
	return nil
}

// Update merges the given fields into an existing rule.
func (c *Classifier) Update(id string, upd RuleUpdate) error {
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", common.ErrRuleNotFound, id)
	}

	rule := &c.rules[i]
	if upd.Name != nil {
		rule.Name = *upd.Name
	}
	if upd.Patterns != nil {
		patterns := make([]string, len(*upd.Patterns))
		copy(patterns, *upd.Patterns)
		rule.Patterns = patterns
	}
	if upd.Priority != nil {
		rule.Priority = *upd.Priority
	}
	if upd.Color != nil {
		rule.Color = *upd.Color
	}
	if upd.Icon != nil {
		rule.Icon = *upd.Icon
	}
	return nil
}

// Remove deletes a rule. The catch-all rule is protected.
func (c *Classifier) Remove(id string) error {
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", common.ErrRuleNotFound, id)
	}
	if c.rules[i].IsCatchAll() {
		return common.ErrCatchAllRemoval
	}
	c.rules = append(c.rules[:i], c.rules[i+1:]...)
	return nil
}

// ResetToDefaults replaces the rule set with the built-in defaults.
func (c *Classifier) ResetToDefaults() {
	c.rules = defaultRules()
}

// Import atomically replaces the rule set. The incoming set must have unique
// non-empty ids, names, explicit pattern lists, and exactly one catch-all; on
// any validation failure the current rule set is left unchanged.
func (c *Classifier) Import(rules []model.AreaRule) error {
	if rules == nil {
		return fmt.Errorf("%w: rule set is required", common.ErrMissingRuleField)
	}

	seen := make(map[string]bool, len(rules))
	catchAlls := 0
	for _, rule := range rules {
		if rule.ID == "" || rule.Name == "" {
			return fmt.Errorf("%w: id and name are required", common.ErrMissingRuleField)
		}
		if rule.Patterns == nil {
			return fmt.Errorf("%w: rule %q has no pattern list", common.ErrMissingRuleField, rule.ID)
		}
		if seen[rule.ID] {
			return fmt.Errorf("%w: %q", common.ErrDuplicateRule, rule.ID)
		}
		seen[rule.ID] = true
		if rule.IsCatchAll() {
			catchAlls++
		}
	}
	if catchAlls != 1 {
		return fmt.Errorf("%w: found %d", common.ErrCatchAllRequired, catchAlls)
	}

	c.rules = model.CloneRules(rules)
	return nil
}

// Export returns a deep copy of the current rule set in insertion order.
func (c *Classifier) Export() []model.AreaRule {
	return model.CloneRules(c.rules)
}

// SortedRules returns the rule set ordered by ascending priority. Ties keep
// their relative insertion order; that ordering is part of the classification
// contract, not an implementation accident.
func (c *Classifier) SortedRules() []model.AreaRule {
	sorted := model.CloneRules(c.rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return sorted
}

func (c *Classifier) find(id string) int {
	for i, rule := range c.rules {
		if rule.ID == id {
			return i
		}
	}
	return -1
}
