package model

// AreaRule maps address substrings to a named delivery area.
//
// Patterns are lowercase substrings checked against a normalized address.
// Lower Priority values are checked first. The rule with an empty Patterns
// list is the catch-all and matches any address no earlier rule claimed.
type AreaRule struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
	Priority int      `json:"priority"`
	Color    string   `json:"color,omitempty"`
	Icon     string   `json:"icon,omitempty"`
}

// IsCatchAll reports whether this rule matches unclassified addresses.
func (r AreaRule) IsCatchAll() bool {
	return len(r.Patterns) == 0
}

// Clone returns a deep copy safe to hand to callers.
func (r AreaRule) Clone() AreaRule {
	out := r
	out.Patterns = make([]string, len(r.Patterns))
	copy(out.Patterns, r.Patterns)
	return out
}

// CloneRules deep-copies a rule list.
func CloneRules(rules []AreaRule) []AreaRule {
	out := make([]AreaRule, len(rules))
	for i, r := range rules {
		out[i] = r.Clone()
	}
	return out
}
