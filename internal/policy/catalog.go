package policy

import (
	"strings"

	"fogproxy/pkg/types"
)

// Catalog is the read-only, ordered list of locally runnable models.
type Catalog []types.Model

// Cheapest returns the lowest-cost model; the first one wins ties.
func (c Catalog) Cheapest() (types.Model, bool) {
	if len(c) == 0 {
		return types.Model{}, false
	}
	best := c[0]
	for _, m := range c[1:] {
		if m.Cost < best.Cost {
			best = m
		}
	}
	return best, true
}

// CheapestAtLeast returns the lowest-cost model whose accuracy meets acc.
func (c Catalog) CheapestAtLeast(acc float64) (types.Model, bool) {
	var best types.Model
	found := false
	for _, m := range c {
		if m.Accuracy < acc {
			continue
		}
		if !found || m.Cost < best.Cost {
			best, found = m, true
		}
	}
	return best, found
}

// MostAccurate returns the highest-accuracy model; the last one wins ties.
func (c Catalog) MostAccurate() (types.Model, bool) {
	if len(c) == 0 {
		return types.Model{}, false
	}
	best := c[0]
	for _, m := range c[1:] {
		if m.Accuracy >= best.Accuracy {
			best = m
		}
	}
	return best, true
}

// MatchHint returns the first model whose name contains hint.
func (c Catalog) MatchHint(hint string) (types.Model, bool) {
	if hint == "" {
		return types.Model{}, false
	}
	for _, m := range c {
		if strings.Contains(m.Name, hint) {
			return m, true
		}
	}
	return types.Model{}, false
}
