package service

import (
	"strings"

	"github.com/SlickbitTechnologies/ContractFlow/model"
)

// Sentinel filter values meaning "no constraint".
const (
	AllStatus  = "All Status"
	AllActions = "All Actions"
)

// FilterQuery is the compound predicate applied to the contract
// collection. All three parts are ANDed.
type FilterQuery struct {
	Search string // case-insensitive substring of company or service
	Status string // exact match, or AllStatus / empty for no constraint
	Action string // exact match, or AllActions / empty for no constraint
}

func (q FilterQuery) matches(c *model.Contract) bool {
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(c.Company), term) &&
			!strings.Contains(strings.ToLower(c.Service), term) {
			return false
		}
	}
	if q.Status != "" && q.Status != AllStatus &&
		!strings.EqualFold(c.Status, q.Status) {
		return false
	}
	if q.Action != "" && q.Action != AllActions &&
		!strings.EqualFold(c.Action, q.Action) {
		return false
	}
	return true
}

// Filter returns the subsequence of contracts matching q, preserving the
// input order. It is pure and idempotent; with an empty query it returns
// a copy of the input unchanged.
func Filter(contracts []model.Contract, q FilterQuery) []model.Contract {
	result := make([]model.Contract, 0, len(contracts))
	for i := range contracts {
		if q.matches(&contracts[i]) {
			result = append(result, contracts[i])
		}
	}
	return result
}
