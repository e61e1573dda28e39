package service

import (
	"reflect"
	"testing"

	"github.com/SlickbitTechnologies/ContractFlow/model"
)

func sampleContracts() []model.Contract {
	return []model.Contract{
		{ID: "1", Company: "Acme", Service: "Cloud Hosting", Status: model.StatusActive, Action: model.ActionRenew, Ends: "2024-01-10"},
		{ID: "2", Company: "Globex", Service: "Payroll", Status: model.StatusPending, Action: model.ActionReview, Ends: "TBD"},
		{ID: "3", Company: "Initech", Service: "Acme Integration", Status: model.StatusExpired, Action: model.ActionCancel, Ends: "2023-06-01"},
	}
}

func TestFilterNoConstraints(t *testing.T) {
	contracts := sampleContracts()

	// Sentinel values mean "no constraint": the input comes back
	// unchanged, including order.
	result := Filter(contracts, FilterQuery{
		Search: "",
		Status: AllStatus,
		Action: AllActions,
	})

	if !reflect.DeepEqual(result, contracts) {
		t.Errorf("Expected unchanged collection, got %+v", result)
	}
}

func TestFilterSearchTerm(t *testing.T) {
	contracts := sampleContracts()

	// Case-insensitive substring over company or service
	result := Filter(contracts, FilterQuery{Search: "acme", Status: AllStatus, Action: AllActions})
	if len(result) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(result))
	}
	if result[0].Company != "Acme" || result[1].Company != "Initech" {
		t.Errorf("Expected order-preserving match, got %s then %s", result[0].Company, result[1].Company)
	}

	result = Filter(contracts, FilterQuery{Search: "payroll"})
	if len(result) != 1 || result[0].Company != "Globex" {
		t.Errorf("Expected only Globex, got %+v", result)
	}
}

func TestFilterStatusAndAction(t *testing.T) {
	contracts := sampleContracts()

	result := Filter(contracts, FilterQuery{Status: "active"})
	if len(result) != 1 || result[0].Company != "Acme" {
		t.Errorf("Expected case-insensitive status match, got %+v", result)
	}

	result = Filter(contracts, FilterQuery{Action: "review"})
	if len(result) != 1 || result[0].Company != "Globex" {
		t.Errorf("Expected case-insensitive action match, got %+v", result)
	}

	// All three predicates are ANDed
	result = Filter(contracts, FilterQuery{Search: "acme", Status: model.StatusExpired, Action: model.ActionCancel})
	if len(result) != 1 || result[0].Company != "Initech" {
		t.Errorf("Expected only Initech, got %+v", result)
	}

	result = Filter(contracts, FilterQuery{Search: "acme", Status: model.StatusPending})
	if len(result) != 0 {
		t.Errorf("Expected no matches, got %+v", result)
	}
}

func TestFilterIdempotent(t *testing.T) {
	contracts := sampleContracts()
	query := FilterQuery{Search: "acme", Status: AllStatus, Action: AllActions}

	once := Filter(contracts, query)
	twice := Filter(once, query)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filter not idempotent: %+v vs %+v", once, twice)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	contracts := sampleContracts()
	original := sampleContracts()

	Filter(contracts, FilterQuery{Search: "acme"})

	if !reflect.DeepEqual(contracts, original) {
		t.Error("Filter mutated its input")
	}
}

func TestFilterSearchOnlyMatch(t *testing.T) {
	collection := []model.Contract{
		{Company: "Acme", Ends: "2024-01-10", Status: model.StatusActive},
		{Company: "Globex", Ends: "TBD", Status: model.StatusPending},
	}

	result := Filter(collection, FilterQuery{Search: "acme", Status: AllStatus, Action: AllActions})
	if len(result) != 1 {
		t.Fatalf("Expected exactly 1 match, got %d", len(result))
	}
	if result[0].Company != "Acme" {
		t.Errorf("Expected the Acme record, got %s", result[0].Company)
	}
}
