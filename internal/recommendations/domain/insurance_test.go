package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestScoreInsuranceRelevanceOrdering(t *testing.T) {
	carID := uuid.New()
	homeID := uuid.New()
	lifeID := uuid.New()
	healthID := uuid.New()

	names := map[uuid.UUID]string{
		carID:    "Car Insurance",
		homeID:   "Home Insurance",
		lifeID:   "Life Insurance",
		healthID: "Health Insurance",
	}

	products := []InsuranceProduct{
		{Name: "Health Cover", CategoryID: healthID},
		{Name: "Life Cover", CategoryID: lifeID},
		{Name: "Car Cover", CategoryID: carID},
		{Name: "Home Cover", CategoryID: homeID},
	}

	scored := ScoreInsurance(products, names, PolicyHolder{OwnsCar: true})

	wantOrder := []string{"Car Cover", "Life Cover", "Health Cover", "Home Cover"}
	for i, want := range wantOrder {
		if scored[i].Product.Name != want {
			t.Fatalf("position %d: got %q, want %q", i, scored[i].Product.Name, want)
		}
	}
	if scored[0].Score != 3 || scored[1].Score != 2 || scored[2].Score != 1 || scored[3].Score != 0 {
		t.Fatalf("unexpected scores: %d %d %d %d",
			scored[0].Score, scored[1].Score, scored[2].Score, scored[3].Score)
	}
}

func TestScoreInsuranceStableOnTies(t *testing.T) {
	lifeID := uuid.New()
	names := map[uuid.UUID]string{lifeID: "Life Insurance"}

	products := []InsuranceProduct{
		{Name: "Life A", CategoryID: lifeID},
		{Name: "Life B", CategoryID: lifeID},
	}

	scored := ScoreInsurance(products, names, PolicyHolder{})
	if scored[0].Product.Name != "Life A" || scored[1].Product.Name != "Life B" {
		t.Fatalf("tie must keep catalog order, got %q then %q",
			scored[0].Product.Name, scored[1].Product.Name)
	}
}

func TestScoreInsuranceUnknownCategoryScoresZero(t *testing.T) {
	scored := ScoreInsurance([]InsuranceProduct{
		{Name: "Mystery Cover", CategoryID: uuid.New()},
	}, map[uuid.UUID]string{}, PolicyHolder{OwnsCar: true, OwnsHome: true})

	if len(scored) != 1 || scored[0].Score != 0 {
		t.Fatalf("unknown category must score zero, got %+v", scored)
	}
}
