package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategorySlot holds the stored best/next-best pair for one category.
// A nil field means the column is unset.
type CategorySlot struct {
	BestName   *string
	BestReason *string
	NextName   *string
	NextReason *string
}

// Empty reports whether no field of the slot is set.
func (s CategorySlot) Empty() bool {
	return s.BestName == nil && s.BestReason == nil && s.NextName == nil && s.NextReason == nil
}

// Recommendation is the single per-client recommendation record: one slot
// per category plus enrichment state. Exactly zero or one row exists per
// client.
type Recommendation struct {
	ID                 uuid.UUID
	ClientID           uuid.UUID
	Accounts           CategorySlot
	Connect            CategorySlot
	Insurance          CategorySlot
	Loan               CategorySlot
	EnrichmentComplete bool
	GeneratedAt        time.Time
}

// Slot returns a pointer to the sub-record for the category.
func (r *Recommendation) Slot(category Category) *CategorySlot {
	switch category {
	case CategoryAccounts:
		return &r.Accounts
	case CategoryConnect:
		return &r.Connect
	case CategoryInsurance:
		return &r.Insurance
	case CategoryLoan:
		return &r.Loan
	default:
		return nil
	}
}

// Merge overwrites only the slots present in updates, leaving every other
// category's stored fields untouched.
func (r *Recommendation) Merge(updates map[Category]CategorySlot) {
	for category, slot := range updates {
		if target := r.Slot(category); target != nil {
			*target = slot
		}
	}
}

// RiskBand maps a presage score to the coarse risk band used in reporting.
func RiskBand(score int) string {
	switch {
	case score >= 700:
		return "LOW"
	case score >= 600:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}
