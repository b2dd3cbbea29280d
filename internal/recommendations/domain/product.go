package domain

import "github.com/google/uuid"

// EligibilityRules is the optional structured predicate attached to a
// product. Zero values are the documented defaults: no score floor, no
// credit check, no employment requirement.
type EligibilityRules struct {
	MinCreditScore     int  `json:"min_credit_score"`
	CreditCheck        bool `json:"credit_check"`
	EmploymentRequired bool `json:"employment_required"`
}

// Product is a catalog product in the accounts, connect or loan lines.
type Product struct {
	ID          uuid.UUID
	Option      int
	ProductCode string
	ProductName string
	Benefits    []string
	Rules       *EligibilityRules
}

// InsuranceProduct is a product in the insurance line; relevance is scored
// from client attributes rather than credit rules.
type InsuranceProduct struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
}
