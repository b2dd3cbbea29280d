package domain

// CreditProfile is the slice of bureau data that eligibility rules read.
type CreditProfile struct {
	PresageScore     int
	EmploymentStatus string
}

// Employed reports whether the profile carries any employment status.
func (p CreditProfile) Employed() bool {
	return p.EmploymentStatus != ""
}

// EligibleProducts filters products against the bureau profile. A product
// with no rules is always eligible; rule fields default to zero values, so
// absence of a predicate never excludes. A presage score equal to the
// minimum passes the credit check.
func EligibleProducts(products []Product, profile CreditProfile) []Product {
	eligible := make([]Product, 0, len(products))

	for _, product := range products {
		rules := EligibilityRules{}
		if product.Rules != nil {
			rules = *product.Rules
		}

		if rules.CreditCheck && profile.PresageScore < rules.MinCreditScore {
			continue
		}
		if rules.EmploymentRequired && !profile.Employed() {
			continue
		}

		eligible = append(eligible, product)
	}

	return eligible
}
