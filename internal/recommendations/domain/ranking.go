package domain

import (
	"sort"
	"strings"
)

// FallbackReason is returned on the interest path when a selected product
// lists no benefits.
const FallbackReason = "Strong value offering"

// IsLoanCoded reports whether a product belongs to the loan-coded partition.
func IsLoanCoded(p Product) bool {
	return strings.Contains(p.ProductCode, "LOAN")
}

func minScore(p Product) int {
	if p.Rules == nil {
		return 0
	}
	return p.Rules.MinCreditScore
}

// SelectTop orders eligible products and returns the best and next-best.
// Ordering is by minimum credit score descending, stable so that catalog
// order decides ties. For the loan category, loan-coded products form a
// leading partition that outranks every other product regardless of score;
// the score ordering applies within each partition.
func SelectTop(category Category, eligible []Product) (best, next *Product) {
	if len(eligible) == 0 {
		return nil, nil
	}

	ranked := append([]Product(nil), eligible...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if category == CategoryLoan {
			loanI, loanJ := IsLoanCoded(ranked[i]), IsLoanCoded(ranked[j])
			if loanI != loanJ {
				return loanI
			}
		}
		return minScore(ranked[i]) > minScore(ranked[j])
	})

	best = &ranked[0]
	if len(ranked) > 1 {
		next = &ranked[1]
	}
	return best, next
}

// Reason joins the product's leading benefits into the stored reason text.
// The empty string is returned when the product has no benefits; callers on
// the interest path substitute FallbackReason.
func Reason(p Product, maxBenefits int) string {
	benefits := p.Benefits
	if len(benefits) > maxBenefits {
		benefits = benefits[:maxBenefits]
	}
	return strings.Join(benefits, ", ")
}
