// Package domain contains the recommendation decision logic: category
// mapping, eligibility filtering, ranking and selection, insurance relevance
// scoring, and the recommendation record shape.
package domain

import "strings"

// Category is one of the four product lines.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryAccounts
	CategoryConnect
	CategoryInsurance
	CategoryLoan
)

// Categories lists the product lines in catalog option order.
var Categories = []Category{CategoryAccounts, CategoryConnect, CategoryInsurance, CategoryLoan}

// Option returns the numeric option id used by the product catalog.
func (c Category) Option() int {
	return int(c)
}

func (c Category) String() string {
	switch c {
	case CategoryAccounts:
		return "accounts"
	case CategoryConnect:
		return "connect"
	case CategoryInsurance:
		return "insurance"
	case CategoryLoan:
		return "loan"
	default:
		return "unknown"
	}
}

// interestMap unifies every primary-interest spelling the system accepts:
// option numbers and all known labels. Anything else fails closed.
var interestMap = map[string]Category{
	"1":               CategoryAccounts,
	"2":               CategoryConnect,
	"3":               CategoryInsurance,
	"4":               CategoryLoan,
	"Accounts":        CategoryAccounts,
	"FNB Accounts":    CategoryAccounts,
	"Account Opening": CategoryAccounts,
	"Connect":         CategoryConnect,
	"FNB Connect":     CategoryConnect,
	"Insurance":       CategoryInsurance,
	"FNB Insurance":   CategoryInsurance,
	"Loan":            CategoryLoan,
	"FNB Loan":        CategoryLoan,
}

// ParseCategory maps a raw primary-interest value to a Category.
// Returns false for anything outside the accepted set.
func ParseCategory(raw string) (Category, bool) {
	category, ok := interestMap[strings.TrimSpace(raw)]
	return category, ok
}
