package domain

import "testing"

func TestParseCategoryUnifiesEverySpelling(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
	}{
		{"1", CategoryAccounts},
		{"2", CategoryConnect},
		{"3", CategoryInsurance},
		{"4", CategoryLoan},
		{"Accounts", CategoryAccounts},
		{"FNB Accounts", CategoryAccounts},
		{"Account Opening", CategoryAccounts},
		{"Connect", CategoryConnect},
		{"FNB Connect", CategoryConnect},
		{"Insurance", CategoryInsurance},
		{"FNB Insurance", CategoryInsurance},
		{"Loan", CategoryLoan},
		{"FNB Loan", CategoryLoan},
		{"  FNB Loan  ", CategoryLoan},
	}

	for _, tc := range cases {
		got, ok := ParseCategory(tc.raw)
		if !ok {
			t.Fatalf("ParseCategory(%q): expected match, got none", tc.raw)
		}
		if got != tc.want {
			t.Fatalf("ParseCategory(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseCategoryFailsClosed(t *testing.T) {
	for _, raw := range []string{"", "5", "0", "accounts", "Mortgage", "FNB"} {
		if got, ok := ParseCategory(raw); ok {
			t.Fatalf("ParseCategory(%q): expected no match, got %v", raw, got)
		}
	}
}

func TestCategoryOptionMatchesCatalogIDs(t *testing.T) {
	if CategoryAccounts.Option() != 1 || CategoryConnect.Option() != 2 ||
		CategoryInsurance.Option() != 3 || CategoryLoan.Option() != 4 {
		t.Fatalf("category options out of order: %d %d %d %d",
			CategoryAccounts.Option(), CategoryConnect.Option(),
			CategoryInsurance.Option(), CategoryLoan.Option())
	}
}

func TestCategoryString(t *testing.T) {
	cases := map[Category]string{
		CategoryAccounts:  "accounts",
		CategoryConnect:   "connect",
		CategoryInsurance: "insurance",
		CategoryLoan:      "loan",
		CategoryUnknown:   "unknown",
	}
	for category, want := range cases {
		if got := category.String(); got != want {
			t.Fatalf("Category(%d).String() = %q, want %q", category, got, want)
		}
	}
}
