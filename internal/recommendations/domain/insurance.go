package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Insurance category names with scoring rules attached.
const (
	carInsurance    = "Car Insurance"
	homeInsurance   = "Home Insurance"
	lifeInsurance   = "Life Insurance"
	healthInsurance = "Health Insurance"
)

// PolicyHolder carries the client attributes insurance relevance reads.
type PolicyHolder struct {
	OwnsCar  bool
	OwnsHome bool
}

// ScoredInsurance pairs an insurance product with its relevance score.
type ScoredInsurance struct {
	Score   int
	Product InsuranceProduct
}

// ScoreInsurance scores each product by how relevant its category is to the
// policy holder and returns the list sorted by score descending, stable on
// ties so catalog order is preserved. Category ids that do not resolve map
// to the empty name and score zero.
func ScoreInsurance(products []InsuranceProduct, categoryNames map[uuid.UUID]string, holder PolicyHolder) []ScoredInsurance {
	scored := make([]ScoredInsurance, 0, len(products))

	for _, product := range products {
		score := 0

		switch categoryNames[product.CategoryID] {
		case carInsurance:
			if holder.OwnsCar {
				score += 3
			}
		case homeInsurance:
			if holder.OwnsHome {
				score += 3
			}
		case lifeInsurance:
			score += 2
		case healthInsurance:
			score += 1
		}

		scored = append(scored, ScoredInsurance{Score: score, Product: product})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
