// Package transport defines request/response DTOs for recommendations.
package transport

import "github.com/google/uuid"

// StoredRecommendation is the persisted best/next-best pair for one
// category, returned verbatim from storage.
type StoredRecommendation struct {
	BestProduct     *string `json:"best_product"`
	BestReason      *string `json:"best_reason"`
	NextBestProduct *string `json:"next_best_product"`
	NextBestReason  *string `json:"next_best_reason"`
}

// ProductSummary describes a freshly selected product on the interest path.
type ProductSummary struct {
	Name     string   `json:"name"`
	Benefits []string `json:"benefits"`
}

// InterestRecommendationResponse is the result of recommending for the
// client's declared primary interest.
type InterestRecommendationResponse struct {
	Category        string          `json:"category"`
	Blocked         bool            `json:"blocked,omitempty"`
	BestProduct     *ProductSummary `json:"best_product"`
	NextBestProduct *ProductSummary `json:"next_best_product,omitempty"`
}

// ProcessResponse is returned by the process-customer endpoint.
type ProcessResponse struct {
	ClientID        uuid.UUID             `json:"client_id"`
	FirstName       string                `json:"first_name"`
	Surname         string                `json:"surname"`
	PrimaryInterest string                `json:"primary_interest"`
	Recommendation  *StoredRecommendation `json:"recommendation"`
}
