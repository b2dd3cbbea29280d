// Package service provides the recommendation orchestrator: it composes the
// bureau resolver, the eligibility and ranking logic, and the persistence
// layer into the generate-all and recommend-for-interest entry points.
package service

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	bureaurepo "nerve_engine_backend/internal/bureau/repository"
	clientsrepo "nerve_engine_backend/internal/clients/repository"
	"nerve_engine_backend/internal/events"
	"nerve_engine_backend/internal/recommendations/domain"
	"nerve_engine_backend/internal/recommendations/transport"
	"nerve_engine_backend/platform/apperr"
	"nerve_engine_backend/platform/logger"
	"nerve_engine_backend/platform/validator"
)

const (
	// blockedProductName is the sentinel returned when the bureau explicitly
	// failed fraud identity verification. Absence of the flag is not failure.
	blockedProductName = "Application Blocked"

	mergedReasonBenefits   = 2
	interestReasonBenefits = 3
)

// recommendationNamespace seeds the deterministic id used when the interest
// path inserts a fresh record.
var recommendationNamespace = uuid.MustParse("f8a2e1c4-7b3d-4e5f-9a60-1c2d3e4f5a6b")

// Store is the storage surface the orchestrator needs.
type Store interface {
	ListProducts(ctx context.Context, option int) ([]domain.Product, error)
	ListActiveInsuranceProducts(ctx context.Context) ([]domain.InsuranceProduct, error)
	InsuranceCategoryNames(ctx context.Context) (map[uuid.UUID]string, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID) (domain.Recommendation, error)
	Upsert(ctx context.Context, rec domain.Recommendation) error
	UpdateCategory(ctx context.Context, clientID uuid.UUID, category domain.Category, slot domain.CategorySlot) error
}

// ClientReader loads client records.
type ClientReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (clientsrepo.Client, error)
}

// BureauResolver resolves bureau profiles.
type BureauResolver interface {
	// Resolve returns the profile, synthesizing one when missing.
	Resolve(ctx context.Context, c clientsrepo.Client) (bureaurepo.Profile, error)
	// Lookup returns the stored profile without triggering enrichment.
	Lookup(ctx context.Context, clientID uuid.UUID) (bureaurepo.Profile, error)
}

// Service orchestrates recommendation generation.
type Service struct {
	store    Store
	clients  ClientReader
	bureau   BureauResolver
	bus      events.Bus
	validate *validator.Validator
	log      *logger.Logger
}

// New creates a new recommendation service.
func New(store Store, clients ClientReader, bureau BureauResolver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		clients:  clients,
		bureau:   bureau,
		bus:      bus,
		validate: validator.New(),
		log:      log,
	}
}

// GenerateAll recomputes every category for the client and merges the result
// into the stored recommendation record. Categories without eligible
// products keep their stored values. When no bureau profile exists yet this
// is a no-op; GenerateAll never triggers enrichment.
func (s *Service) GenerateAll(ctx context.Context, client clientsrepo.Client) error {
	profile, err := s.bureau.Lookup(ctx, client.ID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	credit := creditProfile(profile)

	updates := make(map[domain.Category]domain.CategorySlot)
	for _, category := range []domain.Category{domain.CategoryAccounts, domain.CategoryConnect, domain.CategoryLoan} {
		products, err := s.store.ListProducts(ctx, category.Option())
		if err != nil {
			return err
		}

		eligible := domain.EligibleProducts(products, credit)
		best, next := domain.SelectTop(category, eligible)
		if best == nil {
			continue
		}

		updates[category] = productSlot(best, next, mergedReasonBenefits, "")
	}

	insuranceSlot, err := s.scoreInsuranceSlot(ctx, client)
	if err != nil {
		return err
	}
	if insuranceSlot != nil {
		updates[domain.CategoryInsurance] = *insuranceSlot
	}

	rec, err := s.store.GetByClientID(ctx, client.ID)
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		rec = domain.Recommendation{
			ID:       uuid.New(),
			ClientID: client.ID,
		}
	}

	rec.EnrichmentComplete = true
	rec.GeneratedAt = time.Now().UTC()
	rec.Merge(updates)

	if err := s.store.Upsert(ctx, rec); err != nil {
		return err
	}

	categories := make([]string, 0, len(updates))
	for category := range updates {
		categories = append(categories, category.String())
	}

	s.log.Debug("recommendations generated",
		"client_id", client.ID,
		"risk_band", domain.RiskBand(credit.PresageScore),
		"categories", categories,
	)

	if s.bus != nil {
		s.bus.Publish(ctx, events.RecommendationGenerated{
			BaseEvent:  events.NewBaseEvent(),
			ClientID:   client.ID,
			Categories: categories,
		})
	}

	return nil
}

// RecommendForInterest recommends for the client's declared primary
// interest. Unlike GenerateAll it triggers enrichment when no profile
// exists. A profile whose fraud identity verification explicitly failed
// yields the blocked sentinel with no persistence.
func (s *Service) RecommendForInterest(ctx context.Context, client clientsrepo.Client) (transport.InterestRecommendationResponse, error) {
	category, ok := domain.ParseCategory(client.PrimaryInterest)
	if !ok {
		return transport.InterestRecommendationResponse{}, apperr.Validation("unmapped primary interest")
	}

	profile, err := s.bureau.Resolve(ctx, client)
	if err != nil {
		return transport.InterestRecommendationResponse{}, err
	}

	if profile.FraudIDVerified != nil && !*profile.FraudIDVerified {
		return transport.InterestRecommendationResponse{
			Category:    category.String(),
			Blocked:     true,
			BestProduct: &transport.ProductSummary{Name: blockedProductName},
		}, nil
	}

	var slot domain.CategorySlot
	var response transport.InterestRecommendationResponse
	response.Category = category.String()

	if category == domain.CategoryInsurance {
		insuranceSlot, err := s.scoreInsuranceSlot(ctx, client)
		if err != nil {
			return transport.InterestRecommendationResponse{}, err
		}
		if insuranceSlot == nil {
			return response, nil
		}
		slot = *insuranceSlot
		response.BestProduct = &transport.ProductSummary{Name: deref(slot.BestName)}
		if slot.NextName != nil {
			response.NextBestProduct = &transport.ProductSummary{Name: *slot.NextName}
		}
	} else {
		products, err := s.store.ListProducts(ctx, category.Option())
		if err != nil {
			return transport.InterestRecommendationResponse{}, err
		}

		eligible := domain.EligibleProducts(products, creditProfile(profile))
		best, next := domain.SelectTop(category, eligible)
		if best == nil {
			return response, nil
		}

		slot = productSlot(best, next, interestReasonBenefits, domain.FallbackReason)
		response.BestProduct = &transport.ProductSummary{Name: best.ProductName, Benefits: best.Benefits}
		if next != nil {
			response.NextBestProduct = &transport.ProductSummary{Name: next.ProductName, Benefits: next.Benefits}
		}
	}

	if err := s.saveCategory(ctx, client.ID, category, slot); err != nil {
		return transport.InterestRecommendationResponse{}, err
	}

	return response, nil
}

// LookupStored maps the client's primary interest to a category and returns
// that category's stored fields verbatim. Nil when the interest is unmapped
// or no record exists; nothing is recomputed.
func (s *Service) LookupStored(ctx context.Context, client clientsrepo.Client) (*transport.StoredRecommendation, error) {
	category, ok := domain.ParseCategory(client.PrimaryInterest)
	if !ok {
		return nil, nil
	}

	rec, err := s.store.GetByClientID(ctx, client.ID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	slot := rec.Slot(category)
	return &transport.StoredRecommendation{
		BestProduct:     slot.BestName,
		BestReason:      slot.BestReason,
		NextBestProduct: slot.NextName,
		NextBestReason:  slot.NextReason,
	}, nil
}

// Process is the request-driven entry point: load and validate the client,
// ensure the bureau profile exists, regenerate every category, and return
// the stored fields for the client's primary interest.
func (s *Service) Process(ctx context.Context, clientID uuid.UUID) (transport.ProcessResponse, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return transport.ProcessResponse{}, err
	}

	if missing := s.missingRequiredFields(client); len(missing) > 0 {
		return transport.ProcessResponse{}, apperr.Validation("client missing required fields").WithDetails(missing)
	}

	if _, err := s.bureau.Resolve(ctx, client); err != nil {
		return transport.ProcessResponse{}, err
	}

	if err := s.GenerateAll(ctx, client); err != nil {
		return transport.ProcessResponse{}, err
	}

	stored, err := s.LookupStored(ctx, client)
	if err != nil {
		return transport.ProcessResponse{}, err
	}

	return transport.ProcessResponse{
		ClientID:        client.ID,
		FirstName:       client.FirstName,
		Surname:         client.Surname,
		PrimaryInterest: client.PrimaryInterest,
		Recommendation:  stored,
	}, nil
}

// RecommendForInterestByID loads the client and recommends for their
// declared primary interest.
func (s *Service) RecommendForInterestByID(ctx context.Context, clientID uuid.UUID) (transport.InterestRecommendationResponse, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return transport.InterestRecommendationResponse{}, err
	}
	return s.RecommendForInterest(ctx, client)
}

// LookupStoredByID loads the client and returns the stored recommendation
// for their primary interest.
func (s *Service) LookupStoredByID(ctx context.Context, clientID uuid.UUID) (*transport.StoredRecommendation, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.LookupStored(ctx, client)
}

// saveCategory persists a single category: partial update when a record
// exists, otherwise an insert with a deterministic id so retries converge
// on the same row.
func (s *Service) saveCategory(ctx context.Context, clientID uuid.UUID, category domain.Category, slot domain.CategorySlot) error {
	err := s.store.UpdateCategory(ctx, clientID, category, slot)
	if err == nil {
		return nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return err
	}

	rec := domain.Recommendation{
		ID:                 deterministicRecommendationID(clientID, category),
		ClientID:           clientID,
		EnrichmentComplete: true,
		GeneratedAt:        time.Now().UTC(),
	}
	*rec.Slot(category) = slot

	return s.store.Upsert(ctx, rec)
}

func (s *Service) scoreInsuranceSlot(ctx context.Context, client clientsrepo.Client) (*domain.CategorySlot, error) {
	products, err := s.store.ListActiveInsuranceProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	names, err := s.store.InsuranceCategoryNames(ctx)
	if err != nil {
		return nil, err
	}

	scored := domain.ScoreInsurance(products, names, domain.PolicyHolder{
		OwnsCar:  client.OwnsCar,
		OwnsHome: client.OwnsHome,
	})

	slot := domain.CategorySlot{
		BestName:   strPtr(scored[0].Product.Name),
		BestReason: strPtr(scored[0].Product.Description),
	}
	if len(scored) > 1 {
		slot.NextName = strPtr(scored[1].Product.Name)
		slot.NextReason = strPtr(scored[1].Product.Description)
	}

	return &slot, nil
}

func productSlot(best, next *domain.Product, maxBenefits int, fallbackReason string) domain.CategorySlot {
	slot := domain.CategorySlot{
		BestName:   strPtr(best.ProductName),
		BestReason: strPtr(reasonOrFallback(*best, maxBenefits, fallbackReason)),
	}
	if next != nil {
		slot.NextName = strPtr(next.ProductName)
		slot.NextReason = strPtr(reasonOrFallback(*next, maxBenefits, fallbackReason))
	}
	return slot
}

func reasonOrFallback(p domain.Product, maxBenefits int, fallback string) string {
	reason := domain.Reason(p, maxBenefits)
	if reason == "" && fallback != "" {
		return fallback
	}
	return reason
}

func deterministicRecommendationID(clientID uuid.UUID, category domain.Category) uuid.UUID {
	return uuid.NewSHA1(recommendationNamespace, []byte(clientID.String()+":"+category.String()))
}

func creditProfile(profile bureaurepo.Profile) domain.CreditProfile {
	credit := domain.CreditProfile{PresageScore: profile.PresageScore}
	if profile.EmploymentStatus != nil {
		credit.EmploymentStatus = *profile.EmploymentStatus
	}
	return credit
}

// requiredClientFields mirrors the client columns that must be populated
// before the pipeline may run.
type requiredClientFields struct {
	FirstName       string `validate:"required"`
	Surname         string `validate:"required"`
	IDNumber        string `validate:"required"`
	PrimaryInterest string `validate:"required"`
}

var requiredFieldColumns = map[string]string{
	"FirstName":       "first_name",
	"Surname":         "surname",
	"IDNumber":        "id_number",
	"PrimaryInterest": "primary_interest",
}

func (s *Service) missingRequiredFields(client clientsrepo.Client) []string {
	err := s.validate.Struct(requiredClientFields{
		FirstName:       client.FirstName,
		Surname:         client.Surname,
		IDNumber:        client.IDNumber,
		PrimaryInterest: client.PrimaryInterest,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validation.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"client"}
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		missing = append(missing, requiredFieldColumns[fieldErr.Field()])
	}
	return missing
}

func strPtr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
