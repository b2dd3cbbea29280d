// Package service provides the bureau profile resolver.
package service

import (
	"context"

	"github.com/google/uuid"

	"nerve_engine_backend/internal/bureau/client"
	"nerve_engine_backend/internal/bureau/repository"
	clientsrepo "nerve_engine_backend/internal/clients/repository"
	"nerve_engine_backend/internal/events"
	"nerve_engine_backend/platform/apperr"
	"nerve_engine_backend/platform/logger"
)

const bureauUnavailableMessage = "bureau unavailable"

// ProfileStore is the storage surface the resolver needs.
type ProfileStore interface {
	GetByClientID(ctx context.Context, clientID uuid.UUID) (repository.Profile, error)
	Create(ctx context.Context, params repository.CreateProfileParams) (repository.Profile, bool, error)
}

// Synthesizer performs a bureau enquiry for a client.
type Synthesizer interface {
	Synthesize(ctx context.Context, c clientsrepo.Client) (client.Enquiry, error)
}

// Service resolves bureau profiles: an existing profile is returned
// unchanged, otherwise one enquiry is made and persisted. Stored profiles
// are treated as permanently valid and are never re-fetched.
type Service struct {
	store ProfileStore
	synth Synthesizer
	bus   events.Bus
	log   *logger.Logger
}

// New creates a new bureau resolver service.
func New(store ProfileStore, synth Synthesizer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, synth: synth, bus: bus, log: log}
}

// Resolve returns the bureau profile for the client, synthesizing and
// persisting one when none exists. Any collaborator or storage failure is
// surfaced as an unavailable error; callers must not compute credit-gated
// recommendations without a full profile.
func (s *Service) Resolve(ctx context.Context, c clientsrepo.Client) (repository.Profile, error) {
	existing, err := s.store.GetByClientID(ctx, c.ID)
	if err == nil {
		return existing, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		s.log.BureauEvent("profile_lookup", c.ID.String(), false, err.Error())
		return repository.Profile{}, apperr.Wrap(apperr.KindUnavailable, bureauUnavailableMessage, err)
	}

	enquiry, err := s.synth.Synthesize(ctx, c)
	if err != nil {
		s.log.BureauEvent("enquiry", c.ID.String(), false, err.Error())
		return repository.Profile{}, apperr.Wrap(apperr.KindUnavailable, bureauUnavailableMessage, err)
	}

	fraudVerified := enquiry.FraudIDVerified
	employment := enquiry.EmploymentStatus

	profile, created, err := s.store.Create(ctx, repository.CreateProfileParams{
		ClientID:             c.ID,
		Bureau:               enquiry.Bureau,
		EnquiryReason:        enquiry.EnquiryReason,
		EnquiryDate:          enquiry.EnquiryDate,
		EnquiryType:          enquiry.EnquiryType,
		MaritalStatus:        enquiry.MaritalStatus,
		Gender:               enquiry.Gender,
		Title:                enquiry.Title,
		FirstName:            enquiry.FirstName,
		Surname:              enquiry.Surname,
		IDNumber:             enquiry.IDNumber,
		DateOfBirth:          enquiry.DateOfBirth,
		Cellular:             enquiry.Cellular,
		CurrentEmployer:      enquiry.CurrentEmployer,
		EmploymentStatus:     &employment,
		FraudIDVerified:      &fraudVerified,
		FraudDeceasedStatus:  enquiry.FraudDeceasedStatus,
		FraudFoundOnDatabase: enquiry.FraudFoundOnDatabase,
		PresageScore:         enquiry.PresageScore,
		NLRScore:             enquiry.NLRScore,
		RawPayload:           enquiry.RawPayload,
	})
	if err != nil {
		s.log.BureauEvent("profile_create", c.ID.String(), false, err.Error())
		return repository.Profile{}, apperr.Wrap(apperr.KindUnavailable, bureauUnavailableMessage, err)
	}

	if created {
		s.log.BureauEvent("profile_create", c.ID.String(), true, "")
		if s.bus != nil {
			s.bus.Publish(ctx, events.BureauProfileCreated{
				BaseEvent:    events.NewBaseEvent(),
				ClientID:     c.ID,
				PresageScore: profile.PresageScore,
			})
		}
	}

	return profile, nil
}

// Lookup returns the stored profile without triggering enrichment.
func (s *Service) Lookup(ctx context.Context, clientID uuid.UUID) (repository.Profile, error) {
	return s.store.GetByClientID(ctx, clientID)
}
