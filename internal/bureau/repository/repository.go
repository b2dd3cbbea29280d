// Package repository provides storage for bureau profiles.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nerve_engine_backend/platform/apperr"
)

const profileNotFoundMessage = "bureau profile not found"

// Profile is the stored bureau enrichment record for a client. A profile is
// written once and never refreshed.
type Profile struct {
	ID       uuid.UUID
	ClientID uuid.UUID

	Bureau        string
	EnquiryReason string
	EnquiryDate   time.Time
	EnquiryType   string

	MaritalStatus   string
	Gender          string
	Title           string
	FirstName       string
	Surname         string
	IDNumber        string
	DateOfBirth     string
	Cellular        string
	CurrentEmployer string

	EmploymentStatus *string

	FraudIDVerified      *bool
	FraudDeceasedStatus  string
	FraudFoundOnDatabase bool

	PresageScore int
	NLRScore     int

	RawPayload json.RawMessage
	CreatedAt  time.Time
}

// CreateProfileParams carries the fields for a new profile row.
type CreateProfileParams struct {
	ClientID uuid.UUID

	Bureau        string
	EnquiryReason string
	EnquiryDate   time.Time
	EnquiryType   string

	MaritalStatus   string
	Gender          string
	Title           string
	FirstName       string
	Surname         string
	IDNumber        string
	DateOfBirth     string
	Cellular        string
	CurrentEmployer string

	EmploymentStatus *string

	FraudIDVerified      *bool
	FraudDeceasedStatus  string
	FraudFoundOnDatabase bool

	PresageScore int
	NLRScore     int

	RawPayload json.RawMessage
}

// Repo implements the bureau profile repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bureau repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const profileColumns = `id, client_id, bureau, enquiry_reason, enquiry_date, enquiry_type,
		marital_status, gender, title, first_name, surname, id_number,
		COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), ''), cellular, current_employer, employment_status,
		fraud_id_verified, fraud_deceased_status, fraud_found_on_database,
		presage_score, nlr_score, raw_payload, created_at`

// GetByClientID retrieves the profile for a client, if one exists.
func (r *Repo) GetByClientID(ctx context.Context, clientID uuid.UUID) (Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM bureau_profiles WHERE client_id = $1`, profileColumns)

	profile, err := r.scanProfile(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, apperr.NotFound(profileNotFoundMessage)
		}
		return Profile{}, fmt.Errorf("get bureau profile: %w", err)
	}

	return profile, nil
}

// An empty birth date string stores as NULL rather than failing the cast.
var createProfileQuery = fmt.Sprintf(`
		INSERT INTO bureau_profiles (
			client_id, bureau, enquiry_reason, enquiry_date, enquiry_type,
			marital_status, gender, title, first_name, surname, id_number,
			date_of_birth, cellular, current_employer, employment_status,
			fraud_id_verified, fraud_deceased_status, fraud_found_on_database,
			presage_score, nlr_score, raw_payload
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			NULLIF($12, '')::date, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (client_id) DO NOTHING
		RETURNING %s`, profileColumns)

// Create inserts a profile with first-write-wins semantics: the unique
// constraint on client_id plus ON CONFLICT DO NOTHING means a concurrent
// insert for the same client leaves exactly one row. The stored row is
// returned either way, with created reporting whether this call wrote it.
func (r *Repo) Create(ctx context.Context, params CreateProfileParams) (Profile, bool, error) {
	profile, err := r.scanProfile(r.pool.QueryRow(ctx, createProfileQuery,
		params.ClientID, params.Bureau, params.EnquiryReason, params.EnquiryDate, params.EnquiryType,
		params.MaritalStatus, params.Gender, params.Title, params.FirstName, params.Surname,
		params.IDNumber, params.DateOfBirth, params.Cellular, params.CurrentEmployer,
		params.EmploymentStatus, params.FraudIDVerified, params.FraudDeceasedStatus,
		params.FraudFoundOnDatabase, params.PresageScore, params.NLRScore, params.RawPayload,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the race; the winner's row is authoritative.
			existing, getErr := r.GetByClientID(ctx, params.ClientID)
			if getErr != nil {
				return Profile{}, false, getErr
			}
			return existing, false, nil
		}
		return Profile{}, false, fmt.Errorf("create bureau profile: %w", err)
	}

	return profile, true, nil
}

func (r *Repo) scanProfile(row pgx.Row) (Profile, error) {
	var profile Profile
	err := row.Scan(
		&profile.ID, &profile.ClientID, &profile.Bureau, &profile.EnquiryReason,
		&profile.EnquiryDate, &profile.EnquiryType, &profile.MaritalStatus,
		&profile.Gender, &profile.Title, &profile.FirstName, &profile.Surname,
		&profile.IDNumber, &profile.DateOfBirth, &profile.Cellular,
		&profile.CurrentEmployer, &profile.EmploymentStatus,
		&profile.FraudIDVerified, &profile.FraudDeceasedStatus,
		&profile.FraudFoundOnDatabase, &profile.PresageScore, &profile.NLRScore,
		&profile.RawPayload, &profile.CreatedAt,
	)
	return profile, err
}
