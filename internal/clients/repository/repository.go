// Package repository provides read access to client records. Clients are
// created and owned by the external client-management system; this service
// only reads them.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nerve_engine_backend/platform/apperr"
)

const clientNotFoundMessage = "client not found"

// Client is a customer record as stored by the client-management system.
type Client struct {
	ID              uuid.UUID
	FirstName       string
	Surname         string
	IDNumber        string
	Phone           string
	Email           *string
	DateOfBirth     string
	PrimaryInterest string
	OwnsCar         bool
	OwnsHome        bool
}

// Repo implements the clients read repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Nullable text-ish columns are coalesced so a client without a birth date or
// interest still scans; one NULL row must never fail a read.
const clientColumns = `id, first_name, surname, id_number, phone, email,
		COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), ''), COALESCE(primary_interest, ''), owns_car, owns_home`

// GetByID retrieves a client by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1`, clientColumns)

	var client Client
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&client.ID, &client.FirstName, &client.Surname, &client.IDNumber,
		&client.Phone, &client.Email, &client.DateOfBirth,
		&client.PrimaryInterest, &client.OwnsCar, &client.OwnsHome,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("get client by id: %w", err)
	}

	return client, nil
}

// ListWithPrimaryInterest retrieves every client whose primary interest is
// set. The auto-processor iterates this list each cycle.
func (r *Repo) ListWithPrimaryInterest(ctx context.Context) ([]Client, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM clients
		WHERE primary_interest IS NOT NULL AND primary_interest <> ''
		ORDER BY created_at`, clientColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients with primary interest: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var client Client
		if err := rows.Scan(
			&client.ID, &client.FirstName, &client.Surname, &client.IDNumber,
			&client.Phone, &client.Email, &client.DateOfBirth,
			&client.PrimaryInterest, &client.OwnsCar, &client.OwnsHome,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}
