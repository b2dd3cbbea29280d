// Package repository provides storage for the product catalog and
// recommendation records.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nerve_engine_backend/internal/recommendations/domain"
	"nerve_engine_backend/platform/apperr"
)

const recommendationNotFoundMessage = "recommendation not found"

// Repo implements the recommendations repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new recommendations repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListProducts retrieves the active products for a catalog option in catalog
// order. Ranking relies on this order to break ties, so the position sort is
// load-bearing.
func (r *Repo) ListProducts(ctx context.Context, option int) ([]domain.Product, error) {
	query := `
		SELECT id, option, product_code, product_name, benefits, eligibility_rules
		FROM products
		WHERE option = $1 AND active
		ORDER BY position, created_at`

	rows, err := r.pool.Query(ctx, query, option)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		var benefitsRaw, rulesRaw []byte
		if err := rows.Scan(
			&product.ID, &product.Option, &product.ProductCode,
			&product.ProductName, &benefitsRaw, &rulesRaw,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		if len(benefitsRaw) > 0 {
			if err := json.Unmarshal(benefitsRaw, &product.Benefits); err != nil {
				return nil, fmt.Errorf("decode product benefits: %w", err)
			}
		}
		if len(rulesRaw) > 0 {
			rules := domain.EligibilityRules{}
			if err := json.Unmarshal(rulesRaw, &rules); err != nil {
				return nil, fmt.Errorf("decode eligibility rules: %w", err)
			}
			product.Rules = &rules
		}

		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// ListActiveInsuranceProducts retrieves the active insurance catalog in
// catalog order.
func (r *Repo) ListActiveInsuranceProducts(ctx context.Context) ([]domain.InsuranceProduct, error) {
	query := `
		SELECT id, category_id, name, COALESCE(description, '')
		FROM insurance_products
		WHERE active
		ORDER BY position, created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list insurance products: %w", err)
	}
	defer rows.Close()

	var products []domain.InsuranceProduct
	for rows.Next() {
		var product domain.InsuranceProduct
		if err := rows.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description); err != nil {
			return nil, fmt.Errorf("scan insurance product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate insurance products: %w", err)
	}

	return products, nil
}

// InsuranceCategoryNames retrieves the category id to name lookup.
func (r *Repo) InsuranceCategoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM insurance_categories`)
	if err != nil {
		return nil, fmt.Errorf("list insurance categories: %w", err)
	}
	defer rows.Close()

	names := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan insurance category: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate insurance categories: %w", err)
	}

	return names, nil
}

const recommendationColumns = `id, client_id,
		account_rec_1_name, account_rec_1_reason, account_rec_2_name, account_rec_2_reason,
		connect_rec_1_name, connect_rec_1_reason, connect_rec_2_name, connect_rec_2_reason,
		insurance_rec_1_name, insurance_rec_1_reason, insurance_rec_2_name, insurance_rec_2_reason,
		loan_rec_1_name, loan_rec_1_reason, loan_rec_2_name, loan_rec_2_reason,
		enrichment_complete, generated_at`

// GetByClientID retrieves the recommendation record for a client.
func (r *Repo) GetByClientID(ctx context.Context, clientID uuid.UUID) (domain.Recommendation, error) {
	query := fmt.Sprintf(`SELECT %s FROM recommendations WHERE client_id = $1`, recommendationColumns)

	rec, err := scanRecommendation(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Recommendation{}, apperr.NotFound(recommendationNotFoundMessage)
		}
		return domain.Recommendation{}, fmt.Errorf("get recommendation: %w", err)
	}

	return rec, nil
}

// Upsert writes the full recommendation record, inserting or replacing on
// the client id. Callers merge unchanged category slots into rec before
// calling, so the write never clobbers categories they did not recompute.
func (r *Repo) Upsert(ctx context.Context, rec domain.Recommendation) error {
	query := `
		INSERT INTO recommendations (
			id, client_id,
			account_rec_1_name, account_rec_1_reason, account_rec_2_name, account_rec_2_reason,
			connect_rec_1_name, connect_rec_1_reason, connect_rec_2_name, connect_rec_2_reason,
			insurance_rec_1_name, insurance_rec_1_reason, insurance_rec_2_name, insurance_rec_2_reason,
			loan_rec_1_name, loan_rec_1_reason, loan_rec_2_name, loan_rec_2_reason,
			enrichment_complete, generated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (client_id) DO UPDATE SET
			account_rec_1_name = EXCLUDED.account_rec_1_name,
			account_rec_1_reason = EXCLUDED.account_rec_1_reason,
			account_rec_2_name = EXCLUDED.account_rec_2_name,
			account_rec_2_reason = EXCLUDED.account_rec_2_reason,
			connect_rec_1_name = EXCLUDED.connect_rec_1_name,
			connect_rec_1_reason = EXCLUDED.connect_rec_1_reason,
			connect_rec_2_name = EXCLUDED.connect_rec_2_name,
			connect_rec_2_reason = EXCLUDED.connect_rec_2_reason,
			insurance_rec_1_name = EXCLUDED.insurance_rec_1_name,
			insurance_rec_1_reason = EXCLUDED.insurance_rec_1_reason,
			insurance_rec_2_name = EXCLUDED.insurance_rec_2_name,
			insurance_rec_2_reason = EXCLUDED.insurance_rec_2_reason,
			loan_rec_1_name = EXCLUDED.loan_rec_1_name,
			loan_rec_1_reason = EXCLUDED.loan_rec_1_reason,
			loan_rec_2_name = EXCLUDED.loan_rec_2_name,
			loan_rec_2_reason = EXCLUDED.loan_rec_2_reason,
			enrichment_complete = EXCLUDED.enrichment_complete,
			generated_at = EXCLUDED.generated_at`

	if _, err := r.pool.Exec(ctx, query,
		rec.ID, rec.ClientID,
		rec.Accounts.BestName, rec.Accounts.BestReason, rec.Accounts.NextName, rec.Accounts.NextReason,
		rec.Connect.BestName, rec.Connect.BestReason, rec.Connect.NextName, rec.Connect.NextReason,
		rec.Insurance.BestName, rec.Insurance.BestReason, rec.Insurance.NextName, rec.Insurance.NextReason,
		rec.Loan.BestName, rec.Loan.BestReason, rec.Loan.NextName, rec.Loan.NextReason,
		rec.EnrichmentComplete, rec.GeneratedAt,
	); err != nil {
		return fmt.Errorf("upsert recommendation: %w", err)
	}

	return nil
}

// UpdateCategory performs a partial update of a single category's four
// columns plus the generation timestamp.
func (r *Repo) UpdateCategory(ctx context.Context, clientID uuid.UUID, category domain.Category, slot domain.CategorySlot) error {
	prefix, err := columnPrefix(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE recommendations
		SET %[1]s_rec_1_name = $2,
			%[1]s_rec_1_reason = $3,
			%[1]s_rec_2_name = $4,
			%[1]s_rec_2_reason = $5,
			generated_at = now()
		WHERE client_id = $1`, prefix)

	result, err := r.pool.Exec(ctx, query, clientID,
		slot.BestName, slot.BestReason, slot.NextName, slot.NextReason)
	if err != nil {
		return fmt.Errorf("update recommendation category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(recommendationNotFoundMessage)
	}

	return nil
}

func columnPrefix(category domain.Category) (string, error) {
	switch category {
	case domain.CategoryAccounts:
		return "account", nil
	case domain.CategoryConnect:
		return "connect", nil
	case domain.CategoryInsurance:
		return "insurance", nil
	case domain.CategoryLoan:
		return "loan", nil
	default:
		return "", fmt.Errorf("no column prefix for category %d", category)
	}
}

func scanRecommendation(row pgx.Row) (domain.Recommendation, error) {
	var rec domain.Recommendation
	err := row.Scan(
		&rec.ID, &rec.ClientID,
		&rec.Accounts.BestName, &rec.Accounts.BestReason, &rec.Accounts.NextName, &rec.Accounts.NextReason,
		&rec.Connect.BestName, &rec.Connect.BestReason, &rec.Connect.NextName, &rec.Connect.NextReason,
		&rec.Insurance.BestName, &rec.Insurance.BestReason, &rec.Insurance.NextName, &rec.Insurance.NextReason,
		&rec.Loan.BestName, &rec.Loan.BestReason, &rec.Loan.NextName, &rec.Loan.NextReason,
		&rec.EnrichmentComplete, &rec.GeneratedAt,
	)
	return rec, err
}
