package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
)

// AdSpendRepo implements store.AdSpendStore against PostgreSQL.
type AdSpendRepo struct{ db *sql.DB }

// NewAdSpendRepo creates a Postgres-backed ad spend repository.
func NewAdSpendRepo(db *sql.DB) *AdSpendRepo { return &AdSpendRepo{db: db} }

func (r *AdSpendRepo) ListAdSpend(ctx context.Context) ([]domain.AdSpendRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ad_id, to_char(date, 'YYYY-MM-DD'), spend, clicks, impressions
		FROM facebook_ads
		ORDER BY date ASC, ad_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list ad spend: %w", err)
	}
	defer rows.Close()

	var out []domain.AdSpendRecord
	for rows.Next() {
		var a domain.AdSpendRecord
		if err := rows.Scan(&a.AdID, &a.Date, &a.Spend, &a.Clicks, &a.Impressions); err != nil {
			return nil, fmt.Errorf("scan ad spend: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AdSpendRepo) UpsertAdSpend(ctx context.Context, records []domain.AdSpendRecord) error {
	for _, a := range records {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO facebook_ads (ad_id, date, spend, clicks, impressions)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (ad_id)
			DO UPDATE SET date = EXCLUDED.date,
			              spend = EXCLUDED.spend,
			              clicks = EXCLUDED.clicks,
			              impressions = EXCLUDED.impressions
		`, a.AdID, a.Date, a.Spend, a.Clicks, a.Impressions)
		if err != nil {
			return fmt.Errorf("upsert ad spend %s: %w", a.AdID, err)
		}
	}
	return nil
}
