// Package postgres implements the store contracts against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/store"
)

// ShopRepo implements store.ShopStore against PostgreSQL.
type ShopRepo struct{ db *sql.DB }

// NewShopRepo creates a Postgres-backed shop repository.
func NewShopRepo(db *sql.DB) *ShopRepo { return &ShopRepo{db: db} }

func (r *ShopRepo) GetShop(ctx context.Context, shopURL string) (*domain.Shop, error) {
	s := &domain.Shop{}
	err := r.db.QueryRowContext(ctx, `
		SELECT shop_url, access_token, created_at
		FROM shops
		WHERE shop_url = $1
	`, shopURL).Scan(&s.ShopURL, &s.AccessToken, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return s, nil
}

func (r *ShopRepo) UpsertShop(ctx context.Context, shop *domain.Shop) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shops (shop_url, access_token, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (shop_url)
		DO UPDATE SET access_token = EXCLUDED.access_token
	`, shop.ShopURL, shop.AccessToken)
	if err != nil {
		return fmt.Errorf("upsert shop: %w", err)
	}
	return nil
}
