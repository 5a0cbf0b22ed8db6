package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is everything the dashboard needs. CREATE IF NOT EXISTS keeps the
// call safe to run on every boot; there is no migration tooling beyond this.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS shops (
		shop_url     TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS shopify_orders (
		order_id       TEXT PRIMARY KEY,
		shop_url       TEXT NOT NULL,
		date           DATE NOT NULL,
		amount         NUMERIC(12,2) NOT NULL,
		currency       TEXT NOT NULL,
		customer_email TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shopify_orders_shop_date ON shopify_orders (shop_url, date)`,
	`CREATE TABLE IF NOT EXISTS facebook_ads (
		ad_id       TEXT PRIMARY KEY,
		date        DATE NOT NULL,
		spend       NUMERIC(12,2) NOT NULL,
		clicks      INTEGER NOT NULL DEFAULT 0,
		impressions INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_facebook_ads_date ON facebook_ads (date)`,
}

// EnsureSchema creates the dashboard tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
