package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
)

// OrderRepo implements store.OrderStore against PostgreSQL.
type OrderRepo struct{ db *sql.DB }

// NewOrderRepo creates a Postgres-backed order repository.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) ListOrders(ctx context.Context, shopURL string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, shop_url, to_char(date, 'YYYY-MM-DD'), amount, currency, customer_email
		FROM shopify_orders
		WHERE shop_url = $1
		ORDER BY date ASC, order_id ASC
	`, shopURL)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.OrderID, &o.ShopURL, &o.Date, &o.Amount, &o.Currency, &o.CustomerEmail); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpsertOrders writes the batch one row at a time. Volumes here are small
// (a store's order history), so a COPY path is not worth the machinery.
func (r *OrderRepo) UpsertOrders(ctx context.Context, orders []domain.Order) error {
	for _, o := range orders {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO shopify_orders (order_id, shop_url, date, amount, currency, customer_email)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (order_id)
			DO UPDATE SET shop_url = EXCLUDED.shop_url,
			              date = EXCLUDED.date,
			              amount = EXCLUDED.amount,
			              currency = EXCLUDED.currency,
			              customer_email = EXCLUDED.customer_email
		`, o.OrderID, o.ShopURL, o.Date, o.Amount, o.Currency, o.CustomerEmail)
		if err != nil {
			return fmt.Errorf("upsert order %s: %w", o.OrderID, err)
		}
	}
	return nil
}
