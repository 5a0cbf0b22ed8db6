// Package store defines the data access contracts for the GrowifyX dashboard.
//
// The gateway is deliberately thin: select-all, equality lookup, and
// upsert-by-key against three collections (shops, orders, ad spend). No
// operation spans more than one table. Implementations live in
// repository/postgres.
package store

import (
	"context"
	"errors"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// ShopStore is the credential collection, keyed by shop URL.
type ShopStore interface {
	// GetShop returns the shop registered under shopURL.
	// Returns ErrNotFound if it was never registered.
	GetShop(ctx context.Context, shopURL string) (*domain.Shop, error)

	// UpsertShop registers a shop or replaces its stored access token.
	UpsertShop(ctx context.Context, shop *domain.Shop) error
}

// OrderStore is the ingested commerce order collection.
type OrderStore interface {
	// ListOrders returns every order for the shop, oldest date first.
	ListOrders(ctx context.Context, shopURL string) ([]domain.Order, error)

	// UpsertOrders writes the batch idempotently: an order id seen before
	// is overwritten with the new values, never duplicated.
	UpsertOrders(ctx context.Context, orders []domain.Order) error
}

// AdSpendStore is the ad platform spend collection.
type AdSpendStore interface {
	// ListAdSpend returns every spend record, oldest date first.
	ListAdSpend(ctx context.Context) ([]domain.AdSpendRecord, error)

	// UpsertAdSpend writes the batch idempotently keyed on ad id.
	UpsertAdSpend(ctx context.Context, records []domain.AdSpendRecord) error
}
