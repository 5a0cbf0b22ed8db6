package shopify

import (
	"context"
	"errors"
	"fmt"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/distlock"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/logger"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/store"
)

// ErrSyncInProgress is returned when another process already holds the
// shop's sync lock.
var ErrSyncInProgress = errors.New("a sync for this shop is already running")

// Invalidator drops memoized dashboard data for a shop after new ingestion.
type Invalidator interface {
	InvalidateShop(ctx context.Context, shopURL string) error
}

// LockFactory builds the per-shop sync lock. Optional.
type LockFactory func(shopURL string) distlock.Lock

// Ingestor pulls a shop's orders from Shopify and upserts them. Re-running a
// sync overwrites rows by order id; it never duplicates.
type Ingestor struct {
	client     *Client
	orders     store.OrderStore
	invalidate Invalidator // nil when no memo cache is configured
	lockFor    LockFactory // nil disables cross-process sync exclusion
}

// NewIngestor wires the ingestion path.
func NewIngestor(client *Client, orders store.OrderStore, invalidate Invalidator) *Ingestor {
	return &Ingestor{client: client, orders: orders, invalidate: invalidate}
}

// SetLockFactory enables cross-process sync exclusion per shop.
func (i *Ingestor) SetLockFactory(f LockFactory) { i.lockFor = f }

// Sync fetches and stores the shop's orders, then invalidates the shop's
// dashboard memo. Returns the number of orders ingested. Only one sync per
// shop runs at a time; a concurrent attempt gets ErrSyncInProgress.
func (i *Ingestor) Sync(ctx context.Context, shop *domain.Shop) (int, error) {
	if i.lockFor != nil {
		lock := i.lockFor(shop.ShopURL)
		ok, err := lock.Acquire(ctx)
		if err != nil {
			return 0, fmt.Errorf("shopify: acquire sync lock: %w", err)
		}
		if !ok {
			return 0, ErrSyncInProgress
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("failed to release sync lock", "shop_url", shop.ShopURL, "error", err.Error())
			}
		}()
	}

	orders, err := i.client.FetchOrders(ctx, shop.ShopURL, shop.AccessToken)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		logger.Info("shopify sync found no orders", "shop_url", shop.ShopURL)
		return 0, nil
	}

	if err := i.orders.UpsertOrders(ctx, orders); err != nil {
		return 0, fmt.Errorf("shopify: store orders: %w", err)
	}

	if i.invalidate != nil {
		if err := i.invalidate.InvalidateShop(ctx, shop.ShopURL); err != nil {
			// Stale memo self-heals at TTL expiry; the sync itself succeeded.
			logger.Warn("failed to invalidate dashboard memo", "shop_url", shop.ShopURL, "error", err.Error())
		}
	}

	logger.Info("shopify sync complete", "shop_url", shop.ShopURL, "orders", fmt.Sprint(len(orders)))
	return len(orders), nil
}
