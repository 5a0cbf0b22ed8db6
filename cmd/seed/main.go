// Command seed populates the store with a demo shop, thirty days of orders,
// and matching ad spend, so the dashboard can be exercised without live
// Shopify or Meta credentials.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/repository/postgres"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const seedDays = 30

func main() {
	shopURL := flag.String("shop", "demo-store.myshopify.com", "shop URL to seed")
	token := flag.String("token", "shpat_demo_token", "access token stored for the shop")
	flag.Parse()

	cfg, err := config.LoadFromEnv("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	shops := postgres.NewShopRepo(db)
	if err := shops.UpsertShop(ctx, &domain.Shop{
		ShopURL:     *shopURL,
		AccessToken: *token,
		CreatedAt:   time.Now(),
	}); err != nil {
		log.Fatalf("Failed to seed shop: %v", err)
	}

	var orders []domain.Order
	var spend []domain.AdSpendRecord
	now := time.Now()

	for day := 0; day < seedDays; day++ {
		date := now.AddDate(0, 0, -day).Format(domain.DateLayout)

		// Between zero and five orders a day; quiet days are realistic.
		for n := rand.Intn(6); n > 0; n-- {
			orders = append(orders, domain.Order{
				OrderID:       uuid.NewString(),
				ShopURL:       *shopURL,
				Date:          date,
				Amount:        float64(500 + rand.Intn(4501)),
				Currency:      "INR",
				CustomerEmail: fmt.Sprintf("customer%d@example.com", rand.Intn(1000)),
			})
		}

		spend = append(spend, domain.AdSpendRecord{
			AdID:        uuid.NewString(),
			Date:        date,
			Spend:       float64(1000 + rand.Intn(7001)),
			Clicks:      50 + rand.Intn(451),
			Impressions: 1000 + rand.Intn(9001),
		})
	}

	if err := postgres.NewOrderRepo(db).UpsertOrders(ctx, orders); err != nil {
		log.Fatalf("Failed to seed orders: %v", err)
	}
	if err := postgres.NewAdSpendRepo(db).UpsertAdSpend(ctx, spend); err != nil {
		log.Fatalf("Failed to seed ad spend: %v", err)
	}

	log.Printf("Seeded %s: %d orders and %d spend rows over %d days", *shopURL, len(orders), len(spend), seedDays)
}
