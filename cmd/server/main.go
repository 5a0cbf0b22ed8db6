package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/api"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/cache"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/gemini"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/insight"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/meta"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/distlock"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/repository/postgres"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/session"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/shopify"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// Database
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		log.Fatalf("Database unreachable: %v", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	cancel()

	shops := postgres.NewShopRepo(db)
	orders := postgres.NewOrderRepo(db)
	adSpend := postgres.NewAdSpendRepo(db)

	// Dashboard memo is optional: without Redis every request recomputes
	var memo *cache.Dashboard
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis unreachable, dashboard memo disabled: %v", err)
		} else {
			rdb = client
			memo = cache.NewDashboard(rdb, cfg.Cache.TTL())
			log.Printf("Dashboard memo enabled (ttl %s)", cfg.Cache.TTL())
		}
	}

	// Integrations
	shopifyClient := shopify.NewClient(cfg.Shopify)
	ingestor := shopify.NewIngestor(shopifyClient, orders, memoOrNil(memo))
	ingestor.SetLockFactory(func(shopURL string) distlock.Lock {
		return distlock.ForShop(rdb, db, shopURL, time.Minute)
	})

	geminiClient := gemini.NewClient(cfg.Gemini)
	insights, err := insight.NewService(geminiClient)
	if err != nil {
		log.Fatalf("Failed to build insight service: %v", err)
	}
	if !geminiClient.Configured() {
		log.Println("GEMINI_API_KEY not set: strategist endpoints will report configuration_missing")
	}

	sequencer := meta.NewSequencer(cfg.Meta)
	if sequencer.Live() {
		log.Println("Meta deployment: LIVE mode (paused objects will be created)")
	} else {
		log.Println("Meta deployment: simulation mode (no credentials)")
	}

	sessions := session.NewManager(cfg.Session)
	handlers := api.NewHandlers(shops, orders, adSpend, sessions, insights, ingestor, sequencer, memo)
	server := api.NewServer(handlers, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	go func() {
		log.Printf("GrowifyX server listening on %s", addr)
		if err := server.ListenAndServe(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// memoOrNil keeps the ingestor's invalidator a typed nil-free interface value.
func memoOrNil(memo *cache.Dashboard) shopify.Invalidator {
	if memo == nil {
		return nil
	}
	return memo
}
