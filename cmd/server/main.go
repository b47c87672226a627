package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/dukapos/api/internal/catalog"
	"github.com/dukapos/api/internal/config"
	"github.com/dukapos/api/internal/engine"
	"github.com/dukapos/api/internal/payment"
	"github.com/dukapos/api/internal/repository"
	"github.com/dukapos/api/internal/router"
	"github.com/dukapos/api/internal/snapshot"
	"github.com/dukapos/api/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	users := repository.NewUsers(pool)
	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatalf("users schema: %v", err)
	}

	snapshots := snapshot.NewStore(pool)
	if err := snapshots.EnsureSchema(ctx); err != nil {
		log.Fatalf("snapshots schema: %v", err)
	}

	// Restore the engine from the persisted snapshot, or start fresh.
	var eng *engine.Engine
	snap, found, err := snapshots.Load(ctx, cfg.SnapshotKey)
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}
	if found {
		eng = engine.NewFromSnapshot(snap, engine.Options{})
		log.Printf("Restored snapshot %q: %d active, %d completed orders",
			cfg.SnapshotKey, len(snap.ActiveOrders), len(snap.CompletedOrders))
	} else {
		eng = engine.New(engine.Options{})
		log.Printf("No snapshot %q found, starting with defaults", cfg.SnapshotKey)
	}

	// Serialize-on-change. Last writer wins; a failed write is logged
	// and retried implicitly on the next mutation.
	eng.SetOnChange(func(s engine.Snapshot) {
		if err := snapshots.Save(context.Background(), cfg.SnapshotKey, s); err != nil {
			log.Printf("ERROR: save snapshot: %v", err)
		}
	})

	hub := ws.NewHub()
	go hub.Run()

	cat := catalog.New(catalog.Seed())
	gw := &payment.Simulated{}

	r := router.New(cfg, eng, users, cat, gw, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
