package main

import (
	"context"
	"flag"
	"log"

	"github.com/milk9111/marblebounce/config"
	"github.com/milk9111/marblebounce/levels"
	"github.com/milk9111/marblebounce/server"
	"github.com/milk9111/marblebounce/store"
)

// ============================================================
// Level Server
// ============================================================

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seedOwner := flag.String("seed", "", "upload the bundled levels for this owner on start")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	cfg.Server.ApplyEnv()

	db, err := store.OpenSQLite(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(context.Background(), db); err != nil {
		log.Fatalf("init db: %v", err)
	}
	catalog := store.NewCatalog(db)

	if *seedOwner != "" {
		seed(catalog, *seedOwner)
	}

	app := server.New(catalog, server.Options{
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// ============================================================
	// Server Start
	// ============================================================

	log.Printf("Starting Level Server on %s (db: %s)", cfg.Server.Addr, cfg.Server.DBPath)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func seed(catalog *store.Catalog, owner string) {
	for _, name := range levels.Names() {
		doc, err := levels.Document(name)
		if err != nil {
			log.Printf("seed %s: %v", name, err)
			continue
		}
		if _, err := catalog.Upload(context.Background(), owner, name, doc); err != nil {
			log.Printf("seed %s: %v", name, err)
			continue
		}
		log.Printf("seeded %s/%s", owner, name)
	}
}
