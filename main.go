package main

import (
	"fmt"
	"log"

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := database.SeedCategories(db); err != nil {
		log.Fatalf("seed categories: %v", err)
	}

	r := router.Setup(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
