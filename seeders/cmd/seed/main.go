package main

import (
	"context"
	"flag"
	"log"

	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 GearGuard demo seeders                      ")
	log.Println("======================================================")

	runCompany := flag.Bool("company", false, "Seed the demo company, its users and maintenance team")
	runEquipment := flag.Bool("equipment", false, "Seed demo equipment, requests and a work center (needs -company)")
	runAll := flag.Bool("all", false, "Run every seeder (same as -company -equipment)")
	migrate := flag.Bool("migrate", true, "Apply database migrations first")

	flag.Parse()

	if !*runCompany && !*runEquipment && !*runAll {
		log.Println("❌ No seeder selected.")
		log.Println("")
		log.Println("Flags:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Examples:")
		log.Println("  go run ./seeders/cmd/seed -company")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	if *migrate {
		if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
			log.Fatalf("❌ Migrations failed: %v", err)
		}
	}

	dbPool, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Postgres: %v", err)
	}
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runCompany {
		seeders.SeedCompany(dbPool, cfg)
		log.Println("======================================================")
	}
	if *runAll || *runEquipment {
		seeders.SeedEquipment(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Seeding finished.")
}
