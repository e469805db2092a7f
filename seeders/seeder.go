package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/pkg/config"
)

// SeedCompany creates the demo company with its users and maintenance team.
func SeedCompany(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Seeding demo company, users and team...")

	if err := seedCompany(ctx, db); err != nil {
		log.Fatalf("❌ Failed to seed company: %v", err)
	}
	if err := seedUsers(ctx, db, cfg.Auth.BcryptCost); err != nil {
		log.Fatalf("❌ Failed to seed users: %v", err)
	}
	if err := seedTeam(ctx, db); err != nil {
		log.Fatalf("❌ Failed to seed team: %v", err)
	}
	log.Println("✅ Demo company ready!")
}

// SeedEquipment fills the demo company with equipment, open requests and a
// work center. It depends on SeedCompany.
func SeedEquipment(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Seeding demo equipment, requests and work center...")

	if err := seedEquipment(ctx, db); err != nil {
		log.Fatalf("❌ Failed to seed equipment: %v", err)
	}
	if err := seedRequests(ctx, db); err != nil {
		log.Fatalf("❌ Failed to seed maintenance requests: %v", err)
	}
	if err := seedWorkCenter(ctx, db); err != nil {
		log.Fatalf("❌ Failed to seed work center: %v", err)
	}
	log.Println("✅ Demo equipment ready!")
}
