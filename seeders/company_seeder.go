package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/pkg/constants"
	"gearguard/pkg/utils"
)

func seedCompany(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Company '" + demoCompanyName + "'...")

	tag, err := db.Exec(ctx,
		`INSERT INTO companies (id, name, location) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		demoID("company"), demoCompanyName, demoCompanyLocation,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Println("    - already exists, skipping")
	}
	return nil
}

func seedUsers(ctx context.Context, db *pgxpool.Pool, bcryptCost int) error {
	log.Println("  - Users...")

	hashed, err := utils.HashPassword(demoPassword, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	for _, u := range demoUsers {
		tag, err := db.Exec(ctx,
			`INSERT INTO users (id, email, password, name, role, company_id, company_name, department)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT DO NOTHING`,
			demoID("user/"+u.Key), u.Email, hashed, u.Name, u.Role, demoID("company"), demoCompanyName, u.Department,
		)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
		if tag.RowsAffected() > 0 {
			log.Printf("    - %s (%s)", u.Email, u.Role)
		}
	}
	return nil
}

func seedTeam(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Team '" + demoTeamName + "'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	teamID := demoID("team")
	if _, err := tx.Exec(ctx,
		`INSERT INTO teams (id, name, description, company_id) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
		teamID, demoTeamName, "Mechanical repairs on the shop floor", demoID("company"),
	); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	for _, u := range demoUsers {
		if !u.TeamMember {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO team_members (id, team_id, user_id, role) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			demoID("member/"+u.Key), teamID, demoID("user/"+u.Key), constants.DefaultTeamMemberRole,
		); err != nil {
			return fmt.Errorf("insert team member %s: %w", u.Email, err)
		}
	}

	return tx.Commit(ctx)
}
