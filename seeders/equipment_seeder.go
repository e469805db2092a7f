package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Equipment...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	purchased := time.Now().AddDate(-2, 0, 0)
	for _, eq := range demoEquipment {
		technician := null.String{}
		if eq.TechnicianKey != "" {
			technician = null.StringFrom(demoID("user/" + eq.TechnicianKey))
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO equipment (id, name, serial_number, category, location, purchase_date, company_id,
			     assigned_technician_id, default_maintenance_team_id, health, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) ON CONFLICT DO NOTHING`,
			demoID("equipment/"+eq.Key), eq.Name, eq.SerialNumber, eq.Category, eq.Location, purchased,
			demoID("company"), technician, demoID("team"), eq.Health, eq.Status,
		); err != nil {
			return fmt.Errorf("insert equipment %s: %w", eq.SerialNumber, err)
		}
	}

	return tx.Commit(ctx)
}

func seedRequests(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Maintenance requests...")

	scheduled := time.Now().AddDate(0, 0, 7)
	for _, r := range demoRequests {
		if _, err := db.Exec(ctx,
			`INSERT INTO maintenance_requests (id, subject, equipment_id, requested_by, company_id,
			     maintenance_type, priority, assigned_team_id, scheduled_date, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT DO NOTHING`,
			demoID("request/"+r.Key), r.Subject, demoID("equipment/"+r.EquipmentKey), demoID("user/employee"),
			demoID("company"), r.Type, r.Priority, demoID("team"), scheduled, r.Status,
		); err != nil {
			return fmt.Errorf("insert request %q: %w", r.Subject, err)
		}
	}
	return nil
}

func seedWorkCenter(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Work center '" + demoWorkCenter.Name + "'...")

	wc := demoWorkCenter
	if _, err := db.Exec(ctx,
		`INSERT INTO work_centers (id, name, code, location, cost_per_hour, company_id)
		 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
		demoID("work-center/"+wc.Key), wc.Name, wc.Code, wc.Location, wc.CostPerHour, demoID("company"),
	); err != nil {
		return fmt.Errorf("insert work center: %w", err)
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO work_center_assignments (id, work_center_id, equipment_id, assigned_by)
		 VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
		demoID("assignment/"+wc.Key+"/cnc"), demoID("work-center/"+wc.Key), demoID("equipment/cnc"), demoID("user/manager"),
	); err != nil {
		return fmt.Errorf("insert work center assignment: %w", err)
	}
	return nil
}
