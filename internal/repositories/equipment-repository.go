package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

const (
	equipmentTable  = "equipment"
	equipmentFields = `e.id, e.name, e.serial_number, e.category, e.department, e.assigned_to, e.location,
		e.purchase_date, e.warranty_info, e.company_id, e.assigned_technician_id, e.default_maintenance_team_id,
		e.health, e.status, e.last_maintenance, e.next_scheduled, e.created_at, e.updated_at`
	equipmentRelationFields = "tech.id, tech.name, tech.email, t.id, t.name"
)

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, scope authz.Scope, filter types.EquipmentFilter) ([]entities.Equipment, error)
	FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.Equipment, error)
	// FindForUpdate locks the row for the lifecycle write.
	FindForUpdate(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error)
	Create(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	Update(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	UpdateCondition(ctx context.Context, tx pgx.Tx, id string, status string, health int, lastMaintenance null.Time) error
	Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func equipmentColumns(e *entities.Equipment) []interface{} {
	return []interface{}{
		&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.Department, &e.AssignedTo, &e.Location,
		&e.PurchaseDate, &e.WarrantyInfo, &e.CompanyID, &e.AssignedTechnicianID, &e.DefaultMaintenanceTeamID,
		&e.Health, &e.Status, &e.LastMaintenance, &e.NextScheduled, &e.CreatedAt, &e.UpdatedAt,
	}
}

func scanEquipmentWithRelations(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var techID, techName, techEmail, teamID, teamName null.String

	dest := append(equipmentColumns(&e), &techID, &techName, &techEmail, &teamID, &teamName)
	if err := row.Scan(dest...); err != nil {
		return nil, mapPgError(err)
	}
	if techID.Valid {
		e.AssignedTechnician = &entities.UserShort{ID: techID.String, Name: techName.String, Email: techEmail.String}
	}
	if teamID.Valid {
		e.DefaultMaintenanceTeam = &entities.TeamShort{ID: teamID.String, Name: teamName.String}
	}
	return &e, nil
}

func selectEquipment() sq.SelectBuilder {
	return psql.Select(equipmentFields, equipmentRelationFields).
		From(equipmentTable + " e").
		LeftJoin("users tech ON tech.id = e.assigned_technician_id").
		LeftJoin("teams t ON t.id = e.default_maintenance_team_id")
}

func (r *EquipmentRepository) List(ctx context.Context, scope authz.Scope, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	result := make([]entities.Equipment, 0)
	if scope.Empty() {
		return result, nil
	}

	builder := selectEquipment().Where(scope.CompanyCondition("e.company_id")).OrderBy("e.created_at DESC")
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"e.category": filter.Category})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"e.status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.serial_number": pattern},
			sq.ILike{"e.location": pattern},
		})
	}
	if filter.CriticalOnly {
		builder = builder.Where(sq.Or{
			sq.Eq{"e.status": constants.EquipmentCritical},
			sq.Lt{"e.health": constants.CriticalHealthThreshold},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build equipment query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEquipmentWithRelations(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (r *EquipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.Equipment, error) {
	query, args, err := selectEquipment().
		Where(sq.Eq{"e.id": id}).
		Where(scope.CompanyCondition("e.company_id")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build equipment query: %w", err)
	}
	return scanEquipmentWithRelations(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).
		From(equipmentTable + " e").
		Where(sq.Eq{"e.id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build equipment lock query: %w", err)
	}
	var e entities.Equipment
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(equipmentColumns(&e)...); err != nil {
		return nil, mapPgError(err)
	}
	return &e, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	query, args, err := psql.Insert(equipmentTable).
		Columns("id", "name", "serial_number", "category", "department", "assigned_to", "location",
			"purchase_date", "warranty_info", "company_id", "assigned_technician_id", "default_maintenance_team_id",
			"health", "status", "last_maintenance", "next_scheduled").
		Values(e.ID, e.Name, e.SerialNumber, e.Category, e.Department, e.AssignedTo, e.Location,
			e.PurchaseDate, e.WarrantyInfo, e.CompanyID, e.AssignedTechnicianID, e.DefaultMaintenanceTeamID,
			e.Health, e.Status, e.LastMaintenance, e.NextScheduled).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build equipment insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&e.CreatedAt, &e.UpdatedAt)
	return mapPgError(err)
}

func (r *EquipmentRepository) Update(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	query, args, err := psql.Update(equipmentTable).
		SetMap(map[string]interface{}{
			"name":                        e.Name,
			"category":                    e.Category,
			"department":                  e.Department,
			"assigned_to":                 e.AssignedTo,
			"location":                    e.Location,
			"purchase_date":               e.PurchaseDate,
			"warranty_info":               e.WarrantyInfo,
			"assigned_technician_id":      e.AssignedTechnicianID,
			"default_maintenance_team_id": e.DefaultMaintenanceTeamID,
			"health":                      e.Health,
			"status":                      e.Status,
			"last_maintenance":            e.LastMaintenance,
			"next_scheduled":              e.NextScheduled,
			"updated_at":                  sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": e.ID, "company_id": e.CompanyID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build equipment update: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&e.UpdatedAt)
	return mapPgError(err)
}

func (r *EquipmentRepository) UpdateCondition(ctx context.Context, tx pgx.Tx, id string, status string, health int, lastMaintenance null.Time) error {
	query, args, err := psql.Update(equipmentTable).
		Set("status", status).
		Set("health", health).
		Set("last_maintenance", lastMaintenance).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build equipment condition update: %w", err)
	}
	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error {
	query, args, err := psql.Delete(equipmentTable).
		Where(sq.Eq{"id": id}).
		Where(scope.CompanyCondition("company_id")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build equipment delete: %w", err)
	}
	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
