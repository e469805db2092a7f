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
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

const (
	requestTable  = "maintenance_requests"
	requestFields = `r.id, r.subject, r.description, r.equipment_id, r.requested_by, r.company_id,
		r.maintenance_type, r.priority, r.assigned_team_id, r.assigned_technician_id,
		r.scheduled_date, r.completed_date, r.duration, r.notes, r.instructions, r.status,
		r.created_at, r.updated_at`
	requestRelationFields = `e.id, e.name, e.serial_number, e.category, e.status, e.health,
		u.id, u.name, u.email, t.id, t.name, tech.id, tech.name, tech.email`
)

type MaintenanceRequestRepositoryInterface interface {
	List(ctx context.Context, scope authz.Scope, filter types.RequestFilter) ([]entities.MaintenanceRequest, error)
	FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.MaintenanceRequest, error)
	// FindForUpdate reads the request row under FOR UPDATE so concurrent
	// status changes serialize.
	FindForUpdate(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.MaintenanceRequest, error)
	Create(ctx context.Context, tx pgx.Tx, request *entities.MaintenanceRequest) error
	Update(ctx context.Context, tx pgx.Tx, request *entities.MaintenanceRequest) error
	Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error
}

type MaintenanceRequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaintenanceRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceRequestRepositoryInterface {
	return &MaintenanceRequestRepository{storage: storage, logger: logger}
}

func requestColumns(r *entities.MaintenanceRequest) []interface{} {
	return []interface{}{
		&r.ID, &r.Subject, &r.Description, &r.EquipmentID, &r.RequestedBy, &r.CompanyID,
		&r.MaintenanceType, &r.Priority, &r.AssignedTeam, &r.AssignedTechnicianID,
		&r.ScheduledDate, &r.CompletedDate, &r.Duration, &r.Notes, &r.Instructions, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func scanRequestWithRelations(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var r entities.MaintenanceRequest
	var eq entities.EquipmentShort
	var userID, userName, userEmail, teamID, teamName, techID, techName, techEmail null.String

	dest := append(requestColumns(&r),
		&eq.ID, &eq.Name, &eq.SerialNumber, &eq.Category, &eq.Status, &eq.Health,
		&userID, &userName, &userEmail, &teamID, &teamName, &techID, &techName, &techEmail,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, mapPgError(err)
	}

	r.Equipment = &eq
	if userID.Valid {
		r.User = &entities.UserShort{ID: userID.String, Name: userName.String, Email: userEmail.String}
	}
	if teamID.Valid {
		r.Team = &entities.TeamShort{ID: teamID.String, Name: teamName.String}
	}
	if techID.Valid {
		r.AssignedTechnician = &entities.UserShort{ID: techID.String, Name: techName.String, Email: techEmail.String}
	}
	return &r, nil
}

func selectRequests() sq.SelectBuilder {
	return psql.Select(requestFields, requestRelationFields).
		From(requestTable + " r").
		Join("equipment e ON e.id = r.equipment_id").
		LeftJoin("users u ON u.id = r.requested_by").
		LeftJoin("teams t ON t.id = r.assigned_team_id").
		LeftJoin("users tech ON tech.id = r.assigned_technician_id")
}

func (r *MaintenanceRequestRepository) List(ctx context.Context, scope authz.Scope, filter types.RequestFilter) ([]entities.MaintenanceRequest, error) {
	result := make([]entities.MaintenanceRequest, 0)
	if scope.Empty() {
		return result, nil
	}

	builder := selectRequests().Where(scope.RequestCondition("r")).OrderBy("r.created_at DESC")
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"r.status": filter.Status})
	}
	if filter.MaintenanceType != "" {
		builder = builder.Where(sq.Eq{"r.maintenance_type": filter.MaintenanceType})
	}
	if filter.EquipmentID != "" {
		builder = builder.Where(sq.Eq{"r.equipment_id": filter.EquipmentID})
	}
	if filter.TeamID != "" {
		builder = builder.Where(sq.Eq{"r.assigned_team_id": filter.TeamID})
	}
	if filter.ScheduledFrom != nil {
		builder = builder.Where(sq.GtOrEq{"r.scheduled_date": *filter.ScheduledFrom})
	}
	if filter.ScheduledTo != nil {
		builder = builder.Where(sq.LtOrEq{"r.scheduled_date": *filter.ScheduledTo})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build requests query: %w", err)
	}
	r.logger.Debug("listing maintenance requests", zap.String("query", query))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		req, err := scanRequestWithRelations(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}

func (r *MaintenanceRequestRepository) FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.MaintenanceRequest, error) {
	query, args, err := selectRequests().
		Where(sq.Eq{"r.id": id}).
		Where(scope.RequestCondition("r")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build request query: %w", err)
	}
	return scanRequestWithRelations(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *MaintenanceRequestRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.MaintenanceRequest, error) {
	query, args, err := psql.Select(requestFields).
		From(requestTable + " r").
		Where(sq.Eq{"r.id": id}).
		Where(scope.CompanyCondition("r.company_id")).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build request lock query: %w", err)
	}
	var req entities.MaintenanceRequest
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(requestColumns(&req)...); err != nil {
		return nil, mapPgError(err)
	}
	return &req, nil
}

func (r *MaintenanceRequestRepository) Create(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) error {
	query, args, err := psql.Insert(requestTable).
		Columns("id", "subject", "description", "equipment_id", "requested_by", "company_id",
			"maintenance_type", "priority", "assigned_team_id", "assigned_technician_id",
			"scheduled_date", "completed_date", "duration", "notes", "instructions", "status").
		Values(req.ID, req.Subject, req.Description, req.EquipmentID, req.RequestedBy, req.CompanyID,
			req.MaintenanceType, req.Priority, req.AssignedTeam, req.AssignedTechnicianID,
			req.ScheduledDate, req.CompletedDate, req.Duration, req.Notes, req.Instructions, req.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build request insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&req.CreatedAt, &req.UpdatedAt)
	return mapPgError(err)
}

func (r *MaintenanceRequestRepository) Update(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) error {
	query, args, err := psql.Update(requestTable).
		SetMap(map[string]interface{}{
			"subject":                req.Subject,
			"description":            req.Description,
			"maintenance_type":       req.MaintenanceType,
			"priority":               req.Priority,
			"assigned_team_id":       req.AssignedTeam,
			"assigned_technician_id": req.AssignedTechnicianID,
			"scheduled_date":         req.ScheduledDate,
			"completed_date":         req.CompletedDate,
			"duration":               req.Duration,
			"notes":                  req.Notes,
			"instructions":           req.Instructions,
			"status":                 req.Status,
			"updated_at":             sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": req.ID, "company_id": req.CompanyID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build request update: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&req.UpdatedAt)
	return mapPgError(err)
}

func (r *MaintenanceRequestRepository) Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error {
	query, args, err := psql.Delete(requestTable).
		Where(sq.Eq{"id": id}).
		Where(scope.CompanyCondition("company_id")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build request delete: %w", err)
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
