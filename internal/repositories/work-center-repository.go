package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

const (
	workCenterTable  = "work_centers"
	workCenterFields = `w.id, w.name, w.code, w.location, w.cost_per_hour, w.capability_time_efficiency,
		w.oe_target_percentage, w.company_id, w.created_at, w.updated_at`
	assignmentTable  = "work_center_assignments"
	assignmentFields = `a.id, a.work_center_id, a.equipment_id, a.assigned_by, a.alternative_work_centers, a.created_at,
		e.id, e.name, e.serial_number, e.category, e.status, e.health`
)

type WorkCenterRepositoryInterface interface {
	List(ctx context.Context, scope authz.Scope) ([]entities.WorkCenter, error)
	FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.WorkCenter, error)
	Create(ctx context.Context, tx pgx.Tx, workCenter *entities.WorkCenter) error
	Update(ctx context.Context, tx pgx.Tx, workCenter *entities.WorkCenter) error
	Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error
	CreateAssignment(ctx context.Context, tx pgx.Tx, assignment *entities.WorkCenterAssignment) error
}

type WorkCenterRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkCenterRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkCenterRepositoryInterface {
	return &WorkCenterRepository{storage: storage, logger: logger}
}

func scanWorkCenter(row pgx.Row) (*entities.WorkCenter, error) {
	var w entities.WorkCenter
	err := row.Scan(
		&w.ID, &w.Name, &w.Code, &w.Location, &w.CostPerHour, &w.CapabilityTimeEfficiency,
		&w.OeTargetPercentage, &w.CompanyID, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	w.Assignments = make([]entities.WorkCenterAssignment, 0)
	return &w, nil
}

func scanAssignment(row pgx.Row) (*entities.WorkCenterAssignment, error) {
	var a entities.WorkCenterAssignment
	var eq entities.EquipmentShort
	var alternatives []byte
	err := row.Scan(
		&a.ID, &a.WorkCenterID, &a.EquipmentID, &a.AssignedBy, &alternatives, &a.CreatedAt,
		&eq.ID, &eq.Name, &eq.SerialNumber, &eq.Category, &eq.Status, &eq.Health,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	a.AlternativeWorkCenters = make([]string, 0)
	if len(alternatives) > 0 {
		if err := json.Unmarshal(alternatives, &a.AlternativeWorkCenters); err != nil {
			return nil, fmt.Errorf("failed to decode alternative work centers: %w", err)
		}
	}
	a.Equipment = &eq
	return &a, nil
}

func (r *WorkCenterRepository) List(ctx context.Context, scope authz.Scope) ([]entities.WorkCenter, error) {
	centers := make([]entities.WorkCenter, 0)
	if scope.Empty() {
		return centers, nil
	}

	query, args, err := psql.Select(workCenterFields).From(workCenterTable + " w").
		Where(scope.CompanyCondition("w.company_id")).
		OrderBy("w.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build work centers query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work centers: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		w, err := scanWorkCenter(rows)
		if err != nil {
			return nil, err
		}
		centers = append(centers, *w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assignments, err := r.assignmentsByCenter(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	for i := range centers {
		if list, ok := assignments[centers[i].ID]; ok {
			centers[i].Assignments = list
		}
	}
	return centers, nil
}

func (r *WorkCenterRepository) assignmentsByCenter(ctx context.Context, tx pgx.Tx, centerIDs []string) (map[string][]entities.WorkCenterAssignment, error) {
	result := make(map[string][]entities.WorkCenterAssignment, len(centerIDs))
	if len(centerIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.Select(assignmentFields).
		From(assignmentTable + " a").
		Join("equipment e ON e.id = a.equipment_id").
		Where(sq.Eq{"a.work_center_id": centerIDs}).
		OrderBy("a.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assignments query: %w", err)
	}

	rows, err := getQuerier(r.storage, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result[a.WorkCenterID] = append(result[a.WorkCenterID], *a)
	}
	return result, rows.Err()
}

func (r *WorkCenterRepository) FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.WorkCenter, error) {
	query, args, err := psql.Select(workCenterFields).From(workCenterTable + " w").
		Where(sq.Eq{"w.id": id}).
		Where(scope.CompanyCondition("w.company_id")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build work center query: %w", err)
	}

	center, err := scanWorkCenter(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	assignments, err := r.assignmentsByCenter(ctx, tx, []string{center.ID})
	if err != nil {
		return nil, err
	}
	if list, ok := assignments[center.ID]; ok {
		center.Assignments = list
	}
	return center, nil
}

func (r *WorkCenterRepository) Create(ctx context.Context, tx pgx.Tx, w *entities.WorkCenter) error {
	query, args, err := psql.Insert(workCenterTable).
		Columns("id", "name", "code", "location", "cost_per_hour", "capability_time_efficiency",
			"oe_target_percentage", "company_id").
		Values(w.ID, w.Name, w.Code, w.Location, w.CostPerHour, w.CapabilityTimeEfficiency,
			w.OeTargetPercentage, w.CompanyID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build work center insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&w.CreatedAt, &w.UpdatedAt)
	return mapPgError(err)
}

func (r *WorkCenterRepository) Update(ctx context.Context, tx pgx.Tx, w *entities.WorkCenter) error {
	query, args, err := psql.Update(workCenterTable).
		Set("name", w.Name).
		Set("code", w.Code).
		Set("location", w.Location).
		Set("cost_per_hour", w.CostPerHour).
		Set("capability_time_efficiency", w.CapabilityTimeEfficiency).
		Set("oe_target_percentage", w.OeTargetPercentage).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": w.ID, "company_id": w.CompanyID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build work center update: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&w.UpdatedAt)
	return mapPgError(err)
}

func (r *WorkCenterRepository) Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error {
	query, args, err := psql.Delete(workCenterTable).
		Where(sq.Eq{"id": id}).
		Where(scope.CompanyCondition("company_id")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build work center delete: %w", err)
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

func (r *WorkCenterRepository) CreateAssignment(ctx context.Context, tx pgx.Tx, a *entities.WorkCenterAssignment) error {
	if a.AlternativeWorkCenters == nil {
		a.AlternativeWorkCenters = make([]string, 0)
	}
	alternatives, err := json.Marshal(a.AlternativeWorkCenters)
	if err != nil {
		return fmt.Errorf("failed to encode alternative work centers: %w", err)
	}

	query, args, err := psql.Insert(assignmentTable).
		Columns("id", "work_center_id", "equipment_id", "assigned_by", "alternative_work_centers").
		Values(a.ID, a.WorkCenterID, a.EquipmentID, a.AssignedBy, sq.Expr("?::jsonb", string(alternatives))).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assignment insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&a.CreatedAt)
	return mapPgError(err)
}
