package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

// DashboardRepositoryInterface runs the aggregate queries behind the
// dashboard. Each method receives the caller's row filter.
type DashboardRepositoryInterface interface {
	GetEquipmentStats(ctx context.Context, securityCondition sq.Sqlizer) (*types.DashboardEquipmentStats, error)
	GetRequestStats(ctx context.Context, securityCondition sq.Sqlizer) (*types.DashboardRequestStats, error)
	GetTeamStats(ctx context.Context, securityCondition sq.Sqlizer) (*types.DashboardTeamStats, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func applySecurity(b sq.SelectBuilder, securityCondition sq.Sqlizer) sq.SelectBuilder {
	if securityCondition != nil {
		return b.Where(securityCondition)
	}
	return b
}

func (r *DashboardRepository) GetEquipmentStats(ctx context.Context, securityCondition sq.Sqlizer) (*types.DashboardEquipmentStats, error) {
	base := psql.Select(
		"COUNT(*)",
		"COALESCE(AVG(e.health), 0)::float8",
	).Column(sq.Expr("COUNT(*) FILTER (WHERE e.status = ?)", constants.EquipmentCritical)).
		From("equipment e")
	base = applySecurity(base, securityCondition)

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build equipment stats query: %w", err)
	}

	stats := &types.DashboardEquipmentStats{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&stats.Total, &stats.AverageHealth, &stats.Critical)
	return stats, err
}

func (r *DashboardRepository) GetRequestStats(ctx context.Context, securityCondition sq.Sqlizer) (*types.DashboardRequestStats, error) {
	base := psql.Select("COUNT(*)").
		Column(sq.Expr("COUNT(*) FILTER (WHERE r.status = ?)", constants.RequestStatusNew)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE r.status = ?)", constants.RequestStatusInProgress)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE r.status = ?)", constants.RequestStatusRepaired)).
		From("maintenance_requests r")
	base = applySecurity(base, securityCondition)

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build request stats query: %w", err)
	}

	stats := &types.DashboardRequestStats{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&stats.Total, &stats.New, &stats.InProgress, &stats.Repaired)
	return stats, err
}

func (r *DashboardRepository) GetTeamStats(ctx context.Context, securityCondition sq.Sqlizer) (*types.DashboardTeamStats, error) {
	base := applySecurity(psql.Select("COUNT(*)").From("teams t"), securityCondition)

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build team stats query: %w", err)
	}

	stats := &types.DashboardTeamStats{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&stats.Total)
	return stats, err
}
