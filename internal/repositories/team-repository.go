package repositories

import (
	"context"
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
	teamTable        = "teams"
	teamFields       = "t.id, t.name, t.description, t.company_id, t.created_at, t.updated_at"
	teamMemberTable  = "team_members"
	teamMemberFields = "m.id, m.team_id, m.user_id, m.role, m.created_at, u.id, u.name, u.email"
)

type TeamRepositoryInterface interface {
	List(ctx context.Context, scope authz.Scope) ([]entities.Team, error)
	FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.Team, error)
	Create(ctx context.Context, tx pgx.Tx, team *entities.Team) error
	Update(ctx context.Context, tx pgx.Tx, team *entities.Team) error
	Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error
	AddMember(ctx context.Context, tx pgx.Tx, member *entities.TeamMember) error
	RemoveMember(ctx context.Context, tx pgx.Tx, teamID, memberID string) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTeamRepository(storage *pgxpool.Pool, logger *zap.Logger) TeamRepositoryInterface {
	return &TeamRepository{storage: storage, logger: logger}
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CompanyID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	t.Members = make([]entities.TeamMember, 0)
	return &t, nil
}

func scanTeamMember(row pgx.Row) (*entities.TeamMember, error) {
	var m entities.TeamMember
	var user entities.UserShort
	if err := row.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt, &user.ID, &user.Name, &user.Email); err != nil {
		return nil, mapPgError(err)
	}
	m.User = &user
	return &m, nil
}

func (r *TeamRepository) List(ctx context.Context, scope authz.Scope) ([]entities.Team, error) {
	teams := make([]entities.Team, 0)
	if scope.Empty() {
		return teams, nil
	}

	query, args, err := psql.Select(teamFields).From(teamTable + " t").
		Where(scope.CompanyCondition("t.company_id")).
		OrderBy("t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build teams query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := r.membersByTeam(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if list, ok := members[teams[i].ID]; ok {
			teams[i].Members = list
		}
	}
	return teams, nil
}

// membersByTeam loads members of several teams in one query.
func (r *TeamRepository) membersByTeam(ctx context.Context, tx pgx.Tx, teamIDs []string) (map[string][]entities.TeamMember, error) {
	result := make(map[string][]entities.TeamMember, len(teamIDs))
	if len(teamIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.Select(teamMemberFields).
		From(teamMemberTable + " m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.team_id": teamIDs}).
		OrderBy("m.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build team members query: %w", err)
	}

	rows, err := getQuerier(r.storage, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		result[m.TeamID] = append(result[m.TeamID], *m)
	}
	return result, rows.Err()
}

func (r *TeamRepository) FindByID(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) (*entities.Team, error) {
	query, args, err := psql.Select(teamFields).From(teamTable + " t").
		Where(sq.Eq{"t.id": id}).
		Where(scope.CompanyCondition("t.company_id")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build team query: %w", err)
	}

	team, err := scanTeam(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	members, err := r.membersByTeam(ctx, tx, []string{team.ID})
	if err != nil {
		return nil, err
	}
	if list, ok := members[team.ID]; ok {
		team.Members = list
	}
	return team, nil
}

func (r *TeamRepository) Create(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	query, args, err := psql.Insert(teamTable).
		Columns("id", "name", "description", "company_id").
		Values(team.ID, team.Name, team.Description, team.CompanyID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build team insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&team.CreatedAt, &team.UpdatedAt)
	return mapPgError(err)
}

func (r *TeamRepository) Update(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	query, args, err := psql.Update(teamTable).
		Set("name", team.Name).
		Set("description", team.Description).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": team.ID, "company_id": team.CompanyID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build team update: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&team.UpdatedAt)
	return mapPgError(err)
}

func (r *TeamRepository) Delete(ctx context.Context, tx pgx.Tx, scope authz.Scope, id string) error {
	query, args, err := psql.Delete(teamTable).
		Where(sq.Eq{"id": id}).
		Where(scope.CompanyCondition("company_id")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build team delete: %w", err)
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

func (r *TeamRepository) AddMember(ctx context.Context, tx pgx.Tx, member *entities.TeamMember) error {
	query, args, err := psql.Insert(teamMemberTable).
		Columns("id", "team_id", "user_id", "role").
		Values(member.ID, member.TeamID, member.UserID, member.Role).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build team member insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&member.CreatedAt)
	return mapPgError(err)
}

func (r *TeamRepository) RemoveMember(ctx context.Context, tx pgx.Tx, teamID, memberID string) error {
	query, args, err := psql.Delete(teamMemberTable).
		Where(sq.Eq{"id": memberID, "team_id": teamID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build team member delete: %w", err)
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
