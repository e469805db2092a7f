package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

const (
	userTable  = "users"
	userFields = "id, email, password, name, role, company_id, company_name, department, created_at, updated_at"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.User, error)
	FindInCompany(ctx context.Context, companyID, id string) (*entities.User, error)
	List(ctx context.Context, companyID string, filter types.UserFilter) ([]entities.User, error)
	Count(ctx context.Context, tx pgx.Tx) (int64, error)
	CompanyHasAdmin(ctx context.Context, tx pgx.Tx, companyID string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, user *entities.User) error
	Update(ctx context.Context, tx pgx.Tx, user *entities.User) error
	// ReleaseAssignments clears the user from equipment and requests.
	ReleaseAssignments(ctx context.Context, tx pgx.Tx, userID string) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.Role,
		&u.CompanyID, &u.CompanyName, &u.Department,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *UserRepository) findOne(ctx context.Context, q Querier, where sq.Sqlizer) (*entities.User, error) {
	query, args, err := psql.Select(userFields).From(userTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}
	return scanUser(q.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.User, error) {
	return r.findOne(ctx, getQuerier(r.storage, tx), sq.Eq{"id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.User, error) {
	return r.findOne(ctx, getQuerier(r.storage, tx), sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) FindInCompany(ctx context.Context, companyID, id string) (*entities.User, error) {
	if companyID == "" {
		return nil, apperrors.ErrNotFound
	}
	return r.findOne(ctx, r.storage, sq.Eq{"id": id, "company_id": companyID})
}

func (r *UserRepository) List(ctx context.Context, companyID string, filter types.UserFilter) ([]entities.User, error) {
	users := make([]entities.User, 0)
	if companyID == "" {
		return users, nil
	}

	builder := psql.Select(userFields).From(userTable).
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("name ASC")
	if filter.Role != "" {
		builder = builder.Where(sq.Eq{"role": filter.Role})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}
	r.logger.Debug("listing users", zap.String("query", query))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context, tx pgx.Tx) (int64, error) {
	var count int64
	err := getQuerier(r.storage, tx).QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *UserRepository) CompanyHasAdmin(ctx context.Context, tx pgx.Tx, companyID string) (bool, error) {
	query, args, err := psql.Select("1").From(userTable).
		Where(sq.Eq{"company_id": companyID, "role": constants.RoleAdmin}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build admin check: %w", err)
	}
	var exists bool
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Create(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	query, args, err := psql.Insert(userTable).
		Columns("id", "email", "password", "name", "role", "company_id", "company_name", "department").
		Values(user.ID, strings.ToLower(strings.TrimSpace(user.Email)), user.Password, user.Name, user.Role,
			user.CompanyID, user.CompanyName, user.Department).
		Suffix("RETURNING email, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&user.Email, &user.CreatedAt, &user.UpdatedAt)
	return mapPgError(err)
}

func (r *UserRepository) Update(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	query, args, err := psql.Update(userTable).
		Set("name", user.Name).
		Set("role", user.Role).
		Set("department", user.Department).
		Set("password", user.Password).
		Set("company_name", user.CompanyName).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user update: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&user.UpdatedAt)
	return mapPgError(err)
}

func (r *UserRepository) ReleaseAssignments(ctx context.Context, tx pgx.Tx, userID string) error {
	q := getQuerier(r.storage, tx)
	for _, table := range []string{"equipment", "maintenance_requests"} {
		query, args, err := psql.Update(table).
			Set("assigned_technician_id", nil).
			Where(sq.Eq{"assigned_technician_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build %s release: %w", table, err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to release %s assignments: %w", table, err)
		}
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(userTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user delete: %w", err)
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
