package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

const (
	companyTable  = "companies"
	companyFields = "id, name, location, created_at, updated_at"
)

type CompanyRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Company, error)
	// FindByName matches case-insensitively and locks the row inside a transaction.
	FindByName(ctx context.Context, tx pgx.Tx, name string) (*entities.Company, error)
	Create(ctx context.Context, tx pgx.Tx, company *entities.Company) error
	Update(ctx context.Context, tx pgx.Tx, company *entities.Company) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type CompanyRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCompanyRepository(storage *pgxpool.Pool, logger *zap.Logger) CompanyRepositoryInterface {
	return &CompanyRepository{storage: storage, logger: logger}
}

func scanCompany(row pgx.Row) (*entities.Company, error) {
	var c entities.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Location, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Company, error) {
	query, args, err := psql.Select(companyFields).From(companyTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build company query: %w", err)
	}
	return scanCompany(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *CompanyRepository) FindByName(ctx context.Context, tx pgx.Tx, name string) (*entities.Company, error) {
	builder := psql.Select(companyFields).From(companyTable).Where(sq.Expr("LOWER(name) = LOWER(?)", name))
	if tx != nil {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build company query: %w", err)
	}
	return scanCompany(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *CompanyRepository) Create(ctx context.Context, tx pgx.Tx, company *entities.Company) error {
	query, args, err := psql.Insert(companyTable).
		Columns("id", "name", "location").
		Values(company.ID, company.Name, company.Location).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build company insert: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&company.CreatedAt, &company.UpdatedAt)
	return mapPgError(err)
}

func (r *CompanyRepository) Update(ctx context.Context, tx pgx.Tx, company *entities.Company) error {
	query, args, err := psql.Update(companyTable).
		Set("name", company.Name).
		Set("location", company.Location).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": company.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build company update: %w", err)
	}
	err = getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&company.UpdatedAt)
	return mapPgError(err)
}

func (r *CompanyRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(companyTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build company delete: %w", err)
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
