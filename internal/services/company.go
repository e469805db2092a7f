package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

type CompanyService struct {
	companyRepo repositories.CompanyRepositoryInterface
	cache       *ScopedCache
	logger      *zap.Logger
}

func NewCompanyService(companyRepo repositories.CompanyRepositoryInterface, cache *ScopedCache, logger *zap.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, cache: cache, logger: logger}
}

var errCompanyNotFound = apperrors.NewNotFoundError("Company not found")

// ListCompanies returns the caller's company as a one-element list.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	companies := make([]entities.Company, 0, 1)
	if authCtx.CompanyID() == "" {
		return companies, nil
	}
	company, err := s.companyRepo.FindByID(ctx, nil, authCtx.CompanyID())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return companies, nil
		}
		return nil, err
	}
	return append(companies, *company), nil
}

func (s *CompanyService) FindCompany(ctx context.Context, id string) (*entities.Company, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if id != authCtx.CompanyID() {
		return nil, errCompanyNotFound
	}
	company, err := s.companyRepo.FindByID(ctx, nil, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, errCompanyNotFound
	}
	return company, err
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id string, payload dto.UpdateCompanyDTO) (*entities.Company, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.CompaniesManage, "Only ADMIN can update the company"); err != nil {
		return nil, err
	}
	company, err := s.FindCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		if blank(*payload.Name) {
			return nil, apperrors.NewBadRequestError("Company name cannot be empty")
		}
		company.Name = *payload.Name
	}
	patchNullString(&company.Location, payload.Location)

	if err := s.companyRepo.Update(ctx, nil, company); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("Company already exists")
		}
		return nil, err
	}
	s.logger.Info("company updated", zap.String("companyID", company.ID), zap.String("actorID", authCtx.Actor.ID))
	return company, nil
}

// DeleteCompany removes the company together with everything it owns.
func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := authCtx.Require(authz.CompaniesManage, "Only ADMIN can delete the company"); err != nil {
		return err
	}
	if id != authCtx.CompanyID() {
		return errCompanyNotFound
	}
	if err := s.companyRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errCompanyNotFound
		}
		return err
	}
	s.cache.invalidate(ctx, id, userWriteInvalidates)
	s.logger.Warn("company deleted", zap.String("companyID", id), zap.String("actorID", authCtx.Actor.ID))
	return nil
}
