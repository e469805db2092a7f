package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type UserService struct {
	txManager repositories.TxManagerInterface
	userRepo  repositories.UserRepositoryInterface
	cache     *ScopedCache
	cfg       config.AuthConfig
	logger    *zap.Logger
}

func NewUserService(
	txManager repositories.TxManagerInterface,
	userRepo repositories.UserRepositoryInterface,
	cache *ScopedCache,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *UserService {
	return &UserService{txManager: txManager, userRepo: userRepo, cache: cache, cfg: cfg, logger: logger}
}

var errUserNotFound = apperrors.NewNotFoundError("User not found")

func (s *UserService) ListUsers(ctx context.Context, filter types.UserFilter) ([]entities.User, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, authCtx.CompanyID(), filter)
}

func (s *UserService) FindUser(ctx context.Context, id string) (*entities.User, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindInCompany(ctx, authCtx.CompanyID(), id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, errUserNotFound
	}
	return user, err
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.UsersManage, "Only ADMIN can create users"); err != nil {
		return nil, err
	}
	if authCtx.CompanyID() == "" {
		return nil, apperrors.NewBadRequestError("Company is required")
	}
	if len(payload.Password) < s.cfg.MinPasswordLength {
		return nil, apperrors.NewBadRequestError("Password must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(payload.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	if payload.Role == constants.RoleAdmin {
		if err := s.ensureNoAdmin(ctx, authCtx.CompanyID()); err != nil {
			return nil, err
		}
	}

	user := &entities.User{
		ID:          uuid.NewString(),
		Email:       normalizeEmail(payload.Email),
		Password:    hashed,
		Name:        payload.Name,
		Role:        payload.Role,
		CompanyID:   authCtx.Actor.CompanyID,
		CompanyName: authCtx.Actor.CompanyName,
		Department:  optionalString(payload.Department),
	}
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		var httpErr *apperrors.HttpError
		if !errors.As(err, &httpErr) && errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("User already exists")
		}
		return nil, err
	}

	s.cache.invalidate(ctx, authCtx.CompanyID(), userWriteInvalidates)
	s.logger.Info("user created",
		zap.String("userID", user.ID),
		zap.String("role", user.Role),
		zap.String("actorID", authCtx.Actor.ID),
	)
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.UsersManage, "Only ADMIN can update users"); err != nil {
		return nil, err
	}

	user, err := s.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	patchString(&user.Name, payload.Name)
	if payload.Role != nil {
		if *payload.Role == constants.RoleAdmin && user.Role != constants.RoleAdmin {
			if err := s.ensureNoAdmin(ctx, authCtx.CompanyID()); err != nil {
				return nil, err
			}
		}
		user.Role = *payload.Role
	}
	patchNullString(&user.Department, payload.Department)
	if payload.Password != nil && *payload.Password != "" {
		if len(*payload.Password) < s.cfg.MinPasswordLength {
			return nil, apperrors.NewBadRequestError("Password must be at least 8 characters")
		}
		hashed, err := utils.HashPassword(*payload.Password, s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	s.cache.invalidate(ctx, authCtx.CompanyID(), userWriteInvalidates)
	s.logger.Info("user updated", zap.String("userID", user.ID), zap.String("actorID", authCtx.Actor.ID))
	return user, nil
}

// ensureNoAdmin enforces one ADMIN per company. The partial unique index
// users_one_admin_per_company catches concurrent promotions.
func (s *UserService) ensureNoAdmin(ctx context.Context, companyID string) error {
	hasAdmin, err := s.userRepo.CompanyHasAdmin(ctx, nil, companyID)
	if err != nil {
		return err
	}
	if hasAdmin {
		return apperrors.NewConflictError("Company already has an admin")
	}
	return nil
}

// DeleteUser releases the user's equipment and request assignments and
// deletes the row in one transaction.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := authCtx.Require(authz.UsersManage, "Only ADMIN can delete users"); err != nil {
		return err
	}
	if id == authCtx.Actor.ID {
		return apperrors.NewBadRequestError("Cannot delete your own account")
	}
	if _, err := s.FindUser(ctx, id); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepo.ReleaseAssignments(ctx, tx, id); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errUserNotFound
		}
		return err
	}

	s.cache.invalidate(ctx, authCtx.CompanyID(), userWriteInvalidates)
	s.logger.Info("user deleted", zap.String("userID", id), zap.String("actorID", authCtx.Actor.ID))
	return nil
}
