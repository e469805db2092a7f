package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
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
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
)

type AuthServiceInterface interface {
	SignUp(ctx context.Context, payload dto.SignUpDTO) (*entities.User, string, error)
	SignIn(ctx context.Context, payload dto.SignInDTO) (*entities.User, string, error)
	SignOut(ctx context.Context, token string) error
	CheckFirstUser(ctx context.Context) (bool, error)
	// ResolveSession turns a session token into the current user row.
	ResolveSession(ctx context.Context, token string) (*entities.User, *service.SessionClaims, error)
	Me(ctx context.Context) (*dto.ProfileDTO, error)
}

type AuthService struct {
	txManager   repositories.TxManagerInterface
	userRepo    repositories.UserRepositoryInterface
	companyRepo repositories.CompanyRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	jwtService  service.JWTService
	cfg         config.AuthConfig
	logger      *zap.Logger
}

func NewAuthService(
	txManager repositories.TxManagerInterface,
	userRepo repositories.UserRepositoryInterface,
	companyRepo repositories.CompanyRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		txManager:   txManager,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		cacheRepo:   cacheRepo,
		jwtService:  jwtService,
		cfg:         cfg,
		logger:      logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) checkPassword(password string) error {
	if len(password) < s.cfg.MinPasswordLength {
		return apperrors.NewBadRequestError("Password must be at least 8 characters")
	}
	return nil
}

func (s *AuthService) SignUp(ctx context.Context, payload dto.SignUpDTO) (*entities.User, string, error) {
	email := normalizeEmail(payload.Email)
	name := strings.TrimSpace(payload.Name)
	if email == "" || payload.Password == "" || name == "" || payload.Company == nil || strings.TrimSpace(payload.Company.Name) == "" {
		return nil, "", apperrors.NewBadRequestError("Missing required fields")
	}
	if err := s.checkPassword(payload.Password); err != nil {
		return nil, "", err
	}

	role := payload.Role
	if role == "" {
		role = constants.RoleAdmin
	}

	hashed, err := utils.HashPassword(payload.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	companyName := strings.TrimSpace(payload.Company.Name)
	var user *entities.User

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.userRepo.FindByEmail(ctx, tx, email); err == nil {
			return apperrors.NewConflictError("User already exists")
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		count, err := s.userRepo.Count(ctx, tx)
		if err != nil {
			return err
		}
		if count == 0 {
			role = constants.RoleAdmin
		}

		company, err := s.companyRepo.FindByName(ctx, tx, companyName)
		switch {
		case err == nil:
			if role == constants.RoleAdmin {
				hasAdmin, err := s.userRepo.CompanyHasAdmin(ctx, tx, company.ID)
				if err != nil {
					return err
				}
				if hasAdmin {
					return apperrors.NewConflictError("Company already has an admin")
				}
			}
		case errors.Is(err, apperrors.ErrNotFound):
			if role != constants.RoleAdmin {
				return apperrors.NewNotFoundError("Company doesn't exist")
			}
			company = &entities.Company{ID: uuid.NewString(), Name: companyName}
			if loc := strings.TrimSpace(payload.Company.Location); loc != "" {
				company.Location = null.StringFrom(loc)
			}
			if err := s.companyRepo.Create(ctx, tx, company); err != nil {
				return err
			}
		default:
			return err
		}

		user = &entities.User{
			ID:          uuid.NewString(),
			Email:       email,
			Password:    hashed,
			Name:        name,
			Role:        role,
			CompanyID:   null.StringFrom(company.ID),
			CompanyName: company.Name,
		}
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, "", err
	}

	token, _, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user signed up",
		zap.String("userID", user.ID),
		zap.String("role", user.Role),
		zap.String("companyID", user.CompanyID.String),
	)
	return user, token, nil
}

func lockoutKey(userID string) string {
	return "auth:lockout:" + userID
}

func attemptsKey(userID string) string {
	return "auth:attempts:" + userID
}

func (s *AuthService) SignIn(ctx context.Context, payload dto.SignInDTO) (*entities.User, string, error) {
	email := normalizeEmail(payload.Email)
	if email == "" || payload.Password == "" {
		return nil, "", apperrors.NewBadRequestError("Email and password required")
	}

	user, err := s.userRepo.FindByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if _, err := s.cacheRepo.Get(ctx, lockoutKey(user.ID)); err == nil {
		s.logger.Warn("sign-in rejected for locked account", zap.String("userID", user.ID))
		return nil, "", apperrors.ErrAccountLocked
	}

	if !utils.ComparePasswords(user.Password, payload.Password) {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, "", apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	token, _, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID string) {
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey(userID))
	if err != nil {
		s.logger.Warn("failed to count sign-in attempt", zap.String("userID", userID), zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey(userID), s.cfg.LockoutDuration)
	}
	if s.cfg.MaxLoginAttempts > 0 && attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, lockoutKey(userID), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey(userID))
		s.logger.Warn("account locked after failed sign-in attempts", zap.String("userID", userID))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID string) {
	_ = s.cacheRepo.Del(ctx, attemptsKey(userID), lockoutKey(userID))
}

func revokedKey(jti string) string {
	return "auth:revoked:" + jti
}

// SignOut revokes the token for the rest of its lifetime. An invalid or
// expired token needs no revocation.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || claims.ID == "" {
		return nil
	}
	if err := s.cacheRepo.Set(ctx, revokedKey(claims.ID), claims.UserID, remaining); err != nil {
		s.logger.Warn("failed to revoke session", zap.String("userID", claims.UserID), zap.Error(err))
	}
	return nil
}

func (s *AuthService) CheckFirstUser(ctx context.Context) (bool, error) {
	count, err := s.userRepo.Count(ctx, nil)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *AuthService) ResolveSession(ctx context.Context, token string) (*entities.User, *service.SessionClaims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, nil, err
	}

	if claims.ID != "" {
		_, err := s.cacheRepo.Get(ctx, revokedKey(claims.ID))
		switch {
		case err == nil:
			return nil, nil, apperrors.ErrTokenRevoked
		case !errors.Is(err, repositories.ErrCacheMiss):
			s.logger.Warn("revocation check failed", zap.Error(err))
		}
	}

	user, err := s.userRepo.FindByID(ctx, nil, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrUnauthorized
		}
		return nil, nil, err
	}
	return user, claims, nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.ProfileDTO, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	permissions := make([]string, 0, len(authCtx.Permissions))
	for p, granted := range authCtx.Permissions {
		if granted {
			permissions = append(permissions, p)
		}
	}
	sort.Strings(permissions)
	return &dto.ProfileDTO{User: authCtx.Actor, Permissions: permissions}, nil
}
