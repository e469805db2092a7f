package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

type TeamService struct {
	txManager   repositories.TxManagerInterface
	teamRepo    repositories.TeamRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	requestRepo repositories.MaintenanceRequestRepositoryInterface
	cache       *ScopedCache
	logger      *zap.Logger
}

func NewTeamService(
	txManager repositories.TxManagerInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	cache *ScopedCache,
	logger *zap.Logger,
) *TeamService {
	return &TeamService{
		txManager:   txManager,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		cache:       cache,
		logger:      logger,
	}
}

var errTeamNotFound = apperrors.NewNotFoundError("Team not found")

const teamWriteDenied = "You don't have permission to manage teams"

func (s *TeamService) GetTeams(ctx context.Context) ([]entities.Team, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	scope := authCtx.Scope()
	if scope.Empty() {
		return make([]entities.Team, 0), nil
	}

	key := teamsKey(scope.CompanyID)
	var cached []entities.Team
	if s.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	teams, err := s.teamRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, teams, s.cache.ttl.TeamsTTL)
	return teams, nil
}

// FindTeam returns the team with its members and assigned requests.
func (s *TeamService) FindTeam(ctx context.Context, id string) (*entities.Team, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	team, err := s.findInScope(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.List(ctx, scope, types.RequestFilter{TeamID: id})
	if err != nil {
		return nil, err
	}
	team.Requests = requests
	return team, nil
}

func (s *TeamService) findInScope(ctx context.Context, scope authz.Scope, id string) (*entities.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, nil, scope, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, errTeamNotFound
	}
	return team, err
}

// CreateTeam creates the team and its initial members in one transaction.
func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.TeamsWrite, teamWriteDenied); err != nil {
		return nil, err
	}
	if err := authCtx.CheckCompanyParam(payload.CompanyID); err != nil {
		return nil, err
	}
	scope := authCtx.Scope()
	if scope.Empty() {
		return nil, apperrors.NewBadRequestError("Company is required")
	}

	if blank(payload.Name) {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}

	memberIDs := make([]string, 0, len(payload.MemberIDs))
	seen := make(map[string]bool, len(payload.MemberIDs))
	for _, userID := range payload.MemberIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		if _, err := s.userRepo.FindInCompany(ctx, scope.CompanyID, userID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, errUserNotFound
			}
			return nil, err
		}
		memberIDs = append(memberIDs, userID)
	}

	team := &entities.Team{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Description: optionalString(payload.Description),
		CompanyID:   scope.CompanyID,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			return err
		}
		for _, userID := range memberIDs {
			member := &entities.TeamMember{
				ID:     uuid.NewString(),
				TeamID: team.ID,
				UserID: userID,
				Role:   constants.DefaultTeamMemberRole,
			}
			if err := s.teamRepo.AddMember(ctx, tx, member); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, scope.CompanyID, teamWriteInvalidates)
	s.logger.Info("team created",
		zap.String("teamID", team.ID),
		zap.Int("members", len(memberIDs)),
		zap.String("actorID", authCtx.Actor.ID),
	)
	return s.findInScope(ctx, scope, team.ID)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.TeamsWrite, teamWriteDenied); err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	team, err := s.findInScope(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	patchString(&team.Name, payload.Name)
	patchNullString(&team.Description, payload.Description)
	if blank(team.Name) {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}

	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errTeamNotFound
		}
		return nil, err
	}

	s.cache.invalidate(ctx, scope.CompanyID, teamWriteInvalidates)
	s.logger.Info("team updated", zap.String("teamID", id), zap.String("actorID", authCtx.Actor.ID))
	return team, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := authCtx.Require(authz.TeamsWrite, teamWriteDenied); err != nil {
		return err
	}
	scope := authCtx.Scope()

	if err := s.teamRepo.Delete(ctx, nil, scope, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errTeamNotFound
		}
		return err
	}

	s.cache.invalidate(ctx, scope.CompanyID, teamWriteInvalidates)
	s.logger.Info("team deleted", zap.String("teamID", id), zap.String("actorID", authCtx.Actor.ID))
	return nil
}

func (s *TeamService) AddMember(ctx context.Context, teamID string, payload dto.AddTeamMemberDTO) (*entities.Team, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.TeamsWrite, teamWriteDenied); err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	if _, err := s.findInScope(ctx, scope, teamID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindInCompany(ctx, scope.CompanyID, payload.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	role := constants.DefaultTeamMemberRole
	if payload.Role != nil && strings.TrimSpace(*payload.Role) != "" {
		role = strings.TrimSpace(*payload.Role)
	}
	member := &entities.TeamMember{
		ID:     uuid.NewString(),
		TeamID: teamID,
		UserID: payload.UserID,
		Role:   role,
	}
	if err := s.teamRepo.AddMember(ctx, nil, member); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("Member already in team")
		}
		return nil, err
	}

	s.cache.invalidate(ctx, scope.CompanyID, teamWriteInvalidates)
	s.logger.Info("team member added",
		zap.String("teamID", teamID),
		zap.String("userID", payload.UserID),
		zap.String("actorID", authCtx.Actor.ID),
	)
	return s.findInScope(ctx, scope, teamID)
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID string, payload dto.RemoveTeamMemberDTO) error {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := authCtx.Require(authz.TeamsWrite, teamWriteDenied); err != nil {
		return err
	}
	scope := authCtx.Scope()

	if _, err := s.findInScope(ctx, scope, teamID); err != nil {
		return err
	}
	if err := s.teamRepo.RemoveMember(ctx, nil, teamID, payload.MemberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Member not found")
		}
		return err
	}

	s.cache.invalidate(ctx, scope.CompanyID, teamWriteInvalidates)
	s.logger.Info("team member removed",
		zap.String("teamID", teamID),
		zap.String("memberID", payload.MemberID),
		zap.String("actorID", authCtx.Actor.ID),
	)
	return nil
}
