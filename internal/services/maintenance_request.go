package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/lifecycle"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

// EventPublisher is the part of the event bus the services use.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type MaintenanceRequestService struct {
	txManager     repositories.TxManagerInterface
	requestRepo   repositories.MaintenanceRequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	cache         *ScopedCache
	publisher     EventPublisher
	policy        lifecycle.TechnicianPolicy
	logger        *zap.Logger
	now           func() time.Time
}

func NewMaintenanceRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	cache *ScopedCache,
	publisher EventPublisher,
	policy lifecycle.TechnicianPolicy,
	logger *zap.Logger,
) *MaintenanceRequestService {
	return &MaintenanceRequestService{
		txManager:     txManager,
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
		cache:         cache,
		publisher:     publisher,
		policy:        policy,
		logger:        logger,
		now:           time.Now,
	}
}

var errRequestNotFound = apperrors.NewNotFoundError("Request not found")

// GetRequests serves lists filtered by status only from the cache.
func (s *MaintenanceRequestService) GetRequests(ctx context.Context, filter types.RequestFilter) ([]entities.MaintenanceRequest, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	if filter.Status != "" && !constants.IsValidRequestStatus(filter.Status) {
		return nil, apperrors.NewBadRequestError("Invalid status filter")
	}

	cacheable := filter.IsStatusOnly() && !scope.Empty()
	key := requestsKey(scope, filter.Status)
	if cacheable {
		var cached []entities.MaintenanceRequest
		if s.cache.get(ctx, key, &cached) {
			return cached, nil
		}
	}

	list, err := s.requestRepo.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.set(ctx, key, list, s.cache.ttl.RequestsTTL)
	}
	return list, nil
}

func (s *MaintenanceRequestService) FindRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	request, err := s.requestRepo.FindByID(ctx, nil, authCtx.Scope(), id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, errRequestNotFound
	}
	return request, err
}

// checkAssignees rejects a team or technician from another company.
func (s *MaintenanceRequestService) checkAssignees(ctx context.Context, companyID string, teamID, technicianID null.String) error {
	if teamID.Valid {
		if _, err := s.teamRepo.FindByID(ctx, nil, authz.Scope{CompanyID: companyID}, teamID.String); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("Assigned team not found")
			}
			return err
		}
	}
	if technicianID.Valid {
		if _, err := s.userRepo.FindInCompany(ctx, companyID, technicianID.String); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("Assigned technician not found")
			}
			return err
		}
	}
	return nil
}

// CreateRequest opens a NEW request. Team and technician are filled from
// the equipment defaults according to the technician policy.
func (s *MaintenanceRequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.RequestsCreate, "You don't have permission to create requests"); err != nil {
		return nil, err
	}
	if err := authCtx.CheckCompanyParam(payload.CompanyID); err != nil {
		return nil, err
	}
	companyScope := authz.Scope{CompanyID: authCtx.CompanyID()}

	if blank(payload.Subject) || payload.EquipmentID == "" {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, nil, companyScope, payload.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errEquipmentNotFound
		}
		return nil, err
	}

	assignment := s.policy.AutoAssign(equipment,
		strings.TrimSpace(utils.SafeDeref(payload.AssignedTeam)),
		strings.TrimSpace(utils.SafeDeref(payload.AssignedTechnicianID)),
	)
	if err := s.checkAssignees(ctx, companyScope.CompanyID, assignment.TeamID, assignment.TechnicianID); err != nil {
		return nil, err
	}

	request := &entities.MaintenanceRequest{
		ID:                   uuid.NewString(),
		Subject:              payload.Subject,
		Description:          optionalString(payload.Description),
		EquipmentID:          equipment.ID,
		RequestedBy:          null.StringFrom(authCtx.Actor.ID),
		CompanyID:            companyScope.CompanyID,
		MaintenanceType:      utils.FirstNonEmpty(utils.SafeDeref(payload.MaintenanceType), constants.MaintenanceCorrective),
		Priority:             utils.FirstNonEmpty(utils.SafeDeref(payload.Priority), constants.PriorityMedium),
		AssignedTeam:         assignment.TeamID,
		AssignedTechnicianID: assignment.TechnicianID,
		ScheduledDate:        optionalTime(payload.ScheduledDate),
		Notes:                optionalString(payload.Notes),
		Instructions:         optionalString(payload.Instructions),
		Status:               constants.RequestStatusNew,
	}
	if payload.Duration != nil {
		request.Duration = null.IntFrom(*payload.Duration)
	}

	if err := s.requestRepo.Create(ctx, nil, request); err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, companyScope.CompanyID, requestWriteInvalidates)
	s.logger.Info("maintenance request created",
		zap.String("requestID", request.ID),
		zap.String("equipmentID", equipment.ID),
		zap.String("teamID", request.AssignedTeam.String),
		zap.String("technicianID", request.AssignedTechnicianID.String),
		zap.String("actorID", authCtx.Actor.ID),
	)

	created, err := s.requestRepo.FindByID(ctx, nil, companyScope, request.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.RequestCreated, authCtx, created, lifecycle.EffectNone)
	return created, nil
}

// UpdateRequest applies a partial update. Any status value is accepted; an
// entry into REPAIRED or SCRAP updates the equipment in the same transaction.
func (s *MaintenanceRequestService) UpdateRequest(ctx context.Context, id string, payload dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error) {
	return s.mutate(ctx, id, func(authCtx *authz.Context, request *entities.MaintenanceRequest) error {
		patchString(&request.Subject, payload.Subject)
		if blank(request.Subject) {
			return apperrors.NewBadRequestError("Missing required fields")
		}
		patchNullString(&request.Description, payload.Description)
		if payload.Status != nil {
			request.Status = *payload.Status
		}
		if payload.Priority != nil {
			request.Priority = *payload.Priority
		}
		if payload.MaintenanceType != nil {
			request.MaintenanceType = *payload.MaintenanceType
		}

		teamChanged := payload.AssignedTeam != nil
		techChanged := payload.AssignedTechnicianID != nil
		patchNullString(&request.AssignedTeam, payload.AssignedTeam)
		patchNullString(&request.AssignedTechnicianID, payload.AssignedTechnicianID)
		if teamChanged || techChanged {
			var team, tech null.String
			if teamChanged {
				team = request.AssignedTeam
			}
			if techChanged {
				tech = request.AssignedTechnicianID
			}
			if err := s.checkAssignees(ctx, request.CompanyID, team, tech); err != nil {
				return err
			}
		}

		patchNullTime(&request.ScheduledDate, payload.ScheduledDate)
		patchNullTime(&request.CompletedDate, payload.CompletedDate)
		if payload.Duration != nil {
			request.Duration = null.IntFrom(*payload.Duration)
		}
		patchNullString(&request.Notes, payload.Notes)
		patchNullString(&request.Instructions, payload.Instructions)
		return nil
	})
}

// MoveRequest is the Kanban board move; it only allows the board transitions.
func (s *MaintenanceRequestService) MoveRequest(ctx context.Context, id string, payload dto.MoveRequestDTO) (*entities.MaintenanceRequest, error) {
	return s.mutate(ctx, id, func(_ *authz.Context, request *entities.MaintenanceRequest) error {
		if !lifecycle.CanMove(request.Status, payload.Status) {
			return apperrors.NewBadRequestError("Cannot move request from " + request.Status + " to " + payload.Status)
		}
		request.Status = payload.Status
		return nil
	})
}

// mutate locks the request row, applies change and cascades the equipment
// effect of the status change, all in one transaction.
func (s *MaintenanceRequestService) mutate(
	ctx context.Context,
	id string,
	change func(authCtx *authz.Context, request *entities.MaintenanceRequest) error,
) (*entities.MaintenanceRequest, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	companyScope := authz.Scope{CompanyID: authCtx.CompanyID()}

	var (
		effect      lifecycle.Effect
		companyID   string
		equipmentID string
	)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		request, err := s.requestRepo.FindForUpdate(ctx, tx, companyScope, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return errRequestNotFound
			}
			return err
		}
		if authCtx.IsTechnician() && request.AssignedTechnicianID.String != authCtx.Actor.ID {
			return errRequestNotFound
		}
		if !authCtx.CanUpdateRequest(request) {
			return apperrors.NewForbiddenError("You don't have permission to update this request")
		}

		previous := request.Status
		if err := change(authCtx, request); err != nil {
			return err
		}

		effect = lifecycle.EffectFor(previous, request.Status)
		if effect != lifecycle.EffectNone {
			equipment, err := s.equipmentRepo.FindForUpdate(ctx, tx, request.EquipmentID)
			if err != nil {
				return err
			}
			next, _ := lifecycle.Apply(effect, equipment, s.now())
			if err := s.equipmentRepo.UpdateCondition(ctx, tx, equipment.ID, next.Status, next.Health, next.LastMaintenance); err != nil {
				return err
			}
		}

		companyID, equipmentID = request.CompanyID, request.EquipmentID
		return s.requestRepo.Update(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, companyID, requestWriteInvalidates)
	s.logger.Info("maintenance request updated",
		zap.String("requestID", id),
		zap.String("equipmentID", equipmentID),
		zap.String("effect", effect.String()),
		zap.String("actorID", authCtx.Actor.ID),
	)

	updated, err := s.requestRepo.FindByID(ctx, nil, companyScope, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.RequestUpdated, authCtx, updated, effect)
	return updated, nil
}

func (s *MaintenanceRequestService) DeleteRequest(ctx context.Context, id string) error {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := authCtx.Require(authz.RequestsDelete, "You don't have permission to delete requests"); err != nil {
		return err
	}
	scope := authCtx.Scope()

	request, err := s.requestRepo.FindByID(ctx, nil, scope, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errRequestNotFound
		}
		return err
	}
	if err := s.requestRepo.Delete(ctx, nil, scope, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errRequestNotFound
		}
		return err
	}

	s.cache.invalidate(ctx, scope.CompanyID, requestWriteInvalidates)
	s.logger.Info("maintenance request deleted", zap.String("requestID", id), zap.String("actorID", authCtx.Actor.ID))

	s.publisher.Publish(ctx, events.RequestChangedEvent{
		Type:         events.RequestDeleted,
		CompanyID:    request.CompanyID,
		RequestID:    id,
		TechnicianID: request.AssignedTechnicianID.String,
		ActorID:      authCtx.Actor.ID,
	})
	return nil
}

func (s *MaintenanceRequestService) publish(ctx context.Context, eventType string, authCtx *authz.Context, request *entities.MaintenanceRequest, effect lifecycle.Effect) {
	event := events.RequestChangedEvent{
		Type:         eventType,
		CompanyID:    request.CompanyID,
		RequestID:    request.ID,
		TechnicianID: request.AssignedTechnicianID.String,
		ActorID:      authCtx.Actor.ID,
		Request:      request,
	}
	if effect != lifecycle.EffectNone {
		event.EquipmentEffect = effect.String()
	}
	s.publisher.Publish(ctx, event)
}
