package services

import (
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

// Work center defaults applied when the create payload omits them.
const (
	defaultCapabilityTimeEfficiency = 100
	defaultOeTargetPercentage       = 90
)

type WorkCenterService struct {
	workCenterRepo repositories.WorkCenterRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	logger         *zap.Logger
}

func NewWorkCenterService(
	workCenterRepo repositories.WorkCenterRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) *WorkCenterService {
	return &WorkCenterService{workCenterRepo: workCenterRepo, equipmentRepo: equipmentRepo, logger: logger}
}

var errWorkCenterNotFound = apperrors.NewNotFoundError("Work center not found")

const workCenterWriteDenied = "You don't have permission to manage work centers"

func (s *WorkCenterService) GetWorkCenters(ctx context.Context) ([]entities.WorkCenter, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.workCenterRepo.List(ctx, authCtx.Scope())
}

func (s *WorkCenterService) FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	center, err := s.workCenterRepo.FindByID(ctx, nil, authCtx.Scope(), id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, errWorkCenterNotFound
	}
	return center, err
}

func (s *WorkCenterService) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.WorkCentersWrite, workCenterWriteDenied); err != nil {
		return nil, err
	}
	if err := authCtx.CheckCompanyParam(payload.CompanyID); err != nil {
		return nil, err
	}
	scope := authCtx.Scope()
	if scope.Empty() {
		return nil, apperrors.NewBadRequestError("Company is required")
	}

	if blank(payload.Name) || blank(payload.Code) {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}

	center := &entities.WorkCenter{
		ID:                       uuid.NewString(),
		Name:                     payload.Name,
		Code:                     payload.Code,
		Location:                 optionalString(payload.Location),
		CapabilityTimeEfficiency: defaultCapabilityTimeEfficiency,
		OeTargetPercentage:       defaultOeTargetPercentage,
		CompanyID:                scope.CompanyID,
	}
	if payload.CostPerHour != nil {
		center.CostPerHour = *payload.CostPerHour
	}
	if payload.CapabilityTimeEfficiency != nil {
		center.CapabilityTimeEfficiency = *payload.CapabilityTimeEfficiency
	}
	if payload.OeTargetPercentage != nil {
		center.OeTargetPercentage = *payload.OeTargetPercentage
	}

	if err := s.workCenterRepo.Create(ctx, nil, center); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("Work center code already exists")
		}
		return nil, err
	}

	s.logger.Info("work center created",
		zap.String("workCenterID", center.ID),
		zap.String("code", center.Code),
		zap.String("actorID", authCtx.Actor.ID),
	)
	return center, nil
}

// UpdateWorkCenter never changes the code.
func (s *WorkCenterService) UpdateWorkCenter(ctx context.Context, id string, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.WorkCentersWrite, workCenterWriteDenied); err != nil {
		return nil, err
	}

	center, err := s.FindWorkCenter(ctx, id)
	if err != nil {
		return nil, err
	}

	patchString(&center.Name, payload.Name)
	if blank(center.Name) {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}
	patchNullString(&center.Location, payload.Location)
	if payload.CostPerHour != nil {
		center.CostPerHour = *payload.CostPerHour
	}
	if payload.CapabilityTimeEfficiency != nil {
		center.CapabilityTimeEfficiency = *payload.CapabilityTimeEfficiency
	}
	if payload.OeTargetPercentage != nil {
		center.OeTargetPercentage = *payload.OeTargetPercentage
	}

	if err := s.workCenterRepo.Update(ctx, nil, center); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errWorkCenterNotFound
		}
		return nil, err
	}

	s.logger.Info("work center updated", zap.String("workCenterID", id), zap.String("actorID", authCtx.Actor.ID))
	return center, nil
}

func (s *WorkCenterService) DeleteWorkCenter(ctx context.Context, id string) error {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := authCtx.Require(authz.WorkCentersWrite, workCenterWriteDenied); err != nil {
		return err
	}

	if err := s.workCenterRepo.Delete(ctx, nil, authCtx.Scope(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errWorkCenterNotFound
		}
		return err
	}

	s.logger.Info("work center deleted", zap.String("workCenterID", id), zap.String("actorID", authCtx.Actor.ID))
	return nil
}

// AssignEquipment links equipment of the caller's company to the work center.
func (s *WorkCenterService) AssignEquipment(ctx context.Context, id string, payload dto.AssignEquipmentDTO) (*entities.WorkCenterAssignment, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.WorkCentersWrite, workCenterWriteDenied); err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	if _, err := s.FindWorkCenter(ctx, id); err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.FindByID(ctx, nil, scope, payload.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errEquipmentNotFound
		}
		return nil, err
	}

	alternatives := make([]string, 0, len(payload.AlternativeWorkCenters))
	for _, altID := range payload.AlternativeWorkCenters {
		if altID == id {
			continue
		}
		if _, err := s.FindWorkCenter(ctx, altID); err != nil {
			return nil, err
		}
		alternatives = append(alternatives, altID)
	}

	assignment := &entities.WorkCenterAssignment{
		ID:                     uuid.NewString(),
		WorkCenterID:           id,
		EquipmentID:            equipment.ID,
		AssignedBy:             null.StringFrom(authCtx.Actor.ID),
		AlternativeWorkCenters: alternatives,
		Equipment: &entities.EquipmentShort{
			ID:           equipment.ID,
			Name:         equipment.Name,
			SerialNumber: equipment.SerialNumber,
			Category:     equipment.Category,
			Status:       equipment.Status,
			Health:       equipment.Health,
		},
	}
	if err := s.workCenterRepo.CreateAssignment(ctx, nil, assignment); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("Equipment already assigned to this work center")
		}
		return nil, err
	}

	s.logger.Info("equipment assigned to work center",
		zap.String("workCenterID", id),
		zap.String("equipmentID", equipment.ID),
		zap.String("actorID", authCtx.Actor.ID),
	)
	return assignment, nil
}
