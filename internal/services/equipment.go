package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	requestRepo   repositories.MaintenanceRequestRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	cache         *ScopedCache
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	cache *ScopedCache,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		requestRepo:   requestRepo,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
		cache:         cache,
		logger:        logger,
	}
}

var errEquipmentNotFound = apperrors.NewNotFoundError("Equipment not found")

// GetEquipments serves the unfiltered list from the cache.
func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	cacheable := filter.IsZero() && !scope.Empty()
	key := equipmentKey(scope.CompanyID)
	if cacheable {
		var cached []entities.Equipment
		if s.cache.get(ctx, key, &cached) {
			return cached, nil
		}
	}

	list, err := s.equipmentRepo.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.set(ctx, key, list, s.cache.ttl.EquipmentTTL)
	}
	return list, nil
}

// GetCriticalEquipment lists equipment that is CRITICAL or below the health threshold.
func (s *EquipmentService) GetCriticalEquipment(ctx context.Context) ([]entities.Equipment, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.equipmentRepo.List(ctx, authCtx.Scope(), types.EquipmentFilter{CriticalOnly: true})
}

// FindEquipment returns the equipment with its non-cancelled requests.
func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	equipment, err := s.equipmentRepo.FindByID(ctx, nil, scope, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errEquipmentNotFound
		}
		return nil, err
	}

	requests, err := s.requestRepo.List(ctx, scope, types.RequestFilter{EquipmentID: id})
	if err != nil {
		return nil, err
	}
	equipment.MaintenanceRequests = make([]entities.MaintenanceRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status != constants.RequestStatusCancelled {
			equipment.MaintenanceRequests = append(equipment.MaintenanceRequests, r)
		}
	}
	return equipment, nil
}

// checkReferences rejects a technician or team from another company.
func (s *EquipmentService) checkReferences(ctx context.Context, scope authz.Scope, equipment *entities.Equipment) error {
	if equipment.AssignedTechnicianID.Valid {
		if _, err := s.userRepo.FindInCompany(ctx, scope.CompanyID, equipment.AssignedTechnicianID.String); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("Assigned technician not found")
			}
			return err
		}
	}
	if equipment.DefaultMaintenanceTeamID.Valid {
		if _, err := s.teamRepo.FindByID(ctx, nil, authz.Scope{CompanyID: scope.CompanyID}, equipment.DefaultMaintenanceTeamID.String); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("Default maintenance team not found")
			}
			return err
		}
	}
	return nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.EquipmentWrite, "You don't have permission to manage equipment"); err != nil {
		return nil, err
	}
	if err := authCtx.CheckCompanyParam(payload.CompanyID); err != nil {
		return nil, err
	}
	scope := authCtx.Scope()
	if scope.Empty() {
		return nil, apperrors.NewBadRequestError("Company is required")
	}

	if blank(payload.Name) || blank(payload.SerialNumber) || blank(payload.Category) {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}

	equipment := &entities.Equipment{
		ID:                       uuid.NewString(),
		Name:                     payload.Name,
		SerialNumber:             payload.SerialNumber,
		Category:                 payload.Category,
		Department:               optionalString(payload.Department),
		AssignedTo:               optionalString(payload.AssignedTo),
		Location:                 optionalString(payload.Location),
		PurchaseDate:             optionalTime(payload.PurchaseDate),
		WarrantyInfo:             optionalString(payload.WarrantyInfo),
		CompanyID:                scope.CompanyID,
		AssignedTechnicianID:     optionalString(payload.AssignedTechnicianID),
		DefaultMaintenanceTeamID: optionalString(payload.DefaultMaintenanceTeamID),
		Health:                   constants.MaxHealth,
		Status:                   constants.EquipmentOperational,
		NextScheduled:            optionalTime(payload.NextScheduled),
	}
	if payload.Health != nil {
		equipment.Health = *payload.Health
	}
	if payload.Status != nil {
		equipment.Status = *payload.Status
	}

	if err := s.checkReferences(ctx, scope, equipment); err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.Create(ctx, nil, equipment); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("Serial number already exists")
		}
		return nil, err
	}

	s.cache.invalidate(ctx, scope.CompanyID, equipmentWriteInvalidates)
	s.logger.Info("equipment created",
		zap.String("equipmentID", equipment.ID),
		zap.String("serialNumber", equipment.SerialNumber),
		zap.String("actorID", authCtx.Actor.ID),
	)
	return s.FindEquipment(ctx, equipment.ID)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.EquipmentWrite, "You don't have permission to manage equipment"); err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	equipment, err := s.equipmentRepo.FindByID(ctx, nil, scope, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errEquipmentNotFound
		}
		return nil, err
	}

	patchString(&equipment.Name, payload.Name)
	patchString(&equipment.Category, payload.Category)
	patchNullString(&equipment.Department, payload.Department)
	patchNullString(&equipment.AssignedTo, payload.AssignedTo)
	patchNullString(&equipment.Location, payload.Location)
	patchNullTime(&equipment.PurchaseDate, payload.PurchaseDate)
	patchNullString(&equipment.WarrantyInfo, payload.WarrantyInfo)
	patchNullString(&equipment.AssignedTechnicianID, payload.AssignedTechnicianID)
	patchNullString(&equipment.DefaultMaintenanceTeamID, payload.DefaultMaintenanceTeamID)
	patchNullTime(&equipment.LastMaintenance, payload.LastMaintenance)
	patchNullTime(&equipment.NextScheduled, payload.NextScheduled)
	if payload.Health != nil {
		equipment.Health = *payload.Health
	}
	if payload.Status != nil {
		equipment.Status = *payload.Status
	}
	if blank(equipment.Name) || blank(equipment.Category) {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}

	if err := s.checkReferences(ctx, scope, equipment); err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.Update(ctx, nil, equipment); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errEquipmentNotFound
		}
		return nil, err
	}

	s.cache.invalidate(ctx, scope.CompanyID, equipmentWriteInvalidates)
	s.logger.Info("equipment updated", zap.String("equipmentID", id), zap.String("actorID", authCtx.Actor.ID))
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := authCtx.Require(authz.EquipmentWrite, "You don't have permission to manage equipment"); err != nil {
		return err
	}
	scope := authCtx.Scope()

	if err := s.equipmentRepo.Delete(ctx, nil, scope, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errEquipmentNotFound
		}
		return err
	}

	s.cache.invalidate(ctx, scope.CompanyID, equipmentWriteInvalidates)
	s.logger.Info("equipment deleted", zap.String("equipmentID", id), zap.String("actorID", authCtx.Actor.ID))
	return nil
}
