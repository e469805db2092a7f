package services

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"
)

type ReportServiceInterface interface {
	GetRequestReport(ctx context.Context, filter types.RequestFilter) ([]entities.MaintenanceRequest, error)
	GetEquipmentReport(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error)
}

type reportService struct {
	requestRepo   repositories.MaintenanceRequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewReportService(
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{requestRepo: requestRepo, equipmentRepo: equipmentRepo, logger: logger}
}

func (s *reportService) authorize(ctx context.Context) (*authz.Context, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authCtx.Require(authz.ReportsView, "You don't have permission to view reports"); err != nil {
		s.logger.Warn("report access denied", zap.String("userID", authCtx.Actor.ID), zap.String("role", authCtx.Actor.Role))
		return nil, err
	}
	return authCtx, nil
}

func (s *reportService) GetRequestReport(ctx context.Context, filter types.RequestFilter) ([]entities.MaintenanceRequest, error) {
	authCtx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	return s.requestRepo.List(ctx, authCtx.Scope(), filter)
}

func (s *reportService) GetEquipmentReport(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	authCtx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	return s.equipmentRepo.List(ctx, authCtx.Scope(), filter)
}
