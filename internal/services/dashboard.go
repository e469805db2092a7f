package services

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

type DashboardService struct {
	repo   repositories.DashboardRepositoryInterface
	cache  *ScopedCache
	logger *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, cache *ScopedCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, logger: logger}
}

// GetDashboardStats runs the three aggregates in parallel. Technicians only
// count the requests assigned to them.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	authCtx, err := authz.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	scope := authCtx.Scope()

	key := dashboardKey(scope)
	if !scope.Empty() {
		var cached dto.DashboardStatsDTO
		if s.cache.get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	var (
		wg        sync.WaitGroup
		equipment *types.DashboardEquipmentStats
		requests  *types.DashboardRequestStats
		teams     *types.DashboardTeamStats

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) {
		equipment, err = s.repo.GetEquipmentStats(ctx, scope.CompanyCondition("e.company_id"))
		return
	})
	addTask(func() (err error) {
		requests, err = s.repo.GetRequestStats(ctx, scope.RequestCondition("r"))
		return
	})
	addTask(func() (err error) {
		teams, err = s.repo.GetTeamStats(ctx, scope.CompanyCondition("t.company_id"))
		return
	})

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("dashboard fetching error", zap.Error(errs[0]))
		return nil, apperrors.NewInternalError("Failed to load dashboard")
	}

	equipment.AverageHealth = math.Round(equipment.AverageHealth*100) / 100
	requests.Completed = requests.Repaired
	requests.CompletionRate = completionRate(requests.Repaired, requests.Total)

	stats := &dto.DashboardStatsDTO{Equipment: *equipment, Requests: *requests, Teams: *teams}
	if !scope.Empty() {
		s.cache.set(ctx, key, stats, s.cache.ttl.DashboardTTL)
	}
	return stats, nil
}

// completionRate is the rounded share of repaired requests, 0 without requests.
func completionRate(repaired, total int64) int64 {
	if total == 0 {
		return 0
	}
	return int64(math.Round(float64(repaired) / float64(total) * 100))
}
