package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
)

// Cache key prefixes. Every key is "<prefix>:<companyId>[:...]".
const (
	prefixEquipment = "equipment"
	prefixTeams     = "teams"
	prefixRequests  = "requests"
	prefixDashboard = "dashboard:stats"
)

// Prefix groups invalidated by each kind of write.
var (
	equipmentWriteInvalidates = []string{prefixEquipment, prefixRequests, prefixDashboard}
	requestWriteInvalidates   = []string{prefixRequests, prefixEquipment, prefixDashboard}
	teamWriteInvalidates      = []string{prefixTeams, prefixRequests, prefixDashboard}
	userWriteInvalidates      = []string{prefixTeams, prefixRequests, prefixEquipment, prefixDashboard}
)

// ScopedCache is the read-through, invalidate-on-write layer in front of
// the list and dashboard queries. Cache failures are logged and the caller
// falls back to the database.
type ScopedCache struct {
	repo   repositories.CacheRepositoryInterface
	ttl    config.CacheConfig
	logger *zap.Logger
}

func NewScopedCache(repo repositories.CacheRepositoryInterface, ttl config.CacheConfig, logger *zap.Logger) *ScopedCache {
	return &ScopedCache{repo: repo, ttl: ttl, logger: logger}
}

func equipmentKey(companyID string) string {
	return prefixEquipment + ":" + companyID
}

func teamsKey(companyID string) string {
	return prefixTeams + ":" + companyID
}

func requestsKey(scope authz.Scope, status string) string {
	key := prefixRequests + ":" + scope.CompanyID
	if status != "" {
		key += ":" + status
	}
	if scope.TechnicianID != "" {
		key += ":tech:" + scope.TechnicianID
	}
	return key
}

func dashboardKey(scope authz.Scope) string {
	key := prefixDashboard + ":" + scope.CompanyID
	if scope.TechnicianID != "" {
		key += ":tech:" + scope.TechnicianID
	}
	return key
}

// get decodes a cached JSON value into dest. It reports false on a miss or
// any cache failure.
func (c *ScopedCache) get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Warn("cache entry is not valid JSON", zap.String("key", key), zap.Error(err))
		return false
	}
	c.logger.Debug("cache hit", zap.String("key", key))
	return true
}

func (c *ScopedCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.repo.Set(ctx, key, string(data), ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops every key of the company under the given prefixes.
func (c *ScopedCache) invalidate(ctx context.Context, companyID string, prefixes []string) {
	if companyID == "" {
		return
	}
	for _, prefix := range prefixes {
		key := prefix + ":" + companyID
		if err := c.repo.Del(ctx, key); err != nil {
			c.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
		if err := c.repo.DelByPattern(ctx, key+":*"); err != nil {
			c.logger.Warn("cache invalidation failed", zap.String("pattern", key+":*"), zap.Error(err))
		}
	}
}
