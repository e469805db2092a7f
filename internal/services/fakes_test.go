package services

import (
	"context"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	"gearguard/internal/lifecycle"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/service"
	"gearguard/pkg/types"
)

var (
	_ repositories.TxManagerInterface                    = (*fakeTxManager)(nil)
	_ repositories.UserRepositoryInterface               = (*fakeUserRepo)(nil)
	_ repositories.CompanyRepositoryInterface            = (*fakeCompanyRepo)(nil)
	_ repositories.CacheRepositoryInterface              = (*fakeCache)(nil)
	_ repositories.EquipmentRepositoryInterface          = (*fakeEquipmentRepo)(nil)
	_ repositories.TeamRepositoryInterface               = (*fakeTeamRepo)(nil)
	_ repositories.MaintenanceRequestRepositoryInterface = (*fakeRequestRepo)(nil)
	_ repositories.WorkCenterRepositoryInterface         = (*fakeWorkCenterRepo)(nil)
	_ repositories.DashboardRepositoryInterface          = (*fakeDashboardRepo)(nil)
	_ EventPublisher                                     = (*fakePublisher)(nil)
)

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

// ---- users ----

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[string]*entities.User
	released []string
	// staleAdminCheck makes CompanyHasAdmin miss existing admins, like a
	// concurrent promotion that commits after the check.
	staleAdminCheck bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entities.User{}}
}

func (r *fakeUserRepo) put(u *entities.User) *entities.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return u
}

func (r *fakeUserRepo) FindByID(_ context.Context, _ pgx.Tx, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ pgx.Tx, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindInCompany(ctx context.Context, companyID, id string) (*entities.User, error) {
	u, err := r.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if companyID == "" || u.CompanyID.String != companyID {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) List(_ context.Context, companyID string, filter types.UserFilter) ([]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.User, 0)
	for _, u := range r.users {
		if companyID != "" && u.CompanyID.String == companyID && (filter.Role == "" || u.Role == filter.Role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(context.Context, pgx.Tx) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CompanyHasAdmin(_ context.Context, _ pgx.Tx, companyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleAdminCheck {
		return false, nil
	}
	for _, u := range r.users {
		if u.CompanyID.String == companyID && u.Role == constants.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

// violatesOneAdmin mirrors the users_one_admin_per_company index.
func (r *fakeUserRepo) violatesOneAdmin(user *entities.User) bool {
	if user.Role != constants.RoleAdmin || !user.CompanyID.Valid {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID != user.ID && u.Role == constants.RoleAdmin && u.CompanyID == user.CompanyID {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) Create(ctx context.Context, _ pgx.Tx, user *entities.User) error {
	if _, err := r.FindByEmail(ctx, nil, user.Email); err == nil {
		return apperrors.ErrConflict
	}
	if r.violatesOneAdmin(user) {
		return apperrors.NewConflictError("Company already has an admin")
	}
	user.CreatedAt, user.UpdatedAt = time.Now(), time.Now()
	r.put(user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, _ pgx.Tx, user *entities.User) error {
	if _, err := r.FindByID(ctx, nil, user.ID); err != nil {
		return err
	}
	if r.violatesOneAdmin(user) {
		return apperrors.NewConflictError("Company already has an admin")
	}
	user.UpdatedAt = time.Now()
	r.put(user)
	return nil
}

func (r *fakeUserRepo) ReleaseAssignments(_ context.Context, _ pgx.Tx, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, userID)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, _ pgx.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// ---- companies ----

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*entities.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*entities.Company{}}
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, _ pgx.Tx, id string) (*entities.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) FindByName(_ context.Context, _ pgx.Tx, name string) (*entities.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeCompanyRepo) Create(ctx context.Context, _ pgx.Tx, company *entities.Company) error {
	if _, err := r.FindByName(ctx, nil, company.Name); err == nil {
		return apperrors.ErrConflict
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, _ pgx.Tx, company *entities.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, _ pgx.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

// ---- cache ----

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.data[key] = v
	default:
		c.data[key] = "1"
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) DelByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

// ---- equipment ----

type fakeEquipmentRepo struct {
	mu               sync.Mutex
	items            map[string]*entities.Equipment
	conditionUpdates int
	conditionErr     error
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: map[string]*entities.Equipment{}}
}

func (r *fakeEquipmentRepo) get(id string) *entities.Equipment {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil
	}
	cp := *e
	return &cp
}

func (r *fakeEquipmentRepo) List(_ context.Context, scope authz.Scope, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Equipment, 0)
	for _, e := range r.items {
		if scope.Empty() || e.CompanyID != scope.CompanyID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.CriticalOnly && e.Status != constants.EquipmentCritical && e.Health >= constants.CriticalHealthThreshold {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEquipmentRepo) FindByID(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) (*entities.Equipment, error) {
	e := r.get(id)
	if e == nil || scope.Empty() || e.CompanyID != scope.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	return e, nil
}

func (r *fakeEquipmentRepo) FindForUpdate(_ context.Context, _ pgx.Tx, id string) (*entities.Equipment, error) {
	e := r.get(id)
	if e == nil {
		return nil, apperrors.ErrNotFound
	}
	return e, nil
}

func (r *fakeEquipmentRepo) Create(_ context.Context, _ pgx.Tx, equipment *entities.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.SerialNumber == equipment.SerialNumber {
			return apperrors.ErrConflict
		}
	}
	cp := *equipment
	r.items[equipment.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) Update(_ context.Context, _ pgx.Tx, equipment *entities.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[equipment.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *equipment
	r.items[equipment.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) UpdateCondition(_ context.Context, _ pgx.Tx, id string, status string, health int, lastMaintenance null.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conditionErr != nil {
		return r.conditionErr
	}
	e, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status, e.Health, e.LastMaintenance = status, health, lastMaintenance
	r.conditionUpdates++
	return nil
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || e.CompanyID != scope.CompanyID {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// ---- teams ----

type fakeTeamRepo struct {
	mu      sync.Mutex
	teams   map[string]*entities.Team
	members []entities.TeamMember
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[string]*entities.Team{}}
}

func (r *fakeTeamRepo) withMembers(t entities.Team) entities.Team {
	t.Members = make([]entities.TeamMember, 0)
	for _, m := range r.members {
		if m.TeamID == t.ID {
			t.Members = append(t.Members, m)
		}
	}
	return t
}

func (r *fakeTeamRepo) List(_ context.Context, scope authz.Scope) ([]entities.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Team, 0)
	for _, t := range r.teams {
		if !scope.Empty() && t.CompanyID == scope.CompanyID {
			out = append(out, r.withMembers(*t))
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) (*entities.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok || scope.Empty() || t.CompanyID != scope.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	team := r.withMembers(*t)
	return &team, nil
}

func (r *fakeTeamRepo) Create(_ context.Context, _ pgx.Tx, team *entities.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Update(_ context.Context, _ pgx.Tx, team *entities.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok || t.CompanyID != scope.CompanyID {
		return apperrors.ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, _ pgx.Tx, member *entities.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.TeamID == member.TeamID && m.UserID == member.UserID {
			return apperrors.ErrConflict
		}
	}
	member.CreatedAt = time.Now()
	r.members = append(r.members, *member)
	return nil
}

func (r *fakeTeamRepo) RemoveMember(_ context.Context, _ pgx.Tx, teamID, memberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m.ID == memberID && m.TeamID == teamID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// ---- maintenance requests ----

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*entities.MaintenanceRequest
	locked   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*entities.MaintenanceRequest{}}
}

func inScope(scope authz.Scope, r *entities.MaintenanceRequest) bool {
	if scope.Empty() || r.CompanyID != scope.CompanyID {
		return false
	}
	return scope.TechnicianID == "" || r.AssignedTechnicianID.String == scope.TechnicianID
}

func (r *fakeRequestRepo) List(_ context.Context, scope authz.Scope, filter types.RequestFilter) ([]entities.MaintenanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.MaintenanceRequest, 0)
	for _, req := range r.requests {
		if !inScope(scope, req) {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.EquipmentID != "" && req.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.TeamID != "" && req.AssignedTeam.String != filter.TeamID {
			continue
		}
		if filter.MaintenanceType != "" && req.MaintenanceType != filter.MaintenanceType {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) (*entities.MaintenanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || !inScope(scope, req) {
		return nil, apperrors.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) FindForUpdate(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) (*entities.MaintenanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || scope.Empty() || req.CompanyID != scope.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	r.locked++
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) Create(_ context.Context, _ pgx.Tx, request *entities.MaintenanceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.CreatedAt, request.UpdatedAt = time.Now(), time.Now()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) Update(_ context.Context, _ pgx.Tx, request *entities.MaintenanceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return apperrors.ErrNotFound
	}
	request.UpdatedAt = time.Now()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.CompanyID != scope.CompanyID {
		return apperrors.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

// ---- work centers ----

type fakeWorkCenterRepo struct {
	mu          sync.Mutex
	centers     map[string]*entities.WorkCenter
	assignments []entities.WorkCenterAssignment
}

func newFakeWorkCenterRepo() *fakeWorkCenterRepo {
	return &fakeWorkCenterRepo{centers: map[string]*entities.WorkCenter{}}
}

func (r *fakeWorkCenterRepo) List(_ context.Context, scope authz.Scope) ([]entities.WorkCenter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.WorkCenter, 0)
	for _, c := range r.centers {
		if !scope.Empty() && c.CompanyID == scope.CompanyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeWorkCenterRepo) FindByID(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) (*entities.WorkCenter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.centers[id]
	if !ok || scope.Empty() || c.CompanyID != scope.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeWorkCenterRepo) Create(_ context.Context, _ pgx.Tx, center *entities.WorkCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.centers {
		if c.Code == center.Code {
			return apperrors.ErrConflict
		}
	}
	cp := *center
	r.centers[center.ID] = &cp
	return nil
}

func (r *fakeWorkCenterRepo) Update(_ context.Context, _ pgx.Tx, center *entities.WorkCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.centers[center.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *center
	r.centers[center.ID] = &cp
	return nil
}

func (r *fakeWorkCenterRepo) Delete(_ context.Context, _ pgx.Tx, scope authz.Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.centers[id]
	if !ok || c.CompanyID != scope.CompanyID {
		return apperrors.ErrNotFound
	}
	delete(r.centers, id)
	return nil
}

func (r *fakeWorkCenterRepo) CreateAssignment(_ context.Context, _ pgx.Tx, a *entities.WorkCenterAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.assignments {
		if existing.WorkCenterID == a.WorkCenterID && existing.EquipmentID == a.EquipmentID {
			return apperrors.ErrConflict
		}
	}
	a.CreatedAt = time.Now()
	r.assignments = append(r.assignments, *a)
	return nil
}

// ---- dashboard ----

type fakeDashboardRepo struct {
	mu         sync.Mutex
	equipment  types.DashboardEquipmentStats
	requests   types.DashboardRequestStats
	teams      types.DashboardTeamStats
	calls      int
	conditions []sq.Sqlizer
}

func (r *fakeDashboardRepo) record(cond sq.Sqlizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.conditions = append(r.conditions, cond)
}

func (r *fakeDashboardRepo) GetEquipmentStats(_ context.Context, cond sq.Sqlizer) (*types.DashboardEquipmentStats, error) {
	r.record(cond)
	stats := r.equipment
	return &stats, nil
}

func (r *fakeDashboardRepo) GetRequestStats(_ context.Context, cond sq.Sqlizer) (*types.DashboardRequestStats, error) {
	r.record(cond)
	stats := r.requests
	return &stats, nil
}

func (r *fakeDashboardRepo) GetTeamStats(_ context.Context, cond sq.Sqlizer) (*types.DashboardTeamStats, error) {
	r.record(cond)
	stats := r.teams
	return &stats, nil
}

// ---- events ----

type fakePublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *fakePublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name())
	}
	return out
}

// ---- wiring ----

type testEnv struct {
	tx          *fakeTxManager
	users       *fakeUserRepo
	companies   *fakeCompanyRepo
	equipment   *fakeEquipmentRepo
	teams       *fakeTeamRepo
	requests    *fakeRequestRepo
	workCenters *fakeWorkCenterRepo
	dashboard   *fakeDashboardRepo
	cacheStore  *fakeCache
	publisher   *fakePublisher
	cache       *ScopedCache
	logger      *zap.Logger
}

func newTestEnv() *testEnv {
	cacheStore := newFakeCache()
	logger := zap.NewNop()
	return &testEnv{
		tx:          &fakeTxManager{},
		users:       newFakeUserRepo(),
		companies:   newFakeCompanyRepo(),
		equipment:   newFakeEquipmentRepo(),
		teams:       newFakeTeamRepo(),
		requests:    newFakeRequestRepo(),
		workCenters: newFakeWorkCenterRepo(),
		dashboard:   &fakeDashboardRepo{},
		cacheStore:  cacheStore,
		publisher:   &fakePublisher{},
		cache:       NewScopedCache(cacheStore, config.CacheConfig{}, logger),
		logger:      logger,
	}
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		MinPasswordLength: 8,
		BcryptCost:        4,
		MaxLoginAttempts:  3,
		LockoutDuration:   time.Minute,
	}
}

func (e *testEnv) authService() AuthServiceInterface {
	jwt := service.NewJWTService("test-secret", time.Hour, e.logger)
	return NewAuthService(e.tx, e.users, e.companies, e.cacheStore, jwt, testAuthConfig(), e.logger)
}

func (e *testEnv) userService() *UserService {
	return NewUserService(e.tx, e.users, e.cache, testAuthConfig(), e.logger)
}

func (e *testEnv) equipmentService() *EquipmentService {
	return NewEquipmentService(e.equipment, e.requests, e.users, e.teams, e.cache, e.logger)
}

func (e *testEnv) teamService() *TeamService {
	return NewTeamService(e.tx, e.teams, e.users, e.requests, e.cache, e.logger)
}

func (e *testEnv) requestService(policy lifecycle.TechnicianPolicy) *MaintenanceRequestService {
	return NewMaintenanceRequestService(e.tx, e.requests, e.equipment, e.users, e.teams, e.cache, e.publisher, policy, e.logger)
}

func (e *testEnv) workCenterService() *WorkCenterService {
	return NewWorkCenterService(e.workCenters, e.equipment, e.logger)
}

func (e *testEnv) dashboardService() *DashboardService {
	return NewDashboardService(e.dashboard, e.cache, e.logger)
}

// addUser stores a user of the given company and role.
func (e *testEnv) addUser(id, companyID, role string) *entities.User {
	return e.users.put(&entities.User{
		ID:          id,
		Email:       id + "@example.com",
		Name:        strings.ToUpper(id[:1]) + id[1:],
		Role:        role,
		CompanyID:   null.StringFrom(companyID),
		CompanyName: "Company " + companyID,
	})
}

func (e *testEnv) addEquipment(eq entities.Equipment) *entities.Equipment {
	if eq.Status == "" {
		eq.Status = constants.EquipmentOperational
	}
	_ = e.equipment.Create(context.Background(), nil, &eq)
	return &eq
}

func asActor(user *entities.User) context.Context {
	return authz.WithActor(context.Background(), user, authz.PermissionsForRole(user.Role))
}
