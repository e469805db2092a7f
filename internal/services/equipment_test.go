package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

func TestEquipmentService_CreateDefaultsAndRoundTrip(t *testing.T) {
	env := newTestEnv()
	svc := env.equipmentService()
	manager := env.addUser("manager", "c-1", constants.RoleManager)
	tech := env.addUser("tech", "c-1", constants.RoleTechnician)

	purchase := types.Date{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	created, err := svc.CreateEquipment(asActor(manager), dto.CreateEquipmentDTO{
		Name:                 "Lathe",
		SerialNumber:         "LT-001",
		Category:             "Machining",
		Location:             utils.ToPtr("Hall B"),
		PurchaseDate:         &purchase,
		AssignedTechnicianID: utils.ToPtr(tech.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, "c-1", created.CompanyID)
	assert.Equal(t, constants.MaxHealth, created.Health)
	assert.Equal(t, constants.EquipmentOperational, created.Status)
	assert.Equal(t, null.StringFrom("Hall B"), created.Location)
	assert.Equal(t, null.StringFrom(tech.ID), created.AssignedTechnicianID)
	assert.True(t, created.PurchaseDate.Time.Equal(purchase.Time))
	assert.False(t, created.Department.Valid)
	assert.Empty(t, created.MaintenanceRequests)
}

func TestEquipmentService_DuplicateSerial(t *testing.T) {
	env := newTestEnv()
	svc := env.equipmentService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	payload := dto.CreateEquipmentDTO{Name: "Press", SerialNumber: "SN-42", Category: "Hydraulics"}

	_, err := svc.CreateEquipment(asActor(admin), payload)
	require.NoError(t, err)

	_, err = svc.CreateEquipment(asActor(admin), payload)
	requireHTTPError(t, err, http.StatusConflict, "Serial number already exists")
}

func TestEquipmentService_WritePermissions(t *testing.T) {
	env := newTestEnv()
	svc := env.equipmentService()
	employee := env.addUser("employee", "c-1", constants.RoleEmployee)
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)

	_, err := svc.CreateEquipment(asActor(employee), dto.CreateEquipmentDTO{Name: "x", SerialNumber: "y", Category: "z"})
	requireHTTPError(t, err, http.StatusForbidden, "")

	_, err = svc.CreateEquipment(asActor(admin), dto.CreateEquipmentDTO{Name: "x", SerialNumber: "y", Category: "z", CompanyID: "c-2"})
	requireHTTPError(t, err, http.StatusForbidden, "")

	outsider := env.addUser("outsider", "c-2", constants.RoleTechnician)
	_, err = svc.CreateEquipment(asActor(admin), dto.CreateEquipmentDTO{
		Name: "x", SerialNumber: "y", Category: "z", AssignedTechnicianID: utils.ToPtr(outsider.ID),
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Assigned technician not found")
}

func TestEquipmentService_TenantIsolation(t *testing.T) {
	env := newTestEnv()
	svc := env.equipmentService()
	other := env.addUser("other", "c-2", constants.RoleAdmin)
	eq := env.addEquipment(entities.Equipment{ID: "eq-1", Name: "Pump", SerialNumber: "P-1", Category: "Pumps", CompanyID: "c-1", Health: 80})

	_, err := svc.FindEquipment(asActor(other), eq.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Equipment not found")

	err = svc.DeleteEquipment(asActor(other), eq.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Equipment not found")

	list, err := svc.GetEquipments(asActor(other), types.EquipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	companyless := env.users.put(&entities.User{ID: "nobody", Role: constants.RoleAdmin})
	list, err = svc.GetEquipments(asActor(companyless), types.EquipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEquipmentService_DetailSkipsCancelledRequests(t *testing.T) {
	env := newTestEnv()
	svc := env.equipmentService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	eq := env.addEquipment(entities.Equipment{ID: "eq-1", Name: "Pump", SerialNumber: "P-1", Category: "Pumps", CompanyID: "c-1", Health: 80})

	ctx := context.Background()
	require.NoError(t, env.requests.Create(ctx, nil, &entities.MaintenanceRequest{ID: "r-1", EquipmentID: eq.ID, CompanyID: "c-1", Status: constants.RequestStatusNew}))
	require.NoError(t, env.requests.Create(ctx, nil, &entities.MaintenanceRequest{ID: "r-2", EquipmentID: eq.ID, CompanyID: "c-1", Status: constants.RequestStatusCancelled}))

	found, err := svc.FindEquipment(asActor(admin), eq.ID)
	require.NoError(t, err)
	require.Len(t, found.MaintenanceRequests, 1)
	assert.Equal(t, "r-1", found.MaintenanceRequests[0].ID)
}

func TestEquipmentService_ListCacheAndInvalidation(t *testing.T) {
	env := newTestEnv()
	svc := env.equipmentService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	env.addEquipment(entities.Equipment{ID: "eq-1", Name: "Pump", SerialNumber: "P-1", Category: "Pumps", CompanyID: "c-1", Health: 80})

	list, err := svc.GetEquipments(asActor(admin), types.EquipmentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, env.cacheStore.has("equipment:c-1"))

	_, err = svc.GetEquipments(asActor(admin), types.EquipmentFilter{Category: "Pumps"})
	require.NoError(t, err)
	assert.False(t, env.cacheStore.has("equipment:c-1:Pumps"))

	require.NoError(t, env.cacheStore.Set(context.Background(), "requests:c-1:NEW", "[]", 0))
	require.NoError(t, env.cacheStore.Set(context.Background(), "dashboard:stats:c-1", "{}", 0))
	require.NoError(t, env.cacheStore.Set(context.Background(), "equipment:c-2", "[]", 0))

	_, err = svc.UpdateEquipment(asActor(admin), "eq-1", dto.UpdateEquipmentDTO{Health: utils.ToPtr(25)})
	require.NoError(t, err)

	assert.False(t, env.cacheStore.has("equipment:c-1"))
	assert.False(t, env.cacheStore.has("requests:c-1:NEW"))
	assert.False(t, env.cacheStore.has("dashboard:stats:c-1"))
	assert.True(t, env.cacheStore.has("equipment:c-2"))

	critical, err := svc.GetCriticalEquipment(asActor(admin))
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, 25, critical[0].Health)
}

func TestEquipmentService_UpdateClearsNullableField(t *testing.T) {
	env := newTestEnv()
	svc := env.equipmentService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	env.addEquipment(entities.Equipment{
		ID: "eq-1", Name: "Pump", SerialNumber: "P-1", Category: "Pumps", CompanyID: "c-1", Health: 80,
		Location: null.StringFrom("Basement"), Department: null.StringFrom("Ops"),
	})

	updated, err := svc.UpdateEquipment(asActor(admin), "eq-1", dto.UpdateEquipmentDTO{Location: utils.ToPtr("")})
	require.NoError(t, err)
	assert.False(t, updated.Location.Valid)
	assert.Equal(t, null.StringFrom("Ops"), updated.Department)

	_, err = svc.UpdateEquipment(asActor(admin), "missing", dto.UpdateEquipmentDTO{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
