package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/utils"
)

func TestWorkCenterService_CreateDefaults(t *testing.T) {
	env := newTestEnv()
	svc := env.workCenterService()
	manager := env.addUser("manager", "c-1", constants.RoleManager)
	employee := env.addUser("employee", "c-1", constants.RoleEmployee)

	_, err := svc.CreateWorkCenter(asActor(employee), dto.CreateWorkCenterDTO{Name: "Assembly", Code: "WC-1"})
	requireHTTPError(t, err, http.StatusForbidden, "You don't have permission to manage work centers")

	center, err := svc.CreateWorkCenter(asActor(manager), dto.CreateWorkCenterDTO{
		Name: " Assembly ", Code: "WC-1", CostPerHour: utils.ToPtr(42.5),
	})
	require.NoError(t, err)
	assert.Equal(t, " Assembly ", center.Name)
	assert.Equal(t, "c-1", center.CompanyID)
	assert.Equal(t, 42.5, center.CostPerHour)
	assert.Equal(t, 100.0, center.CapabilityTimeEfficiency)
	assert.Equal(t, 90.0, center.OeTargetPercentage)

	_, err = svc.CreateWorkCenter(asActor(manager), dto.CreateWorkCenterDTO{Name: "Other", Code: "WC-1"})
	requireHTTPError(t, err, http.StatusConflict, "Work center code already exists")

	updated, err := svc.UpdateWorkCenter(asActor(manager), center.ID, dto.UpdateWorkCenterDTO{
		OeTargetPercentage: utils.ToPtr(75.0), Location: utils.ToPtr("Hall A"),
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.OeTargetPercentage)
	assert.Equal(t, "WC-1", updated.Code)
	assert.Equal(t, "Hall A", updated.Location.String)
}

func TestWorkCenterService_AssignEquipment(t *testing.T) {
	env := newTestEnv()
	svc := env.workCenterService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	env.addEquipment(entities.Equipment{ID: "eq-1", Name: "Drill", SerialNumber: "D-1", Category: "Tools", CompanyID: "c-1", Health: 70})
	env.addEquipment(entities.Equipment{ID: "eq-foreign", Name: "Saw", SerialNumber: "S-1", Category: "Tools", CompanyID: "c-2", Health: 70})

	primary, err := svc.CreateWorkCenter(asActor(admin), dto.CreateWorkCenterDTO{Name: "Primary", Code: "P"})
	require.NoError(t, err)
	backup, err := svc.CreateWorkCenter(asActor(admin), dto.CreateWorkCenterDTO{Name: "Backup", Code: "B"})
	require.NoError(t, err)

	_, err = svc.AssignEquipment(asActor(admin), primary.ID, dto.AssignEquipmentDTO{EquipmentID: "eq-foreign"})
	requireHTTPError(t, err, http.StatusNotFound, "Equipment not found")

	_, err = svc.AssignEquipment(asActor(admin), primary.ID, dto.AssignEquipmentDTO{EquipmentID: "eq-1", AlternativeWorkCenters: []string{"missing"}})
	requireHTTPError(t, err, http.StatusNotFound, "Work center not found")

	assignment, err := svc.AssignEquipment(asActor(admin), primary.ID, dto.AssignEquipmentDTO{
		EquipmentID:            "eq-1",
		AlternativeWorkCenters: []string{primary.ID, backup.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{backup.ID}, assignment.AlternativeWorkCenters)
	assert.Equal(t, admin.ID, assignment.AssignedBy.String)
	require.NotNil(t, assignment.Equipment)
	assert.Equal(t, "Drill", assignment.Equipment.Name)

	_, err = svc.AssignEquipment(asActor(admin), primary.ID, dto.AssignEquipmentDTO{EquipmentID: "eq-1"})
	requireHTTPError(t, err, http.StatusConflict, "Equipment already assigned to this work center")
}

func TestWorkCenterService_TenantIsolation(t *testing.T) {
	env := newTestEnv()
	svc := env.workCenterService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	other := env.addUser("other", "c-2", constants.RoleAdmin)

	center, err := svc.CreateWorkCenter(asActor(admin), dto.CreateWorkCenterDTO{Name: "Paint", Code: "PNT"})
	require.NoError(t, err)

	_, err = svc.FindWorkCenter(asActor(other), center.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Work center not found")

	err = svc.DeleteWorkCenter(asActor(other), center.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Work center not found")

	list, err := svc.GetWorkCenters(asActor(other))
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.DeleteWorkCenter(asActor(admin), center.ID))
}
