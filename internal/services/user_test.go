package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/dto"
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

func TestUserService_OnlyAdminManagesUsers(t *testing.T) {
	env := newTestEnv()
	svc := env.userService()
	manager := env.addUser("manager", "c-1", constants.RoleManager)

	_, err := svc.CreateUser(asActor(manager), dto.CreateUserDTO{
		Email: "new@acme.io", Password: "password123", Name: "New", Role: constants.RoleEmployee,
	})
	requireHTTPError(t, err, http.StatusForbidden, "Only ADMIN can create users")

	_, err = svc.UpdateUser(asActor(manager), manager.ID, dto.UpdateUserDTO{Name: utils.ToPtr("x")})
	requireHTTPError(t, err, http.StatusForbidden, "Only ADMIN can update users")

	err = svc.DeleteUser(asActor(manager), manager.ID)
	requireHTTPError(t, err, http.StatusForbidden, "Only ADMIN can delete users")
}

func TestUserService_CreateUpdateList(t *testing.T) {
	env := newTestEnv()
	svc := env.userService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	env.addUser("foreign", "c-2", constants.RoleEmployee)

	created, err := svc.CreateUser(asActor(admin), dto.CreateUserDTO{
		Email: "Tech@Acme.io", Password: "password123", Name: "Tess", Role: constants.RoleTechnician,
		Department: utils.ToPtr("Maintenance"),
	})
	require.NoError(t, err)
	assert.Equal(t, "tech@acme.io", created.Email)
	assert.Equal(t, "c-1", created.CompanyID.String)
	assert.Equal(t, admin.CompanyName, created.CompanyName)
	assert.True(t, utils.ComparePasswords(created.Password, "password123"))

	_, err = svc.CreateUser(asActor(admin), dto.CreateUserDTO{
		Email: "tech@acme.io", Password: "password123", Name: "Dup", Role: constants.RoleEmployee,
	})
	requireHTTPError(t, err, http.StatusConflict, "User already exists")

	_, err = svc.CreateUser(asActor(admin), dto.CreateUserDTO{
		Email: "short@acme.io", Password: "123", Name: "Short", Role: constants.RoleEmployee,
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Password must be at least 8 characters")

	updated, err := svc.UpdateUser(asActor(admin), created.ID, dto.UpdateUserDTO{
		Role: utils.ToPtr(constants.RoleManager), Department: utils.ToPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleManager, updated.Role)
	assert.Equal(t, null.String{}, updated.Department)

	users, err := svc.ListUsers(asActor(admin), types.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	managers, err := svc.ListUsers(asActor(admin), types.UserFilter{Role: constants.RoleManager})
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, created.ID, managers[0].ID)

	_, err = svc.FindUser(asActor(admin), "foreign")
	requireHTTPError(t, err, http.StatusNotFound, "User not found")
}

func TestUserService_Delete(t *testing.T) {
	env := newTestEnv()
	svc := env.userService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	tech := env.addUser("tech", "c-1", constants.RoleTechnician)
	ctx := context.Background()

	err := svc.DeleteUser(asActor(admin), admin.ID)
	requireHTTPError(t, err, http.StatusBadRequest, "Cannot delete your own account")

	require.NoError(t, env.cacheStore.Set(ctx, "teams:c-1", "[]", 0))
	require.NoError(t, env.cacheStore.Set(ctx, "equipment:c-1", "[]", 0))

	require.NoError(t, svc.DeleteUser(asActor(admin), tech.ID))
	assert.Equal(t, []string{tech.ID}, env.users.released)
	assert.Equal(t, 1, env.tx.calls)
	assert.False(t, env.cacheStore.has("teams:c-1"))
	assert.False(t, env.cacheStore.has("equipment:c-1"))

	err = svc.DeleteUser(asActor(admin), tech.ID)
	requireHTTPError(t, err, http.StatusNotFound, "User not found")
}

func TestUserService_OneAdminPerCompany(t *testing.T) {
	env := newTestEnv()
	svc := env.userService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	employee := env.addUser("employee", "c-1", constants.RoleEmployee)

	_, err := svc.CreateUser(asActor(admin), dto.CreateUserDTO{
		Email: "boss@acme.io", Password: "password123", Name: "Boss", Role: constants.RoleAdmin,
	})
	requireHTTPError(t, err, http.StatusConflict, "Company already has an admin")

	_, err = svc.UpdateUser(asActor(admin), employee.ID, dto.UpdateUserDTO{Role: utils.ToPtr(constants.RoleAdmin)})
	requireHTTPError(t, err, http.StatusConflict, "Company already has an admin")

	found, err := svc.FindUser(asActor(admin), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleEmployee, found.Role)

	renamed, err := svc.UpdateUser(asActor(admin), admin.ID, dto.UpdateUserDTO{
		Name: utils.ToPtr("Still Admin"), Role: utils.ToPtr(constants.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, renamed.Role)
}

func TestUserService_OneAdminPerCompanyEnforcedByStore(t *testing.T) {
	env := newTestEnv()
	svc := env.userService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	employee := env.addUser("employee", "c-1", constants.RoleEmployee)
	env.users.staleAdminCheck = true

	_, err := svc.CreateUser(asActor(admin), dto.CreateUserDTO{
		Email: "boss@acme.io", Password: "password123", Name: "Boss", Role: constants.RoleAdmin,
	})
	requireHTTPError(t, err, http.StatusConflict, "Company already has an admin")

	_, err = svc.UpdateUser(asActor(admin), employee.ID, dto.UpdateUserDTO{Role: utils.ToPtr(constants.RoleAdmin)})
	requireHTTPError(t, err, http.StatusConflict, "Company already has an admin")
}
