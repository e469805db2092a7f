package authz

import "gearguard/pkg/constants"

const (
	// Users
	UsersView   = "users:view"
	UsersManage = "users:manage"

	// Companies
	CompaniesManage = "companies:manage"

	// Equipment
	EquipmentView  = "equipment:view"
	EquipmentWrite = "equipment:write"

	// Teams (members included)
	TeamsView  = "teams:view"
	TeamsWrite = "teams:write"

	// Work centers (assignments included)
	WorkCentersView  = "work_centers:view"
	WorkCentersWrite = "work_centers:write"

	// Maintenance requests
	RequestsView   = "requests:view"
	RequestsCreate = "requests:create"
	RequestsUpdate = "requests:update"
	RequestsDelete = "requests:delete"
	// RequestsUpdateAssigned limits updates to requests assigned to the caller.
	RequestsUpdateAssigned = "requests:update:assigned"

	// Dashboard and reports
	DashboardView = "dashboard:view"
	ReportsView   = "reports:view"
)

var readPermissions = []string{
	UsersView, EquipmentView, TeamsView, WorkCentersView, RequestsView, RequestsCreate, DashboardView,
}

var rolePermissions = map[string][]string{
	constants.RoleAdmin: {
		UsersManage, CompaniesManage, EquipmentWrite, TeamsWrite, WorkCentersWrite,
		RequestsUpdate, RequestsDelete, ReportsView,
	},
	constants.RoleManager: {
		EquipmentWrite, TeamsWrite, WorkCentersWrite, RequestsUpdate, RequestsDelete, ReportsView,
	},
	constants.RoleTechnician: {
		RequestsUpdateAssigned,
	},
	constants.RoleEmployee: {},
}

// PermissionsForRole returns the permission set granted to a role.
// Unknown roles get nothing.
func PermissionsForRole(role string) map[string]bool {
	extra, ok := rolePermissions[role]
	if !ok {
		return map[string]bool{}
	}
	perms := make(map[string]bool, len(readPermissions)+len(extra))
	for _, p := range readPermissions {
		perms[p] = true
	}
	for _, p := range extra {
		perms[p] = true
	}
	return perms
}
