package constants

// Roles
const (
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleTechnician = "TECHNICIAN"
	RoleEmployee   = "EMPLOYEE"
)

var ValidRoles = []string{RoleAdmin, RoleManager, RoleTechnician, RoleEmployee}

func IsValidRole(role string) bool {
	return contains(ValidRoles, role)
}

// Equipment statuses
const (
	EquipmentOperational         = "OPERATIONAL"
	EquipmentMaintenanceRequired = "MAINTENANCE_REQUIRED"
	EquipmentOutOfService        = "OUT_OF_SERVICE"
	EquipmentCritical            = "CRITICAL"
)

var EquipmentStatuses = []string{EquipmentOperational, EquipmentMaintenanceRequired, EquipmentOutOfService, EquipmentCritical}

func IsValidEquipmentStatus(status string) bool {
	return contains(EquipmentStatuses, status)
}

const (
	MinHealth = 0
	MaxHealth = 100
	// CriticalHealthThreshold marks equipment for the dashboard alert.
	CriticalHealthThreshold = 30
)

// Teams
const DefaultTeamMemberRole = "Technician"

// Session cookie
const SessionCookieName = "userId"

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
