package seeders

import (
	"github.com/google/uuid"

	"gearguard/pkg/constants"
)

// demoID derives a stable id so reruns hit ON CONFLICT instead of duplicating rows.
func demoID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("gearguard-demo/"+key)).String()
}

const (
	demoCompanyName     = "GearGuard Demo Plant"
	demoCompanyLocation = "Building A"
	demoPassword        = "gearguard123"
	demoTeamName        = "Mechanics"
)

var demoUsers = []struct {
	Key        string
	Email      string
	Name       string
	Role       string
	Department string
	TeamMember bool
}{
	{Key: "admin", Email: "admin@gearguard.local", Name: "Ada Admin", Role: constants.RoleAdmin, Department: "Management"},
	{Key: "manager", Email: "manager@gearguard.local", Name: "Max Manager", Role: constants.RoleManager, Department: "Maintenance"},
	{Key: "tech-1", Email: "tech1@gearguard.local", Name: "Tara Technician", Role: constants.RoleTechnician, Department: "Maintenance", TeamMember: true},
	{Key: "tech-2", Email: "tech2@gearguard.local", Name: "Theo Technician", Role: constants.RoleTechnician, Department: "Maintenance", TeamMember: true},
	{Key: "employee", Email: "employee@gearguard.local", Name: "Eve Employee", Role: constants.RoleEmployee, Department: "Production"},
}

var demoEquipment = []struct {
	Key           string
	Name          string
	SerialNumber  string
	Category      string
	Location      string
	Health        int
	Status        string
	TechnicianKey string
}{
	{Key: "cnc", Name: "CNC Milling Machine", SerialNumber: "DEMO-CNC-001", Category: "Machining", Location: "Hall 1", Health: 92, Status: constants.EquipmentOperational, TechnicianKey: "tech-1"},
	{Key: "press", Name: "Hydraulic Press", SerialNumber: "DEMO-HP-002", Category: "Presses", Location: "Hall 2", Health: 45, Status: constants.EquipmentMaintenanceRequired, TechnicianKey: "tech-2"},
	{Key: "compressor", Name: "Air Compressor", SerialNumber: "DEMO-AC-003", Category: "Utilities", Location: "Basement", Health: 18, Status: constants.EquipmentCritical, TechnicianKey: "tech-1"},
	{Key: "forklift", Name: "Forklift", SerialNumber: "DEMO-FL-004", Category: "Logistics", Location: "Warehouse", Health: 75, Status: constants.EquipmentOperational},
}

var demoRequests = []struct {
	Key          string
	Subject      string
	EquipmentKey string
	Type         string
	Priority     string
	Status       string
}{
	{Key: "press-leak", Subject: "Oil leak on main cylinder", EquipmentKey: "press", Type: constants.MaintenanceCorrective, Priority: constants.PriorityHigh, Status: constants.RequestStatusInProgress},
	{Key: "compressor-noise", Subject: "Compressor rattling at startup", EquipmentKey: "compressor", Type: constants.MaintenanceCorrective, Priority: constants.PriorityCritical, Status: constants.RequestStatusNew},
	{Key: "cnc-service", Subject: "Quarterly spindle service", EquipmentKey: "cnc", Type: constants.MaintenancePreventive, Priority: constants.PriorityMedium, Status: constants.RequestStatusNew},
}

var demoWorkCenter = struct {
	Key         string
	Name        string
	Code        string
	Location    string
	CostPerHour float64
}{Key: "assembly", Name: "Assembly Line", Code: "DEMO-WC-01", Location: "Hall 1", CostPerHour: 120}
