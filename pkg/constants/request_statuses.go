package constants

// Maintenance request statuses
const (
	RequestStatusNew        = "NEW"
	RequestStatusInProgress = "IN_PROGRESS"
	RequestStatusRepaired   = "REPAIRED"
	RequestStatusScrap      = "SCRAP"
	RequestStatusCancelled  = "CANCELLED"
)

var RequestStatuses = []string{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusRepaired,
	RequestStatusScrap,
	RequestStatusCancelled,
}

func IsValidRequestStatus(status string) bool {
	return contains(RequestStatuses, status)
}

// Maintenance types
const (
	MaintenanceCorrective = "CORRECTIVE"
	MaintenancePreventive = "PREVENTIVE"
	MaintenancePredictive = "PREDICTIVE"
)

var MaintenanceTypes = []string{MaintenanceCorrective, MaintenancePreventive, MaintenancePredictive}

func IsValidMaintenanceType(t string) bool {
	return contains(MaintenanceTypes, t)
}

// Priorities
const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func IsValidPriority(p string) bool {
	return contains(Priorities, p)
}
