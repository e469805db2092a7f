package types

import "time"

type EquipmentFilter struct {
	Category string
	Status   string
	Search   string
	// CriticalOnly keeps rows with status CRITICAL or health below the alert threshold.
	CriticalOnly bool
}

// IsZero reports whether the filter can be served from the list cache.
func (f EquipmentFilter) IsZero() bool {
	return f == EquipmentFilter{}
}

type RequestFilter struct {
	Status          string
	MaintenanceType string
	EquipmentID     string
	TeamID          string
	ScheduledFrom   *time.Time
	ScheduledTo     *time.Time
}

// IsStatusOnly reports whether only the status filter is set; such lists are cached.
func (f RequestFilter) IsStatusOnly() bool {
	return f.MaintenanceType == "" && f.EquipmentID == "" && f.TeamID == "" && f.ScheduledFrom == nil && f.ScheduledTo == nil
}

type UserFilter struct {
	Role string
}
