package dto

import "gearguard/pkg/types"

type CreateRequestDTO struct {
	Subject              string      `json:"subject" validate:"required"`
	Description          *string     `json:"description,omitempty"`
	EquipmentID          string      `json:"equipmentId" validate:"required"`
	MaintenanceType      *string     `json:"maintenanceType,omitempty" validate:"omitempty,maintenance_type"`
	Priority             *string     `json:"priority,omitempty" validate:"omitempty,priority"`
	AssignedTeam         *string     `json:"assignedTeam,omitempty"`
	AssignedTechnicianID *string     `json:"assignedTechnicianId,omitempty"`
	ScheduledDate        *types.Date `json:"scheduledDate,omitempty"`
	Duration             *int        `json:"duration,omitempty" validate:"omitempty,min=0"`
	Notes                *string     `json:"notes,omitempty"`
	Instructions         *string     `json:"instructions,omitempty"`
	CompanyID            string      `json:"companyId,omitempty"`
}

// UpdateRequestDTO is a partial update. Status accepts any enum value; the
// equipment effect is derived from the stored and the new status.
type UpdateRequestDTO struct {
	Subject              *string     `json:"subject,omitempty" validate:"omitempty,min=1"`
	Description          *string     `json:"description,omitempty"`
	Status               *string     `json:"status,omitempty" validate:"omitempty,request_status"`
	Priority             *string     `json:"priority,omitempty" validate:"omitempty,priority"`
	MaintenanceType      *string     `json:"maintenanceType,omitempty" validate:"omitempty,maintenance_type"`
	AssignedTeam         *string     `json:"assignedTeam,omitempty"`
	AssignedTechnicianID *string     `json:"assignedTechnicianId,omitempty"`
	ScheduledDate        *types.Date `json:"scheduledDate,omitempty"`
	CompletedDate        *types.Date `json:"completedDate,omitempty"`
	Duration             *int        `json:"duration,omitempty" validate:"omitempty,min=0"`
	Notes                *string     `json:"notes,omitempty"`
	Instructions         *string     `json:"instructions,omitempty"`
}

type MoveRequestDTO struct {
	Status string `json:"status" validate:"required,request_status"`
}
