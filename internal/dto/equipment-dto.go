package dto

import "gearguard/pkg/types"

type CreateEquipmentDTO struct {
	Name                     string      `json:"name" validate:"required"`
	SerialNumber             string      `json:"serialNumber" validate:"required"`
	Category                 string      `json:"category" validate:"required"`
	Department               *string     `json:"department,omitempty"`
	AssignedTo               *string     `json:"assignedTo,omitempty"`
	Location                 *string     `json:"location,omitempty"`
	PurchaseDate             *types.Date `json:"purchaseDate,omitempty"`
	WarrantyInfo             *string     `json:"warrantyInfo,omitempty"`
	AssignedTechnicianID     *string     `json:"assignedTechnicianId,omitempty"`
	DefaultMaintenanceTeamID *string     `json:"defaultMaintenanceTeamId,omitempty"`
	Health                   *int        `json:"health,omitempty" validate:"omitempty,min=0,max=100"`
	Status                   *string     `json:"status,omitempty" validate:"omitempty,equipment_status"`
	NextScheduled            *types.Date `json:"nextScheduled,omitempty"`
	// CompanyID is accepted for compatibility and must match the caller's company.
	CompanyID string `json:"companyId,omitempty"`
}

// UpdateEquipmentDTO is a partial update. An empty string clears a nullable field.
type UpdateEquipmentDTO struct {
	Name                     *string     `json:"name,omitempty" validate:"omitempty,min=1"`
	Category                 *string     `json:"category,omitempty" validate:"omitempty,min=1"`
	Department               *string     `json:"department,omitempty"`
	AssignedTo               *string     `json:"assignedTo,omitempty"`
	Location                 *string     `json:"location,omitempty"`
	PurchaseDate             *types.Date `json:"purchaseDate,omitempty"`
	WarrantyInfo             *string     `json:"warrantyInfo,omitempty"`
	AssignedTechnicianID     *string     `json:"assignedTechnicianId,omitempty"`
	DefaultMaintenanceTeamID *string     `json:"defaultMaintenanceTeamId,omitempty"`
	Health                   *int        `json:"health,omitempty" validate:"omitempty,min=0,max=100"`
	Status                   *string     `json:"status,omitempty" validate:"omitempty,equipment_status"`
	LastMaintenance          *types.Date `json:"lastMaintenance,omitempty"`
	NextScheduled            *types.Date `json:"nextScheduled,omitempty"`
}
