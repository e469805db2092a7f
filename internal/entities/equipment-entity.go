package entities

import (
	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type Equipment struct {
	ID                       string      `json:"id" db:"id"`
	Name                     string      `json:"name" db:"name"`
	SerialNumber             string      `json:"serialNumber" db:"serial_number"`
	Category                 string      `json:"category" db:"category"`
	Department               null.String `json:"department" db:"department"`
	AssignedTo               null.String `json:"assignedTo" db:"assigned_to"`
	Location                 null.String `json:"location" db:"location"`
	PurchaseDate             null.Time   `json:"purchaseDate" db:"purchase_date"`
	WarrantyInfo             null.String `json:"warrantyInfo" db:"warranty_info"`
	CompanyID                string      `json:"companyId" db:"company_id"`
	AssignedTechnicianID     null.String `json:"assignedTechnicianId" db:"assigned_technician_id"`
	DefaultMaintenanceTeamID null.String `json:"defaultMaintenanceTeamId" db:"default_maintenance_team_id"`
	Health                   int         `json:"health" db:"health"`
	Status                   string      `json:"status" db:"status"`
	LastMaintenance          null.Time   `json:"lastMaintenance" db:"last_maintenance"`
	NextScheduled            null.Time   `json:"nextScheduled" db:"next_scheduled"`

	types.BaseEntity

	AssignedTechnician     *UserShort           `json:"assignedTechnician,omitempty" db:"-"`
	DefaultMaintenanceTeam *TeamShort           `json:"defaultMaintenanceTeam,omitempty" db:"-"`
	MaintenanceRequests    []MaintenanceRequest `json:"maintenanceRequests,omitempty" db:"-"`
}

type EquipmentShort struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	Health       int    `json:"health"`
}
