package entities

import (
	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type MaintenanceRequest struct {
	ID                   string      `json:"id" db:"id"`
	Subject              string      `json:"subject" db:"subject"`
	Description          null.String `json:"description" db:"description"`
	EquipmentID          string      `json:"equipmentId" db:"equipment_id"`
	RequestedBy          null.String `json:"requestedBy" db:"requested_by"`
	CompanyID            string      `json:"companyId" db:"company_id"`
	MaintenanceType      string      `json:"maintenanceType" db:"maintenance_type"`
	Priority             string      `json:"priority" db:"priority"`
	AssignedTeam         null.String `json:"assignedTeam" db:"assigned_team_id"`
	AssignedTechnicianID null.String `json:"assignedTechnicianId" db:"assigned_technician_id"`
	ScheduledDate        null.Time   `json:"scheduledDate" db:"scheduled_date"`
	CompletedDate        null.Time   `json:"completedDate" db:"completed_date"`
	Duration             null.Int    `json:"duration" db:"duration"`
	Notes                null.String `json:"notes" db:"notes"`
	Instructions         null.String `json:"instructions" db:"instructions"`
	Status               string      `json:"status" db:"status"`

	types.BaseEntity

	Equipment          *EquipmentShort `json:"equipment,omitempty" db:"-"`
	User               *UserShort      `json:"user,omitempty" db:"-"`
	Team               *TeamShort      `json:"team,omitempty" db:"-"`
	AssignedTechnician *UserShort      `json:"assignedTechnician,omitempty" db:"-"`
}
