package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type WorkCenter struct {
	ID                       string      `json:"id" db:"id"`
	Name                     string      `json:"name" db:"name"`
	Code                     string      `json:"code" db:"code"`
	Location                 null.String `json:"location" db:"location"`
	CostPerHour              float64     `json:"costPerHour" db:"cost_per_hour"`
	CapabilityTimeEfficiency float64     `json:"capabilityTimeEfficiency" db:"capability_time_efficiency"`
	OeTargetPercentage       float64     `json:"oeTargetPercentage" db:"oe_target_percentage"`
	CompanyID                string      `json:"companyId" db:"company_id"`

	types.BaseEntity

	Assignments []WorkCenterAssignment `json:"assignments" db:"-"`
}

type WorkCenterAssignment struct {
	ID                     string      `json:"id" db:"id"`
	WorkCenterID           string      `json:"workCenterId" db:"work_center_id"`
	EquipmentID            string      `json:"equipmentId" db:"equipment_id"`
	AssignedBy             null.String `json:"assignedBy" db:"assigned_by"`
	AlternativeWorkCenters []string    `json:"alternativeWorkCenters" db:"alternative_work_centers"`
	CreatedAt              time.Time   `json:"createdAt" db:"created_at"`

	Equipment *EquipmentShort `json:"equipment,omitempty" db:"-"`
}
