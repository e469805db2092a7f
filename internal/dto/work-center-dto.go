package dto

type CreateWorkCenterDTO struct {
	Name                     string   `json:"name" validate:"required"`
	Code                     string   `json:"code" validate:"required"`
	Location                 *string  `json:"location,omitempty"`
	CostPerHour              *float64 `json:"costPerHour,omitempty" validate:"omitempty,min=0"`
	CapabilityTimeEfficiency *float64 `json:"capabilityTimeEfficiency,omitempty" validate:"omitempty,gt=0"`
	OeTargetPercentage       *float64 `json:"oeTargetPercentage,omitempty" validate:"omitempty,min=0,max=100"`
	CompanyID                string   `json:"companyId,omitempty"`
}

type UpdateWorkCenterDTO struct {
	Name                     *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Location                 *string  `json:"location,omitempty"`
	CostPerHour              *float64 `json:"costPerHour,omitempty" validate:"omitempty,min=0"`
	CapabilityTimeEfficiency *float64 `json:"capabilityTimeEfficiency,omitempty" validate:"omitempty,gt=0"`
	OeTargetPercentage       *float64 `json:"oeTargetPercentage,omitempty" validate:"omitempty,min=0,max=100"`
}

type AssignEquipmentDTO struct {
	EquipmentID            string   `json:"equipmentId" validate:"required"`
	AlternativeWorkCenters []string `json:"alternativeWorkCenters,omitempty" validate:"omitempty,dive,required"`
}
