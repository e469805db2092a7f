package dto

type UpdateCompanyDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Location *string `json:"location,omitempty"`
}
